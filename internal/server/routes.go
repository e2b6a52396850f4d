package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterRoutes() error {
	// Register the frontend route
	err := NewFrontendRoute(s.cfg, s.BaseEchoServer)
	if err != nil {
		slog.Error("failed to register frontend route", slog.Any("error", err))
		return err
	}

	// Register the API routes
	s.APIGroup.GET("/health", s.HealthHandler)
	s.APIGroup.POST("/parse", s.ParseHandler)
	s.APIGroup.POST("/simplify", s.SimplifyHandler)
	s.APIGroup.POST("/derivative", s.DerivativeHandler)
	s.APIGroup.POST("/approximate", s.ApproximateHandler)
	s.APIGroup.POST("/eval", s.EvalHandler)
	s.APIGroup.GET("/definitions", s.ListDefinitionsHandler)

	return nil
}

func (s *Server) HealthHandler(c echo.Context) error {
	resp := map[string]string{
		"status": "up",
	}
	if s.db != nil {
		stats, err := s.db.Health()
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, stats)
		}
		resp["database"] = stats["status"]
	}

	return c.JSON(http.StatusOK, resp)
}
