package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type expressionRequest struct {
	Latex string `json:"latex"`
}

type derivativeRequest struct {
	Latex    string `json:"latex"`
	Variable string `json:"variable"`
}

type latexResponse struct {
	Latex string `json:"latex"`
}

type resultResponse struct {
	Result string `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) ParseHandler(c echo.Context) error {
	var req expressionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	parsed, err := s.calculator.Parse(c.Request().Context(), req.Latex)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, latexResponse{Latex: parsed.Latex()})
}

func (s *Server) SimplifyHandler(c echo.Context) error {
	var req expressionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	simplified, err := s.calculator.Simplify(c.Request().Context(), req.Latex)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, latexResponse{Latex: simplified})
}

func (s *Server) DerivativeHandler(c echo.Context) error {
	var req derivativeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if req.Variable == "" {
		req.Variable = "x"
	}

	derived, err := s.calculator.Derivative(
		c.Request().Context(), req.Latex, req.Variable)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, latexResponse{Latex: derived})
}

func (s *Server) ApproximateHandler(c echo.Context) error {
	var req expressionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	value, err := s.calculator.Approximate(c.Request().Context(), req.Latex)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, resultResponse{Result: value.String()})
}

// EvalHandler runs a full calculator line, so equality statements define
// variables and functions into the server's session context.
func (s *Server) EvalHandler(c echo.Context) error {
	var req expressionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	output, err := s.calculator.EvalLine(c.Request().Context(), req.Latex)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, resultResponse{Result: output})
}

func (s *Server) ListDefinitionsHandler(c echo.Context) error {
	if s.db == nil {
		return c.JSON(http.StatusOK, []struct{}{})
	}

	defs, err := s.db.ListDefinitions(c.Request().Context())
	if err != nil {
		slog.ErrorContext(c.Request().Context(),
			"failed to list definitions", slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, defs)
}
