package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taldoflemis/lateq/configs"
	"github.com/taldoflemis/lateq/internal/database"
	"github.com/taldoflemis/lateq/internal/evaluation"
	"github.com/taldoflemis/lateq/internal/parsers"
	"github.com/taldoflemis/lateq/internal/server"
	"github.com/taldoflemis/lateq/internal/usecases"
)

func gracefulShutdown(
	apiServer *http.Server,
	done chan bool,
	shutdownTimeoutInSeconds int,
) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	slog.Info("shutting down gracefully. press Ctrl+C again to force")

	// The context is used to inform the server it has a few seconds to
	// finish the request it is currently handling
	ctx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(shutdownTimeoutInSeconds)*time.Second,
	)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
		slog.Error("server forced to shutdown", slog.Any("error", err))
	}

	slog.Info("server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	slogHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	})

	logger := slog.New(slogHandler)
	slog.SetDefault(logger)

	cfg, err := configs.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	calculator := usecases.NewCalculatorUseCase(
		parsers.NewRecursiveDescentParser(),
		evaluation.StandardMath(),
	)

	// Definition persistence is best effort: without a reachable database
	// the calculator still works, it just forgets definitions on restart.
	db, err := database.New()
	if err != nil {
		slog.Warn("running without definition persistence", slog.Any("error", err))
		db = nil
	} else {
		calculator.SetDefinitionStore(db)
		if err := calculator.RestoreDefinitions(context.Background()); err != nil {
			slog.Warn("failed to restore definitions", slog.Any("error", err))
		}
		defer db.Close()
	}

	echoServer := server.NewServer(*cfg, calculator, db)
	echoServer.SetDefaultMiddlewares()

	err = echoServer.RegisterRoutes()
	if err != nil {
		slog.Error("failed to register routes", slog.Any("error", err))
		panic(err)
	}

	httpServer := echoServer.ToHTTPServer()

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	go gracefulShutdown(httpServer, done, cfg.HTTP.ShutdownTimeoutInSeconds)

	slog.Info("starting HTTP server", slog.Int("port", cfg.HTTP.Port))

	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server error", slog.Any("error", err))
		panic(err)
	}

	// Wait for the shutdown to complete
	<-done
	slog.Info("graceful shutdown complete")
}
