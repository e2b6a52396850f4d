package main

import (
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taldoflemis/lateq/internal/evaluation"
	"github.com/taldoflemis/lateq/internal/parsers"
	"github.com/taldoflemis/lateq/internal/tui/models"
	"github.com/taldoflemis/lateq/internal/usecases"
)

func main() {
	renderer := lipgloss.DefaultRenderer()

	// The terminal is taken over by the TUI, so logs go to a file.
	file, err := os.OpenFile("lateq.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("Error opening log file: %v", err)
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	slog.SetDefault(slog.New(handler))

	theme := models.ThemeCatppuccin(renderer)

	calculator := usecases.NewCalculatorUseCase(
		parsers.NewRecursiveDescentParser(),
		evaluation.StandardMath(),
	)

	m := models.NewCalculatorModel(theme, calculator)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
