package models

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/taldoflemis/lateq/internal/usecases"
)

const helpMarkdown = "# lateq\n\n" +
	"Type a LaTeX expression and press enter to evaluate it.\n\n" +
	"- `1+2*3`, `2(3)^3`, `\\frac{1}{2}`, `\\sqrt[3]{27}`, `|-3|`\n" +
	"- `x = 2` defines a variable, `f(x) = x^2` defines a function\n" +
	"- `\\pi`, `e`, `\\sin`, `\\cos`, `\\tan` and `\\ln` are predefined\n" +
	"- matrices: `\\begin{bmatrix} 1 & 2 \\\\ 3 & 4 \\end{bmatrix}`\n"

type historyEntry struct {
	input  string
	output string
	failed bool
}

// CalculatorModel is the interactive calculator screen: a prompt, the
// evaluated history above it and a help view rendered from markdown.
type CalculatorModel struct {
	calculator *usecases.CalculatorUseCase

	input    textinput.Model
	history  []historyEntry
	showHelp bool
	helpText string

	size tea.WindowSizeMsg
	keys calculatorKeyMap
	help help.Model
	*Theme
}

type calculatorKeyMap struct {
	Eval  key.Binding
	Clear key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k calculatorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Eval, k.Clear, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k calculatorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Eval, k.Clear},
		{k.Help, k.Quit},
	}
}

var calculatorKeys = calculatorKeyMap{
	Eval: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "evaluate"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear history"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

func NewCalculatorModel(theme *Theme, calculator *usecases.CalculatorUseCase) CalculatorModel {
	input := textinput.New()
	input.Placeholder = `\frac{1}{2}+\sqrt{2}`
	input.Prompt = theme.Prompt.Render(">> ")
	input.TextStyle = theme.Input
	input.Focus()

	return CalculatorModel{
		calculator: calculator,
		input:      input,
		helpText:   renderHelp(),
		size: tea.WindowSizeMsg{
			Width:  MinimalWidth,
			Height: MinimalHeight,
		},
		keys:  calculatorKeys,
		help:  help.New(),
		Theme: theme,
	}
}

func renderHelp() string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GlamourRenderWidth),
	)
	if err != nil {
		slog.Error("failed to build glamour renderer", slog.Any("error", err))
		return helpMarkdown
	}
	rendered, err := renderer.Render(helpMarkdown)
	if err != nil {
		slog.Error("failed to render help markdown", slog.Any("error", err))
		return helpMarkdown
	}
	return rendered
}

func (m CalculatorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.history = nil
			return m, nil
		case key.Matches(msg, m.keys.Eval):
			return m.evalCurrentLine(), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m CalculatorModel) evalCurrentLine() CalculatorModel {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m
	}

	entry := historyEntry{input: line}
	output, err := m.calculator.EvalLine(context.Background(), line)
	if err != nil {
		entry.output = err.Error()
		entry.failed = true
	} else {
		entry.output = output
	}

	m.history = append(m.history, entry)
	if len(m.history) > HistoryLimit {
		m.history = m.history[len(m.history)-HistoryLimit:]
	}
	m.input.Reset()
	return m
}

func (m CalculatorModel) View() string {
	var b strings.Builder

	b.WriteString(m.Title.Render("lateq"))
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(m.helpText)
		b.WriteString("\n")
	}

	visible := m.history
	maxLines := m.size.Height - 6
	if maxLines > 0 && len(visible)*2 > maxLines {
		visible = visible[len(visible)-maxLines/2:]
	}
	for _, entry := range visible {
		b.WriteString(m.Hint.Render(">> "))
		b.WriteString(m.History.Render(entry.input))
		b.WriteString("\n")
		if entry.failed {
			b.WriteString(m.Error.Render(entry.output))
		} else {
			b.WriteString(m.Result.Render(entry.output))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	m.help.Styles = m.Theme.Help
	b.WriteString(m.help.View(m.keys))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
