package models

// Colors for the TUI application
import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Theme is the collection of styles the calculator screen is drawn with.
type Theme struct {
	Title    lipgloss.Style
	Prompt   lipgloss.Style
	Input    lipgloss.Style
	Result   lipgloss.Style
	Error    lipgloss.Style
	History  lipgloss.Style
	Hint     lipgloss.Style
	Help     help.Styles
	Renderer *lipgloss.Renderer
}

// ThemeCatppuccin returns the Catppuccin color scheme, Latte in light
// terminals and Mocha in dark ones.
func ThemeCatppuccin(renderer *lipgloss.Renderer) *Theme {
	light := catppuccin.Latte
	dark := catppuccin.Mocha
	var (
		text     = lipgloss.AdaptiveColor{Light: light.Text().Hex, Dark: dark.Text().Hex}
		subtext0 = lipgloss.AdaptiveColor{Light: light.Subtext0().Hex, Dark: dark.Subtext0().Hex}
		overlay1 = lipgloss.AdaptiveColor{Light: light.Overlay1().Hex, Dark: dark.Overlay1().Hex}
		green    = lipgloss.AdaptiveColor{Light: light.Green().Hex, Dark: dark.Green().Hex}
		red      = lipgloss.AdaptiveColor{Light: light.Red().Hex, Dark: dark.Red().Hex}
		pink     = lipgloss.AdaptiveColor{Light: light.Pink().Hex, Dark: dark.Pink().Hex}
		mauve    = lipgloss.AdaptiveColor{Light: light.Mauve().Hex, Dark: dark.Mauve().Hex}
	)

	t := &Theme{Renderer: renderer}
	t.Title = renderer.NewStyle().Foreground(mauve).Bold(true)
	t.Prompt = renderer.NewStyle().Foreground(pink)
	t.Input = renderer.NewStyle().Foreground(text)
	t.Result = renderer.NewStyle().Foreground(green)
	t.Error = renderer.NewStyle().Foreground(red)
	t.History = renderer.NewStyle().Foreground(text)
	t.Hint = renderer.NewStyle().Foreground(subtext0)

	t.Help = help.New().Styles
	t.Help.ShortKey = t.Help.ShortKey.Foreground(subtext0)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(overlay1)
	t.Help.ShortSeparator = t.Help.ShortSeparator.Foreground(subtext0)
	t.Help.FullKey = t.Help.FullKey.Foreground(subtext0)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(overlay1)
	t.Help.FullSeparator = t.Help.FullSeparator.Foreground(subtext0)

	return t
}
