package view

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for each part of the screen.
type Styles struct {
	Title       lipgloss.Style
	Input       lipgloss.Style
	Placeholder lipgloss.Style
	Index       lipgloss.Style
	Task        lipgloss.Style
	Completed   lipgloss.Style
	Editing     lipgloss.Style
	Hint        lipgloss.Style
	Status      lipgloss.Style
	Notice      lipgloss.Style
	Empty       lipgloss.Style
}

// NewStyles builds styles bound to a renderer for out, so colors and
// strikethrough are dropped when out is not a terminal.
func NewStyles(out io.Writer) Styles {
	r := lipgloss.NewRenderer(out)

	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")),

		Input: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),

		Placeholder: r.NewStyle().
			Faint(true).
			Italic(true),

		Index: r.NewStyle().
			Faint(true),

		Task: r.NewStyle(),

		Completed: r.NewStyle().
			Strikethrough(true).
			Faint(true),

		Editing: r.NewStyle().
			Bold(true).
			Underline(true),

		Hint: r.NewStyle().
			Faint(true).
			Italic(true),

		Status: r.NewStyle().
			Foreground(lipgloss.Color("#F2C94C")),

		Notice: r.NewStyle().
			Foreground(lipgloss.Color("#EB5757")).
			Bold(true),

		Empty: r.NewStyle().
			Faint(true),
	}
}
