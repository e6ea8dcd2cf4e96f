package styles

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// --- Typography ---

var (
	// Title is the report header style.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(White)

	// Heading is used for section headings.
	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)

	// Label is used for field names.
	Label = lipgloss.NewStyle().
		Foreground(Gray)

	// Value is used for field values.
	Value = lipgloss.NewStyle().
		Foreground(White)

	// MutedText is for hints and less important info.
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// AccentText highlights keys and paths.
	AccentText = lipgloss.NewStyle().
			Foreground(Blue)

	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	SuccessText = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	WarningText = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)
)

// StatusStyle returns the style for a conversion or deploy status value.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "converted", "copied", "success":
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case "skipped", "missing", "warning":
		return lipgloss.NewStyle().Foreground(Yellow)
	case "failed", "error":
		return lipgloss.NewStyle().Foreground(Red).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Gray)
	}
}

// Renderer applies styles only when output goes to a color-capable
// terminal. Piped and redirected output stays plain.
type Renderer struct {
	color bool
}

// For returns a Renderer for w. Styling is enabled when w is a terminal
// and NO_COLOR is unset.
func For(w io.Writer) Renderer {
	if os.Getenv("NO_COLOR") != "" {
		return Renderer{}
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return Renderer{}
	}
	return Renderer{color: term.IsTerminal(int(f.Fd()))}
}

// Plain returns a Renderer that never styles.
func Plain() Renderer { return Renderer{} }

// Color reports whether styles are applied.
func (r Renderer) Color() bool { return r.color }

// Render applies s to text when styling is enabled.
func (r Renderer) Render(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Status renders a status value with its StatusStyle.
func (r Renderer) Status(status string) string {
	return r.Render(StatusStyle(status), status)
}
