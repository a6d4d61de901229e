package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles for human-oriented output. JSON output paths bypass these.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	draftStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Italic(true)
)

// terminalWidth returns the current terminal width, or a conservative
// default when stdout is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// truncateLine shortens s to fit the terminal width.
func truncateLine(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
