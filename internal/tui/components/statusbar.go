package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/salestable/internal/tui/theme"
)

// RenderStatusBar renders the bottom bar: key hints on the left and the last
// action message on the right. warn colors the message as a warning.
func RenderStatusBar(width int, hints, message string, warn bool) string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	msgStyle := lipgloss.NewStyle().Foreground(t.Accent)
	if warn {
		msgStyle = msgStyle.Foreground(t.Warning)
	}

	left := hintStyle.Render(" " + hints)
	right := ""
	if message != "" {
		right = msgStyle.Render(message + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return left + strings.Repeat(" ", padding) + right
}
