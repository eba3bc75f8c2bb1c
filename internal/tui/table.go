package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/salestable/internal/cli"
	"github.com/theirongolddev/salestable/internal/tui/components"
	"github.com/theirongolddev/salestable/internal/tui/theme"
)

const (
	valueColWidth    = 14
	varianceColWidth = 11
)

// renderTable draws the visible window of rows inside a card. The selected
// row is highlighted; subtotal rows are bold.
func (a App) renderTable(cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)
	labelW := inner - valueColWidth - varianceColWidth
	if labelW < 8 {
		labelW = 8
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	header := headerStyle.Render(
		padRight(cli.Headers[0], labelW) +
			padLeft(cli.Headers[1], valueColWidth) +
			padLeft(cli.Headers[2], varianceColWidth))

	if len(a.rows) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextDim).Render("No categories")
		return components.ContentCard("Sales", header+"\n"+empty, cw)
	}

	visible := a.visibleRows()
	end := a.offset + visible
	if end > len(a.rows) {
		end = len(a.rows)
	}

	lines := make([]string, 0, end-a.offset+1)
	lines = append(lines, header)
	for i := a.offset; i < end; i++ {
		lines = append(lines, renderRow(a.rows[i], labelW, i == a.cursor))
	}

	title := "Sales"
	if len(a.rows) > visible {
		title = fmt.Sprintf("Sales [%d-%d of %d]", a.offset+1, end, len(a.rows))
	}
	return components.ContentCard(title, strings.Join(lines, "\n"), cw)
}

func renderRow(r cli.Row, labelW int, selected bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextPrimary)
	if !r.Leaf {
		base = base.Bold(true)
	}
	if selected {
		base = base.Background(t.Selected)
	}

	varStyle := base
	switch cli.VarianceSign(r.Variance) {
	case 1:
		varStyle = varStyle.Foreground(t.Positive)
	case -1:
		varStyle = varStyle.Foreground(t.Negative)
	default:
		varStyle = varStyle.Foreground(t.TextMuted)
	}

	label := cli.FormatLabel(r.Label, r.Depth)
	label = lipgloss.NewStyle().MaxWidth(labelW - 1).Render(label)

	return base.Render(padRight(label, labelW)) +
		base.Render(padLeft(cli.FormatValue(r.Value), valueColWidth)) +
		varStyle.Render(padLeft(cli.FormatVariance(r.Variance), varianceColWidth))
}

func padRight(s string, w int) string {
	n := w - lipgloss.Width(s)
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}

func padLeft(s string, w int) string {
	n := w - lipgloss.Width(s)
	if n <= 0 {
		return s
	}
	return strings.Repeat(" ", n) + s
}
