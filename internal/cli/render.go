package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/theirongolddev/salestable/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	subtotalStyle = cellStyle.Bold(true)

	borderStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Headers are the sales table columns.
var Headers = []string{"Label", "Value", "Variance %"}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(40).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTree renders the tree as a bordered table, one row per node in
// pre-order. Subtotal rows are bold; variances are colored by sign.
func RenderTree(tree model.Tree) string {
	rows := Rows(tree)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			FormatLabel(r.Label, r.Depth),
			FormatValue(r.Value),
			FormatVariance(r.Variance),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(Headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			style := cellStyle
			if row >= 0 && row < len(rows) && !rows[row].Leaf {
				style = subtotalStyle
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			if col == 2 && row >= 0 && row < len(rows) {
				switch VarianceSign(rows[row].Variance) {
				case 1:
					style = style.Foreground(ColorGreen)
				case -1:
					style = style.Foreground(ColorRed)
				default:
					style = style.Foreground(ColorTextMuted)
				}
			}
			return style
		})

	return t.Render() + "\n"
}
