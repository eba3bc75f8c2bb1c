package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/salestable/internal/alloc"
	"github.com/theirongolddev/salestable/internal/cli"
	"github.com/theirongolddev/salestable/internal/tui/components"
	"github.com/theirongolddev/salestable/internal/tui/theme"
)

type inputMode int

const (
	inputNone inputMode = iota
	inputPercentage
	inputAbsolute
)

// border (2) + title (1) + input line (1)
const inputCardHeight = 4

func (m inputMode) kind() alloc.Kind {
	if m == inputPercentage {
		return alloc.Percentage
	}
	return alloc.Absolute
}

func (m inputMode) title() string {
	if m == inputPercentage {
		return "Allocate %"
	}
	return "Allocate Value"
}

func (a App) startInput(mode inputMode) (tea.Model, tea.Cmd) {
	if len(a.rows) == 0 {
		return a, nil
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 32
	ti.Width = 24
	if mode == inputPercentage {
		ti.Placeholder = "10 or -5"
	} else {
		ti.Placeholder = "1200"
	}

	ti.Focus()
	a.mode = mode
	a.input = ti
	a.clampCursor()
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.stopInput()
		return a, nil
	case "enter":
		a.submitInput()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submitInput parses the amount and applies it to the selected row. Input
// that does not parse to a non-zero number leaves the tree untouched.
func (a *App) submitInput() {
	raw := a.input.Value()
	mode := a.mode
	a.stopInput()

	amount, ok := alloc.ParseAmount(raw)
	if !ok {
		a.logger.Debug("amount rejected", zap.String("input", raw))
		a.setStatus("enter a non-zero number", true)
		return
	}
	a.allocate(mode.kind(), amount)
}

func (a *App) stopInput() {
	a.mode = inputNone
	a.input.Blur()
	a.input.Reset()
	a.clampCursor()
}

func (a App) renderInput(cw int) string {
	t := theme.Active

	target := ""
	if len(a.rows) > 0 {
		target = a.rows[a.cursor].Label
	}
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("  " + target)
	if a.mode == inputAbsolute && len(a.rows) > 0 {
		hint = lipgloss.NewStyle().Foreground(t.TextDim).
			Render("  " + target + " is " + cli.FormatValue(a.rows[a.cursor].Value))
	}

	return components.FocusCard(a.mode.title(), a.input.View()+hint, cw)
}
