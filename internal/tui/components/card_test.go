package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/salestable/internal/tui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestContentCardWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	card := ContentCard("Sales", "Electronics\nFurniture", 40)
	for i, line := range strings.Split(card, "\n") {
		if w := lipgloss.Width(line); w != 40 {
			t.Errorf("line %d width = %d, want 40: %q", i, w, line)
		}
	}
	if !strings.Contains(card, "Sales") || !strings.Contains(card, "Furniture") {
		t.Errorf("card missing content:\n%s", card)
	}
}

func TestCardInnerWidthFloor(t *testing.T) {
	if got := CardInnerWidth(8); got != 10 {
		t.Errorf("CardInnerWidth(8) = %d, want 10", got)
	}
	if got := CardInnerWidth(60); got != 56 {
		t.Errorf("CardInnerWidth(60) = %d, want 56", got)
	}
}

func TestStatusBarFillsWidth(t *testing.T) {
	bar := RenderStatusBar(60, "[?]help [q]uit", "phones set to 900", false)
	if w := lipgloss.Width(bar); w != 60 {
		t.Errorf("status bar width = %d, want 60", w)
	}
	if !strings.HasSuffix(bar, "phones set to 900 ") {
		t.Errorf("message not right-aligned: %q", bar)
	}
}
