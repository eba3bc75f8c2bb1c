package alloc

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/theirongolddev/salestable/internal/model"
)

// Kind selects how an Edit's amount is applied.
type Kind int

const (
	// Percentage scales the target (and its direct parent) by Amount percent.
	Percentage Kind = iota
	// Absolute replaces the target's value with Amount.
	Absolute
)

func (k Kind) String() string {
	switch k {
	case Percentage:
		return "percentage"
	case Absolute:
		return "absolute"
	default:
		return "unknown"
	}
}

// Edit is a single allocation against one node.
type Edit struct {
	Kind     Kind
	TargetID string
	Amount   float64
}

// Apply runs the engine operation matching e.Kind. Unknown kinds leave the
// tree unchanged.
func Apply(tree model.Tree, e Edit) model.Tree {
	switch e.Kind {
	case Percentage:
		return ApplyPercentage(tree, e.TargetID, e.Amount)
	case Absolute:
		return SetAbsoluteValue(tree, e.TargetID, e.Amount)
	default:
		return tree
	}
}

var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseAmount reads the longest leading decimal number from user input,
// ignoring surrounding whitespace and any trailing text ("12abc" is 12).
// ok is false when no number is found or the number is zero or not finite;
// callers skip the engine in that case.
func ParseAmount(text string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(text))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
