// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/theirongolddev/salestable/internal/alloc"
	"github.com/theirongolddev/salestable/internal/model"
)

// FormatValue formats a node value with thousands separators.
// e.g., 1560 -> "1,560", 1234.5 -> "1,234.5"
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return humanize.CommafWithDigits(v, 2)
}

// FormatVariance formats a variance percentage. Absent, zero and NaN
// variances all read "0%".
func FormatVariance(v *float64) string {
	if v == nil || *v == 0 || math.IsNaN(*v) {
		return "0%"
	}
	if math.IsInf(*v, 0) {
		return FormatValue(*v) + "%"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + "%"
}

// FormatNumber adds comma separators to an integer.
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatLabel indents a label by depth; nested rows get a "-- " marker.
func FormatLabel(label string, depth int) string {
	if depth == 0 {
		return label
	}
	return strings.Repeat("  ", depth-1) + "-- " + label
}

// Row is one flattened table line.
type Row struct {
	ID       string
	Label    string
	Depth    int
	Value    float64
	Variance *float64
	Leaf     bool
}

// Rows flattens a tree in pre-order, the display order of the table.
func Rows(tree model.Tree) []Row {
	rows := make([]Row, 0, tree.Len())
	tree.Walk(func(n model.Node, depth int) bool {
		rows = append(rows, Row{
			ID:       n.ID,
			Label:    n.Label,
			Depth:    depth,
			Value:    n.Value,
			Variance: n.Variance,
			Leaf:     n.IsLeaf(),
		})
		return true
	})
	return rows
}

// VarianceSign returns -1, 0 or +1 for coloring a variance cell.
func VarianceSign(v *float64) int {
	switch {
	case v == nil || math.IsNaN(*v) || *v == 0:
		return 0
	case *v > 0:
		return 1
	default:
		return -1
	}
}

// FormatEdit describes an allocation for status lines, e.g. "+10% on phones".
func FormatEdit(e alloc.Edit) string {
	if e.Kind == alloc.Percentage {
		return fmt.Sprintf("%+g%% on %s", e.Amount, e.TargetID)
	}
	return fmt.Sprintf("%s set to %s", e.TargetID, FormatValue(e.Amount))
}
