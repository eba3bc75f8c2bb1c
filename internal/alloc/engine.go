// Package alloc implements the tree allocation engine: value and percentage
// edits on a category tree with subtotal recomputation and variance tracking.
//
// Every operation is pure. The input tree is never mutated; the returned tree
// shares untouched subtrees with the input and carries new records along the
// path to any edited or recomputed node.
package alloc

import (
	"math"

	"github.com/theirongolddev/salestable/internal/model"
)

// SetAbsoluteValue replaces the value of the first node (pre-order) whose ID is
// targetID, records its variance, and recomputes every subtotal.
// An unknown targetID returns the tree unchanged.
func SetAbsoluteValue(tree model.Tree, targetID string, newValue float64) model.Tree {
	path := locate(tree, targetID)
	if path == nil {
		return tree
	}

	edited := rewrite(tree, path, func(n model.Node) model.Node {
		return withValue(n, newValue)
	}, nil)

	return RecomputeSubtotals(edited)
}

// ApplyPercentage scales the first node (pre-order) whose ID is targetID by
// percent and bumps its direct parent by the same percentage before
// recomputing subtotals.
//
// The recompute runs after the bump, so a parent's bumped value is replaced by
// its children's sum while the variance recorded by the bump stays. The same
// holds for a target that has children of its own.
func ApplyPercentage(tree model.Tree, targetID string, percent float64) model.Tree {
	path := locate(tree, targetID)
	if path == nil {
		return tree
	}

	bump := func(n model.Node) model.Node {
		return withValue(n, roundHalfUp(n.Value*(1+percent/100)))
	}

	return RecomputeSubtotals(rewrite(tree, path, bump, bump))
}

// RecomputeSubtotals sets every non-leaf value to the sum of its children,
// bottom-up. Leaves are untouched. Slices whose subtotals already hold are
// returned as-is.
func RecomputeSubtotals(tree model.Tree) model.Tree {
	out, _ := recompute(tree)
	return out
}

// Consistent reports whether every non-leaf value equals the sum of its
// children's values.
func Consistent(tree model.Tree) bool {
	ok := true
	tree.Walk(func(n model.Node, _ int) bool {
		if n.IsLeaf() {
			return true
		}
		if !sameValue(n.Value, sum(n.Children)) {
			ok = false
		}
		return ok
	})
	return ok
}

// Find returns the first node (pre-order) whose ID is id, along with the IDs of
// its ancestors from the root down.
func Find(tree model.Tree, id string) (model.Node, []string, bool) {
	path := locate(tree, id)
	if path == nil {
		return model.Node{}, nil, false
	}

	var ancestors []string
	nodes := []model.Node(tree)
	for _, idx := range path[:len(path)-1] {
		ancestors = append(ancestors, nodes[idx].ID)
		nodes = nodes[idx].Children
	}
	return nodes[path[len(path)-1]], ancestors, true
}

// Variance is the percentage change from oldValue to newValue, rounded half up.
// A zero oldValue yields an infinite or NaN result.
func Variance(oldValue, newValue float64) float64 {
	return roundHalfUp((newValue - oldValue) / oldValue * 100)
}

func withValue(n model.Node, v float64) model.Node {
	variance := Variance(n.Value, v)
	n.Value = v
	n.Variance = &variance
	return n
}

// locate returns the index path of the first pre-order match, or nil.
func locate(nodes []model.Node, id string) []int {
	for i, n := range nodes {
		if n.ID == id {
			return []int{i}
		}
		if sub := locate(n.Children, id); sub != nil {
			return append([]int{i}, sub...)
		}
	}
	return nil
}

// rewrite copies the nodes along path, applies target to the node at the end
// of the path and parent (when non-nil) to the node directly above it.
func rewrite(nodes []model.Node, path []int, target, parent func(model.Node) model.Node) []model.Node {
	out := make([]model.Node, len(nodes))
	copy(out, nodes)

	i := path[0]
	n := out[i]
	if len(path) == 1 {
		out[i] = target(n)
		return out
	}
	if len(path) == 2 && parent != nil {
		n = parent(n)
	}
	n.Children = rewrite(n.Children, path[1:], target, parent)
	out[i] = n
	return out
}

func recompute(nodes []model.Node) ([]model.Node, bool) {
	var out []model.Node
	for i, n := range nodes {
		if n.IsLeaf() {
			continue
		}
		children, changed := recompute(n.Children)
		total := sum(children)
		if !changed && sameValue(total, n.Value) {
			continue
		}
		if out == nil {
			out = make([]model.Node, len(nodes))
			copy(out, nodes)
		}
		n.Children = children
		n.Value = total
		out[i] = n
	}
	if out == nil {
		return nodes, false
	}
	return out, true
}

func sum(nodes []model.Node) float64 {
	total := 0.0
	for _, n := range nodes {
		total += n.Value
	}
	return total
}

func sameValue(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// roundHalfUp rounds to the nearest integer with ties going toward +Inf, so
// 12.5 becomes 13 and -2.5 becomes -2. NaN and infinities pass through.
func roundHalfUp(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}
