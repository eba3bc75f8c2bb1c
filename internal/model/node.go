// Package model defines the domain types for the sales table.
package model

// Node is one row of the hierarchical sales table.
//
// Value is authoritative for leaves. For nodes with children it is derived and
// equals the sum of the children's values once an edit completes.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Label    string   `json:"label" yaml:"label"`
	Value    float64  `json:"value" yaml:"value"`
	Variance *float64 `json:"variance,omitempty" yaml:"variance,omitempty"`
	Children []Node   `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Clone returns a deep copy of the node, including its variance and children.
func (n Node) Clone() Node {
	cp := n
	if n.Variance != nil {
		v := *n.Variance
		cp.Variance = &v
	}
	if n.Children != nil {
		cp.Children = make([]Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
		}
	}
	return cp
}

// Tree is the ordered list of top-level categories.
type Tree []Node

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	cp := make(Tree, len(t))
	for i, n := range t {
		cp[i] = n.Clone()
	}
	return cp
}

// Walk visits every node in pre-order with its depth (roots are depth 0).
// Returning false from fn stops the walk.
func (t Tree) Walk(fn func(n Node, depth int) bool) {
	walk(t, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int) bool) bool {
	for _, n := range nodes {
		if !fn(n, depth) {
			return false
		}
		if !walk(n.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// Len returns the total number of nodes in the tree.
func (t Tree) Len() int {
	count := 0
	t.Walk(func(Node, int) bool {
		count++
		return true
	})
	return count
}
