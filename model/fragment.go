package model

import (
	"fmt"
	"strings"
)

// A fragment represents a node's collection of child nodes. Order is document
// order and is significant.
//
// Like nodes, fragments are not mutated once a tree is built.
type Fragment struct {
	Content []*Node
}

// An empty fragment. Intended to be reused whenever a node doesn't contain
// anything (rather than allocating a new empty fragment for each leaf node).
var EmptyFragment = &Fragment{}

// NewFragment builds a fragment holding the given nodes.
func NewFragment(nodes ...*Node) *Fragment {
	if len(nodes) == 0 {
		return EmptyFragment
	}
	return &Fragment{Content: nodes}
}

// The number of child nodes in this fragment.
func (f *Fragment) ChildCount() int {
	if f == nil {
		return 0
	}
	return len(f.Content)
}

// Get the child node at the given index. Returns an error when the index is
// out of range.
func (f *Fragment) Child(index int) (*Node, error) {
	if index < 0 || index >= f.ChildCount() {
		return nil, fmt.Errorf("index %d out of range for %v", index, f)
	}
	return f.Content[index], nil
}

// Get the child node at the given index, if it exists.
func (f *Fragment) MaybeChild(index int) *Node {
	if index < 0 || index >= f.ChildCount() {
		return nil
	}
	return f.Content[index]
}

// The first child of the fragment, or nil if it is empty.
func (f *Fragment) FirstChild() *Node {
	return f.MaybeChild(0)
}

// The last child of the fragment, or nil if it is empty.
func (f *Fragment) LastChild() *Node {
	return f.MaybeChild(f.ChildCount() - 1)
}

// Call f for every child node, passing the node and its index into this
// fragment.
func (f *Fragment) ForEach(fn func(node *Node, index int)) {
	if f == nil {
		return
	}
	for i, child := range f.Content {
		fn(child, i)
	}
}

// Compare this fragment to another one.
func (f *Fragment) Eq(other *Fragment) bool {
	if f.ChildCount() != other.ChildCount() {
		return false
	}
	for i := 0; i < f.ChildCount(); i++ {
		if !f.Content[i].Eq(other.Content[i]) {
			return false
		}
	}
	return true
}

// Return a debugging string that describes this fragment.
func (f *Fragment) String() string {
	return "<" + f.toStringInner() + ">"
}

func (f *Fragment) toStringInner() string {
	if f == nil {
		return ""
	}
	parts := make([]string, len(f.Content))
	for i, n := range f.Content {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}
