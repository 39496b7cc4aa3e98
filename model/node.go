package model

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Node is a node in the tree that makes up a parsed document. A document is a
// Node of type DOCUMENT, with children that are also Nodes.
//
// Nodes are treated as immutable once built: renderers only read them, and
// several renders of the same tree may run at the same time.
type Node struct {
	// The type of node that this is.
	Type NodeType
	// Type-specific payload, like the number of an ordered list item or the
	// kind of a list. Values decoded from JSON are float64, string or bool.
	Attrs map[string]interface{}
	// A container holding the node's children.
	Content *Fragment
	// For text nodes, this contains the node's text content.
	Text *string
}

// NewNode creates a node of the given type with the given children.
func NewNode(typ NodeType, attrs map[string]interface{}, content ...*Node) *Node {
	return &Node{Type: typ, Attrs: attrs, Content: NewFragment(content...)}
}

// NewTextNode creates a TEXT node.
func NewTextNode(text string) *Node {
	return &Node{Type: NodeTypeText, Text: &text, Content: EmptyFragment}
}

// True when this is a text node.
func (n *Node) IsText() bool {
	return n.Text != nil
}

// True when this node sits inside text blocks.
func (n *Node) IsInline() bool {
	return n.Type.IsInline()
}

// True when this is a block (non-inline node)
func (n *Node) IsBlock() bool {
	return !n.Type.IsInline()
}

// The number of children that the node has.
func (n *Node) ChildCount() int {
	return n.Content.ChildCount()
}

// Get the child node at the given index. Returns an error when the index is
// out of range.
func (n *Node) Child(index int) (*Node, error) {
	return n.Content.Child(index)
}

// Get the child node at the given index, if it exists.
func (n *Node) MaybeChild(index int) *Node {
	return n.Content.MaybeChild(index)
}

// Children returns the node's children in document order.
func (n *Node) Children() []*Node {
	if n.Content == nil {
		return nil
	}
	return n.Content.Content
}

// ForEach calls f for every child node.
func (n *Node) ForEach(f func(node *Node, index int)) {
	n.Content.ForEach(f)
}

// Concatenates all the text nodes found in this node and its children.
func (n *Node) TextContent() string {
	if n.IsText() {
		return *n.Text
	}
	var b strings.Builder
	n.Content.ForEach(func(child *Node, _ int) {
		b.WriteString(child.TextContent())
	})
	return b.String()
}

// Test whether two nodes represent the same piece of document.
func (n *Node) Eq(other *Node) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil {
		return false
	}
	if n.Type != other.Type || n.IsText() != other.IsText() {
		return false
	}
	if n.IsText() && *n.Text != *other.Text {
		return false
	}
	if len(n.Attrs) != 0 || len(other.Attrs) != 0 {
		if !reflect.DeepEqual(n.Attrs, other.Attrs) {
			return false
		}
	}
	return n.Content.Eq(other.Content)
}

// Attr returns the raw attribute value.
func (n *Node) Attr(name string) (interface{}, bool) {
	if n == nil || n.Attrs == nil {
		return nil, false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// AttrInt reads an integer attribute. It accepts the integer types, float64
// (as decoded from JSON) and decimal strings. ok is false when the attribute
// is missing or has another shape.
func (n *Node) AttrInt(name string) (value int, ok bool) {
	v, found := n.Attr(name)
	if !found {
		return 0, false
	}
	switch v := v.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int(v), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// AttrString reads a string attribute, returning "" when it is missing.
func (n *Node) AttrString(name string) string {
	v, _ := n.Attr(name)
	s, _ := v.(string)
	return s
}

// AttrBool reads a boolean attribute, returning false when it is missing.
func (n *Node) AttrBool(name string) bool {
	v, _ := n.Attr(name)
	b, _ := v.(bool)
	return b
}

// ListKind returns the kind of a LIST node. The attribute may hold a
// ListKind, a kind name, or a number.
func (n *Node) ListKind() ListKind {
	v, _ := n.Attr(AttrKind)
	switch v := v.(type) {
	case ListKind:
		return v
	case string:
		return ParseListKind(v)
	}
	if i, ok := n.AttrInt(AttrKind); ok {
		if _, known := listKindNames[ListKind(i)]; known {
			return ListKind(i)
		}
	}
	return ListKindUnspecified
}

// Indent returns the nesting depth of a LIST node, 0 when unset.
func (n *Node) Indent() int {
	i, ok := n.AttrInt(AttrIndent)
	if !ok || i < 0 {
		return 0
	}
	return i
}

// Number returns the number carried by an ORDERED_LIST_ITEM.
func (n *Node) Number() (int, bool) {
	return n.AttrInt(AttrNumber)
}

// Return a string representation of this node for debugging purposes.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.IsText() {
		return fmt.Sprintf("%q", *n.Text)
	}
	name := string(n.Type)
	if n.Content.ChildCount() > 0 {
		name += fmt.Sprintf("(%s)", n.Content.toStringInner())
	}
	return name
}
