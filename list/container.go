package list

import (
	"strconv"
	"strings"

	"github.com/shodgson/mdlist/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Role is the structural category of a list container.
type Role string

const (
	RoleOrdered     Role = "ordered-list-container"
	RoleUnordered   Role = "unordered-list-container"
	RoleDescription Role = "description-list-container"
	RoleGeneric     Role = "generic-container"
)

// Classes shared by every list container.
var baseClasses = []string{"list-inside", "break-all"}

// Container describes the element a list renders into.
type Container struct {
	Role    Role
	Atom    atom.Atom
	Classes []string
	// Start is the number the list counts from, valid when HasStart is set.
	Start    int
	HasStart bool
}

// Resolve maps a list kind to its container. Ordered lists whose first child
// is an ORDERED_LIST_ITEM carrying a number start from that number.
func Resolve(kind model.ListKind, children []*model.Node) Container {
	var c Container
	switch kind {
	case model.ListKindOrdered:
		c = Container{Role: RoleOrdered, Atom: atom.Ol}
	case model.ListKindUnordered:
		c = Container{Role: RoleUnordered, Atom: atom.Ul}
	case model.ListKindDescription:
		c = Container{Role: RoleDescription, Atom: atom.Dl}
	default:
		c = Container{Role: RoleGeneric, Atom: atom.Div}
	}

	c.Classes = append(append([]string{}, baseClasses...), listStyle(kind))

	if kind == model.ListKindOrdered && len(children) > 0 {
		if first := children[0]; first != nil && first.Type == model.NodeTypeOrderedListItem {
			c.Start, c.HasStart = first.Number()
		}
	}
	return c
}

func listStyle(kind model.ListKind) string {
	switch kind {
	case model.ListKindOrdered:
		return "list-decimal"
	case model.ListKindUnordered:
		return "list-disc"
	default:
		return "list-none"
	}
}

// Attributes returns the class, style and start attributes of the container.
func (c Container) Attributes(spacing Pixels) []html.Attribute {
	attrs := []html.Attribute{
		{Key: "class", Val: strings.Join(c.Classes, " ")},
		{Key: "style", Val: "padding-left: " + spacing.String()},
	}
	if c.HasStart {
		attrs = append(attrs, html.Attribute{Key: "start", Val: strconv.Itoa(c.Start)})
	}
	return attrs
}
