// Package list renders LIST nodes. It decides the container element of a
// list from its kind, the indentation of the container, the start number of
// ordered lists, and which line breaks between items are dropped. Rendering
// of the list's children is delegated to a Renderer, which for nested lists
// calls back into Render.
package list

import (
	"github.com/shodgson/mdlist/model"
	"golang.org/x/net/html"
)

// Renderer renders a single document node. key identifies the node's
// position among its siblings and stays the same across renders of the same
// input. The returned node must not be attached to a tree yet; nil means
// the node produces no output.
type Renderer interface {
	RenderNode(node *model.Node, key string) *html.Node
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(node *model.Node, key string) *html.Node

func (f RendererFunc) RenderNode(node *model.Node, key string) *html.Node {
	return f(node, key)
}

type options struct {
	unit     Pixels
	roleAttr string
}

// Option configures Render.
type Option func(*options)

// WithIndentUnit sets the spacing added per indentation level. Non-positive
// values keep DefaultIndentUnit.
func WithIndentUnit(unit Pixels) Option {
	return func(o *options) {
		if unit > 0 {
			o.unit = unit
		}
	}
}

// WithRoleAttr writes the container role into the named attribute.
func WithRoleAttr(name string) Option {
	return func(o *options) {
		o.roleAttr = name
	}
}

// Render builds the container element for a list of the given kind and
// appends the rendered children, skipping the suppressed line breaks.
func Render(kind model.ListKind, indent int, children []*model.Node, r Renderer, opts ...Option) *html.Node {
	o := options{unit: DefaultIndentUnit}
	for _, opt := range opts {
		opt(&o)
	}

	c := Resolve(kind, children)
	attrs := c.Attributes(SpacingWithUnit(indent, o.unit))
	if o.roleAttr != "" {
		attrs = append(attrs, html.Attribute{Key: o.roleAttr, Val: string(c.Role)})
	}
	container := &html.Node{
		Type:     html.ElementNode,
		DataAtom: c.Atom,
		Data:     c.Atom.String(),
		Attr:     attrs,
	}
	for _, res := range Process(children, r) {
		if res.Node != nil {
			container.AppendChild(res.Node)
		}
	}
	return container
}
