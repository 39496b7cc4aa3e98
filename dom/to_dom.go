// Package dom serializes document trees to HTML nodes. A Serializer holds one
// ToDOM function per node type; LIST nodes are handed to the list package,
// which calls back into the Serializer for each list child.
package dom

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/shodgson/mdlist/list"
	"github.com/shodgson/mdlist/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ToDOM builds the DOM for a node. dom is the outermost element and content
// the element the node's children are serialized into; content is nil for
// leaf nodes.
type ToDOM = func(node *model.Node) (dom, content *html.Node)

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func defaultDOMGenerator(a atom.Atom) ToDOM {
	return func(*model.Node) (*html.Node, *html.Node) {
		n := element(a)
		return n, n
	}
}

func leafDOMGenerator(a atom.Atom) ToDOM {
	return func(*model.Node) (*html.Node, *html.Node) {
		return element(a), nil
	}
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func headingDOM(n *model.Node) (*html.Node, *html.Node) {
	level, _ := n.AttrInt(model.AttrLevel)
	if level < 1 {
		level = 1
	} else if level > len(headingAtoms) {
		level = len(headingAtoms)
	}
	h := element(headingAtoms[level-1])
	return h, h
}

func codeBlockDOM(n *model.Node) (*html.Node, *html.Node) {
	pre := element(atom.Pre)
	code := element(atom.Code)
	if lang := n.AttrString(model.AttrLanguage); lang != "" {
		code.Attr = append(code.Attr, attr("class", "language-"+lang))
	}
	pre.AppendChild(code)
	return pre, code
}

func textDOM(n *model.Node) (*html.Node, *html.Node) {
	return &html.Node{Type: html.TextNode, Data: n.TextContent()}, nil
}

func linkDOM(n *model.Node) (*html.Node, *html.Node) {
	a := element(atom.A, attr("href", n.AttrString(model.AttrURL)))
	if title := n.AttrString(model.AttrTitle); title != "" {
		a.Attr = append(a.Attr, attr("title", title))
	}
	if n.ChildCount() == 0 {
		a.AppendChild(&html.Node{Type: html.TextNode, Data: n.AttrString(model.AttrURL)})
	}
	return a, a
}

func imageDOM(n *model.Node) (*html.Node, *html.Node) {
	img := element(atom.Img,
		attr("src", n.AttrString(model.AttrURL)),
		attr("alt", n.AttrString(model.AttrAlt)),
	)
	if title := n.AttrString(model.AttrTitle); title != "" {
		img.Attr = append(img.Attr, attr("title", title))
	}
	return img, nil
}

func taskListItemDOM(n *model.Node) (*html.Node, *html.Node) {
	li := element(atom.Li)
	box := element(atom.Input, attr("type", "checkbox"), attr("disabled", ""))
	if n.AttrBool(model.AttrComplete) {
		box.Attr = append(box.Attr, attr("checked", ""))
	}
	li.AppendChild(box)
	return li, li
}

// Default ToDOM functions
var defaultToDOM = map[model.NodeType]ToDOM{
	model.NodeTypeDocument:          defaultDOMGenerator(atom.Div),
	model.NodeTypeParagraph:         defaultDOMGenerator(atom.P),
	model.NodeTypeBlockquote:        defaultDOMGenerator(atom.Blockquote),
	model.NodeTypeHorizontalRule:    leafDOMGenerator(atom.Hr),
	model.NodeTypeLineBreak:         leafDOMGenerator(atom.Br),
	model.NodeTypeHeading:           headingDOM,
	model.NodeTypeCodeBlock:         codeBlockDOM,
	model.NodeTypeOrderedListItem:   defaultDOMGenerator(atom.Li),
	model.NodeTypeUnorderedListItem: defaultDOMGenerator(atom.Li),
	model.NodeTypeTaskListItem:      taskListItemDOM,
	model.NodeTypeDescriptionTerm:   defaultDOMGenerator(atom.Dt),
	model.NodeTypeDescriptionDetail: defaultDOMGenerator(atom.Dd),
	model.NodeTypeText:              textDOM,
	model.NodeTypeBold:              defaultDOMGenerator(atom.Strong),
	model.NodeTypeItalic:            defaultDOMGenerator(atom.Em),
	model.NodeTypeStrikethrough:     defaultDOMGenerator(atom.Del),
	model.NodeTypeCode:              defaultDOMGenerator(atom.Code),
	model.NodeTypeLink:              linkDOM,
	model.NodeTypeAutoLink:          linkDOM,
	model.NodeTypeImage:             imageDOM,
}

// DefaultNodes returns a copy of the default ToDOM table, as a base for a
// custom serializer.
func DefaultNodes() map[model.NodeType]ToDOM {
	nodes := make(map[model.NodeType]ToDOM, len(defaultToDOM))
	for typ, fn := range defaultToDOM {
		nodes[typ] = fn
	}
	return nodes
}

// genericDOM renders nodes of unknown types: text if they carry text, a span
// or a div around their children otherwise.
func genericDOM(n *model.Node) (*html.Node, *html.Node) {
	if n.IsText() {
		return textDOM(n)
	}
	if n.IsInline() {
		return defaultDOMGenerator(atom.Span)(n)
	}
	return defaultDOMGenerator(atom.Div)(n)
}

// A Serializer knows how to convert document nodes of various types to DOM
// nodes. It implements list.Renderer. The zero value is not usable; build
// one with NewSerializer. A Serializer is safe for concurrent use.
type Serializer struct {
	// The node serialization functions. Node types missing from the map are
	// rendered generically.
	Nodes map[model.NodeType]ToDOM

	keyAttr  string
	listOpts []list.Option
	log      *slog.Logger
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithKeyAttr writes each list child's positional key into the named
// attribute of its element.
func WithKeyAttr(name string) Option {
	return func(s *Serializer) { s.keyAttr = name }
}

// WithRoleAttr writes the container role of lists into the named attribute.
func WithRoleAttr(name string) Option {
	return func(s *Serializer) {
		if name != "" {
			s.listOpts = append(s.listOpts, list.WithRoleAttr(name))
		}
	}
}

// WithIndentUnit sets the left padding per list nesting level.
func WithIndentUnit(unit list.Pixels) Option {
	return func(s *Serializer) { s.listOpts = append(s.listOpts, list.WithIndentUnit(unit)) }
}

// WithLogger logs each dispatched node at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(s *Serializer) {
		if log != nil {
			s.log = log
		}
	}
}

// WithNodes replaces the ToDOM table.
func WithNodes(nodes map[model.NodeType]ToDOM) Option {
	return func(s *Serializer) { s.Nodes = nodes }
}

// NewSerializer builds a serializer using the default ToDOM table.
func NewSerializer(opts ...Option) *Serializer {
	s := &Serializer{
		Nodes: DefaultNodes(),
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serialize the content of this fragment to DOM nodes appended to target.
// When target is nil, a new document node is created.
func (s *Serializer) SerializeFragment(fragment *model.Fragment, target *html.Node) *html.Node {
	if target == nil {
		target = &html.Node{Type: html.DocumentNode}
	}
	fragment.ForEach(func(node *model.Node, _ int) {
		if child := s.SerializeNode(node); child != nil {
			target.AppendChild(child)
		}
	})
	return target
}

// Serialize this node to a DOM node. This can be useful when you need to
// serialize a part of a document, as opposed to the whole document. To
// serialize a whole document, use SerializeFragment.
func (s *Serializer) SerializeNode(node *model.Node) *html.Node {
	return s.RenderNode(node, "")
}

// RenderNode serializes node; key is its position among the children of a
// list, or "" outside of lists.
func (s *Serializer) RenderNode(node *model.Node, key string) *html.Node {
	if node == nil {
		return nil
	}
	s.log.Debug("serialize node", "type", node.Type, "key", key, "children", node.ChildCount())

	var top *html.Node
	if node.Type == model.NodeTypeList {
		top = list.Render(node.ListKind(), node.Indent(), node.Children(), s, s.listOpts...)
	} else {
		domFn := s.Nodes[node.Type]
		if domFn == nil {
			domFn = genericDOM
		}
		var content *html.Node
		top, content = domFn(node)
		if top == nil {
			return nil
		}
		if content != nil {
			s.SerializeFragment(node.Content, content)
		}
	}

	if s.keyAttr != "" && key != "" && top.Type == html.ElementNode {
		top.Attr = append(top.Attr, attr(s.keyAttr, key))
	}
	return top
}

// Render writes the HTML for node. A DOCUMENT node renders as its children
// without a wrapper.
func (s *Serializer) Render(w io.Writer, node *model.Node) error {
	var root *html.Node
	if node != nil && node.Type == model.NodeTypeDocument {
		root = s.SerializeFragment(node.Content, nil)
	} else {
		root = &html.Node{Type: html.DocumentNode}
		if child := s.SerializeNode(node); child != nil {
			root.AppendChild(child)
		}
	}
	return html.Render(w, root)
}

// RenderString is Render into a string.
func (s *Serializer) RenderString(node *model.Node) (string, error) {
	buf := new(bytes.Buffer)
	if err := s.Render(buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

