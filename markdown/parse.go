// Package markdown converts between markdown text and document trees.
//
// Parse reads markdown with goldmark and produces the node layout the list
// renderer expects: list items of one list are siblings of a LIST node,
// separated by LINE_BREAK nodes (two for loose lists). Restore writes a tree
// back as markdown.
package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/shodgson/mdlist/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Parser turns markdown into document trees. It is safe for concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// NewParser returns a parser with strikethrough, task lists, bare URL links
// and definition lists enabled.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.TaskList,
				extension.Linkify,
				extension.DefinitionList,
			),
		),
	}
}

var defaultParser = NewParser()

// Parse reads all of r and parses it with the default parser.
func Parse(r io.Reader) (*model.Node, error) {
	return defaultParser.Parse(r)
}

// ParseBytes parses src with the default parser.
func ParseBytes(src []byte) *model.Node {
	return defaultParser.ParseBytes(src)
}

func (p *Parser) Parse(r io.Reader) (*model.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}
	return p.ParseBytes(src), nil
}

// ParseBytes parses src into a DOCUMENT node.
func (p *Parser) ParseBytes(src []byte) *model.Node {
	doc := p.md.Parser().Parse(text.NewReader(src))
	c := &converter{src: src}
	return model.NewNode(model.NodeTypeDocument, nil, c.children(doc, 0)...)
}

// converter walks a goldmark AST. depth is the list nesting depth of the
// nodes being converted.
type converter struct {
	src []byte
}

func lineBreak() *model.Node {
	return model.NewNode(model.NodeTypeLineBreak, nil)
}

// children converts the children of n. goldmark splits a run of text at
// every inline trigger character; adjacent segments not separated by a line
// break are joined back into one TEXT node.
func (c *converter) children(n ast.Node, depth int) []*model.Node {
	var out []*model.Node
	join := false
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		nodes := c.convert(child, depth)
		if join && isTextSegment(child) && len(nodes) > 0 && len(out) > 0 {
			last := out[len(out)-1]
			if last.Type == model.NodeTypeText && last.IsText() && nodes[0].IsText() {
				out[len(out)-1] = model.NewTextNode(*last.Text + *nodes[0].Text)
				nodes = nodes[1:]
			}
		}
		out = append(out, nodes...)
		join = isTextSegment(child) && !endsLine(child)
	}
	return out
}

func isTextSegment(n ast.Node) bool {
	switch n.(type) {
	case *ast.Text, *ast.String:
		return true
	}
	return false
}

func endsLine(n ast.Node) bool {
	t, ok := n.(*ast.Text)
	return ok && (t.SoftLineBreak() || t.HardLineBreak())
}

func (c *converter) convert(n ast.Node, depth int) []*model.Node {
	one := func(typ model.NodeType, attrs map[string]interface{}, content ...*model.Node) []*model.Node {
		return []*model.Node{model.NewNode(typ, attrs, content...)}
	}

	switch n := n.(type) {
	case *ast.Paragraph:
		return one(model.NodeTypeParagraph, nil, c.children(n, depth)...)
	case *ast.TextBlock:
		return c.children(n, depth)
	case *ast.Heading:
		return one(model.NodeTypeHeading, map[string]interface{}{model.AttrLevel: n.Level}, c.children(n, depth)...)
	case *ast.ThematicBreak:
		return one(model.NodeTypeHorizontalRule, nil)
	case *ast.FencedCodeBlock:
		var attrs map[string]interface{}
		if lang := string(n.Language(c.src)); lang != "" {
			attrs = map[string]interface{}{model.AttrLanguage: lang}
		}
		return one(model.NodeTypeCodeBlock, attrs, c.code(n)...)
	case *ast.CodeBlock:
		return one(model.NodeTypeCodeBlock, nil, c.code(n)...)
	case *ast.Blockquote:
		return one(model.NodeTypeBlockquote, nil, c.children(n, depth)...)
	case *ast.List:
		return []*model.Node{c.list(n, depth)}
	case *extast.DefinitionList:
		return []*model.Node{c.definitionList(n, depth)}
	case *extast.DefinitionTerm:
		return one(model.NodeTypeDescriptionTerm, nil, c.children(n, depth)...)
	case *extast.DefinitionDescription:
		return one(model.NodeTypeDescriptionDetail, nil, c.children(n, depth)...)
	case *ast.HTMLBlock:
		raw := c.lines(n)
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(c.src))
		}
		return []*model.Node{model.NewTextNode(strings.TrimSuffix(raw, "\n"))}

	case *ast.Text:
		out := []*model.Node{model.NewTextNode(string(n.Segment.Value(c.src)))}
		if n.SoftLineBreak() || n.HardLineBreak() {
			out = append(out, lineBreak())
		}
		return out
	case *ast.String:
		return []*model.Node{model.NewTextNode(string(n.Value))}
	case *ast.Emphasis:
		if n.Level >= 2 {
			return one(model.NodeTypeBold, nil, c.children(n, depth)...)
		}
		return one(model.NodeTypeItalic, nil, c.children(n, depth)...)
	case *extast.Strikethrough:
		return one(model.NodeTypeStrikethrough, nil, c.children(n, depth)...)
	case *ast.CodeSpan:
		return one(model.NodeTypeCode, nil, model.NewTextNode(c.plainText(n)))
	case *ast.Link:
		attrs := map[string]interface{}{model.AttrURL: string(n.Destination)}
		if len(n.Title) > 0 {
			attrs[model.AttrTitle] = string(n.Title)
		}
		return one(model.NodeTypeLink, attrs, c.children(n, depth)...)
	case *ast.AutoLink:
		attrs := map[string]interface{}{model.AttrURL: string(n.URL(c.src))}
		return one(model.NodeTypeAutoLink, attrs, model.NewTextNode(string(n.Label(c.src))))
	case *ast.Image:
		attrs := map[string]interface{}{
			model.AttrURL: string(n.Destination),
			model.AttrAlt: c.plainText(n),
		}
		if len(n.Title) > 0 {
			attrs[model.AttrTitle] = string(n.Title)
		}
		return one(model.NodeTypeImage, attrs)
	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(c.src))
		}
		return []*model.Node{model.NewTextNode(b.String())}
	case *extast.TaskCheckBox:
		// carried by the enclosing TASK_LIST_ITEM
		return nil
	}
	return c.children(n, depth)
}

func (c *converter) list(n *ast.List, depth int) *model.Node {
	kind := model.ListKindUnordered
	if n.IsOrdered() {
		kind = model.ListKindOrdered
	}

	var children []*model.Node
	i := 0
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		if i > 0 {
			children = append(children, lineBreak())
			if !n.IsTight {
				children = append(children, lineBreak())
			}
		}
		children = append(children, c.listItem(n, item, i, depth))
		i++
	}
	return model.NewNode(model.NodeTypeList, map[string]interface{}{
		model.AttrKind:   kind,
		model.AttrIndent: depth,
	}, children...)
}

func (c *converter) listItem(l *ast.List, item ast.Node, index, depth int) *model.Node {
	content := c.children(item, depth+1)

	if l.IsOrdered() {
		return model.NewNode(model.NodeTypeOrderedListItem, map[string]interface{}{
			model.AttrNumber: l.Start + index,
		}, content...)
	}

	attrs := map[string]interface{}{model.AttrSymbol: string(l.Marker)}
	if first := item.FirstChild(); first != nil {
		if box, ok := first.FirstChild().(*extast.TaskCheckBox); ok {
			attrs[model.AttrComplete] = box.IsChecked
			return model.NewNode(model.NodeTypeTaskListItem, attrs, content...)
		}
	}
	return model.NewNode(model.NodeTypeUnorderedListItem, attrs, content...)
}

func (c *converter) definitionList(n *extast.DefinitionList, depth int) *model.Node {
	loose := false
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if desc, ok := child.(*extast.DefinitionDescription); ok && !desc.IsTight {
			loose = true
		}
	}

	var children []*model.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if len(children) > 0 {
			children = append(children, lineBreak())
			if loose {
				children = append(children, lineBreak())
			}
		}
		children = append(children, c.convert(child, depth+1)...)
	}
	return model.NewNode(model.NodeTypeList, map[string]interface{}{
		model.AttrKind:   model.ListKindDescription,
		model.AttrIndent: depth,
	}, children...)
}

func (c *converter) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(c.src))
	}
	return buf.String()
}

func (c *converter) code(n ast.Node) []*model.Node {
	code := strings.TrimSuffix(c.lines(n), "\n")
	if code == "" {
		return nil
	}
	return []*model.Node{model.NewTextNode(code)}
}

// plainText gets the text content of inline children.
func (c *converter) plainText(n ast.Node) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(c.src))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(c.plainText(child))
		}
	}
	return buf.String()
}
