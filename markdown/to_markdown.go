package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shodgson/mdlist/model"
)

// NodeSerializerFunc is the function to serialize a node.
type NodeSerializerFunc func(state *SerializerState, node, parent *model.Node, index int)

// Serializer is a specification for serializing a document tree as
// markdown text.
type Serializer struct {
	Nodes map[model.NodeType]NodeSerializerFunc
}

// NewSerializer constructs a serializer with the given configuration. The
// `nodes` map should map node types to functions that take a serializer
// state and such a node, and serialize the node. Nodes of types missing from
// the map have their children serialized in place.
func NewSerializer(nodes map[model.NodeType]NodeSerializerFunc) *Serializer {
	return &Serializer{Nodes: nodes}
}

// Serialize the content of the given node to markdown.
func (s *Serializer) Serialize(content *model.Node) string {
	state := NewSerializerState(s.Nodes)
	state.RenderMixed(content)
	return state.Out
}

// Restore writes doc back as markdown with the default serializer.
func Restore(doc *model.Node) string {
	return DefaultSerializer.Serialize(doc)
}

var backticksRegexp = regexp.MustCompile("`{3,}")

func wrapInline(open, close string) NodeSerializerFunc {
	return func(state *SerializerState, node, _parent *model.Node, _index int) {
		state.Text(open, false)
		state.RenderContent(node)
		state.Text(close, false)
	}
}

func renderItem(state *SerializerState, node, _parent *model.Node, _index int) {
	state.RenderMixed(node)
}

// DefaultSerializer is a serializer for the node types of the model package.
var DefaultSerializer = NewSerializer(map[model.NodeType]NodeSerializerFunc{
	model.NodeTypeBlockquote: func(state *SerializerState, node, _parent *model.Node, _index int) {
		state.WrapBlock("> ", nil, node, func() { state.RenderMixed(node) })
	},
	model.NodeTypeCodeBlock: func(state *SerializerState, node, _parent *model.Node, _index int) {
		fence := "```"
		content := node.TextContent()
		matches := backticksRegexp.FindAllString(content, -1)
		for _, backticks := range matches {
			if len(backticks) >= len(fence) {
				fence = backticks + "`"
			}
		}

		state.Write(fence + node.AttrString(model.AttrLanguage) + "\n")
		if content != "" {
			state.Text(content, false)
			state.EnsureNewLine()
		}
		state.Write(fence)
		state.CloseBlock(node)
	},
	model.NodeTypeHeading: func(state *SerializerState, node, _parent *model.Node, _index int) {
		level, ok := node.AttrInt(model.AttrLevel)
		if !ok || level < 1 {
			level = 1
		}
		state.Write(strings.Repeat("#", level) + " ")
		state.RenderInline(node)
		state.CloseBlock(node)
	},
	model.NodeTypeHorizontalRule: func(state *SerializerState, node, _parent *model.Node, _index int) {
		state.Write("---")
		state.CloseBlock(node)
	},
	model.NodeTypeList: func(state *SerializerState, node, _parent *model.Node, _index int) {
		switch node.ListKind() {
		case model.ListKindOrdered:
			start := 1
			if first := node.Content.FirstChild(); first != nil {
				if n, ok := first.Number(); ok {
					start = n
				}
			}
			maxW := len(strconv.Itoa(start + len(listItems(node)) - 1))
			space := strings.Repeat(" ", maxW+2)
			state.RenderList(node, space, func(i int, _ *model.Node) string {
				nStr := strconv.Itoa(start + i)
				return strings.Repeat(" ", maxW-len(nStr)) + nStr + ". "
			})
		case model.ListKindDescription:
			// terms are written flush, details indented under ": "
			state.renderItems(node, func(_ int, item *model.Node) (string, string) {
				if item.Type == model.NodeTypeDescriptionDetail {
					return "  ", ": "
				}
				return "", ""
			})
		default:
			state.RenderList(node, "  ", func(_ int, item *model.Node) string {
				bullet := item.AttrString(model.AttrSymbol)
				if bullet == "" {
					bullet = "-"
				}
				if item.Type == model.NodeTypeTaskListItem {
					if item.AttrBool(model.AttrComplete) {
						return bullet + " [x] "
					}
					return bullet + " [ ] "
				}
				return bullet + " "
			})
		}
	},
	model.NodeTypeOrderedListItem:   renderItem,
	model.NodeTypeUnorderedListItem: renderItem,
	model.NodeTypeTaskListItem:      renderItem,
	model.NodeTypeDescriptionTerm:   renderItem,
	model.NodeTypeDescriptionDetail: renderItem,
	model.NodeTypeParagraph: func(state *SerializerState, node, _parent *model.Node, _index int) {
		state.RenderInline(node)
		state.CloseBlock(node)
	},
	model.NodeTypeImage: func(state *SerializerState, node, _parent *model.Node, _index int) {
		src := node.AttrString(model.AttrURL)
		src = strings.ReplaceAll(src, "(", "\\(")
		src = strings.ReplaceAll(src, ")", "\\)")
		title := ""
		if t := node.AttrString(model.AttrTitle); t != "" {
			title = ` "` + strings.ReplaceAll(t, `"`, `\"`) + `"`
		}
		state.Write(fmt.Sprintf("![%s](%s)%s", state.Esc(node.AttrString(model.AttrAlt)), src, title))
	},
	model.NodeTypeLineBreak: func(state *SerializerState, node, parent *model.Node, index int) {
		for i := index + 1; i < parent.ChildCount(); i++ {
			if child := parent.MaybeChild(i); child != nil && child.Type != node.Type {
				state.Write("\\\n")
				return
			}
		}
	},
	model.NodeTypeText: func(state *SerializerState, node, _parent *model.Node, _index int) {
		state.Text(node.TextContent(), !state.InAutoLink)
	},
	model.NodeTypeBold:          wrapInline("**", "**"),
	model.NodeTypeItalic:        wrapInline("*", "*"),
	model.NodeTypeStrikethrough: wrapInline("~~", "~~"),
	model.NodeTypeCode: func(state *SerializerState, node, _parent *model.Node, _index int) {
		content := node.TextContent()
		state.Text(backticksFor(content, -1)+content+backticksFor(content, 1), false)
	},
	model.NodeTypeLink: func(state *SerializerState, node, _parent *model.Node, _index int) {
		href := node.AttrString(model.AttrURL)
		href = strings.ReplaceAll(href, "(", "\\(")
		href = strings.ReplaceAll(href, ")", "\\)")
		href = strings.ReplaceAll(href, `"`, `\"`)
		title := node.AttrString(model.AttrTitle)
		if title != "" {
			title = ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
		}
		state.Text("[", false)
		state.RenderContent(node)
		state.Text(fmt.Sprintf("](%s%s)", href, title), false)
	},
	model.NodeTypeAutoLink: func(state *SerializerState, node, _parent *model.Node, _index int) {
		state.InAutoLink = true
		state.Text("<"+node.AttrString(model.AttrURL)+">", false)
		state.InAutoLink = false
	},
})

func backticksFor(text string, side int) string {
	length := 0
	ticks := strings.FieldsFunc(text, func(r rune) bool { return r != '`' })
	for _, t := range ticks {
		if l := len(t); l > length {
			length = l
		}
	}
	result := "`"
	if length > 0 && side > 0 {
		result = " `"
	}
	for i := 0; i < length; i++ {
		result += "`"
	}
	if length > 0 && side < 0 {
		result += " "
	}
	return result
}

// listItems returns the children of a list, without the line breaks that
// separate them.
func listItems(node *model.Node) []*model.Node {
	var items []*model.Node
	node.ForEach(func(child *model.Node, _ int) {
		if child != nil && child.Type != model.NodeTypeLineBreak {
			items = append(items, child)
		}
	})
	return items
}

// isTightList is true unless two line breaks follow each other somewhere in
// the list, which is how loose lists are encoded.
func isTightList(node *model.Node) bool {
	prevBreak := false
	tight := true
	node.ForEach(func(child *model.Node, _ int) {
		isBreak := child != nil && child.Type == model.NodeTypeLineBreak
		if isBreak && prevBreak {
			tight = false
		}
		prevBreak = isBreak
	})
	return tight
}

// SerializerState is an object used to track state and expose methods related
// to markdown serialization. Instances are passed to node serialization
// functions.
type SerializerState struct {
	Nodes        map[model.NodeType]NodeSerializerFunc
	Delim        string
	Out          string
	Closed       *model.Node
	InAutoLink   bool
	AtBlockStart bool
	InTightList  bool
}

// NewSerializerState is the constructor for SerializerState.
func NewSerializerState(nodes map[model.NodeType]NodeSerializerFunc) *SerializerState {
	return &SerializerState{Nodes: nodes}
}

func (s *SerializerState) flushClose(size ...int) {
	if s.Closed == nil {
		return
	}
	s.EnsureNewLine()
	siz := 2
	if len(size) > 0 {
		siz = size[0]
	}
	if siz > 1 {
		delimMin := strings.TrimRightFunc(s.Delim, unicode.IsSpace)
		for i := 1; i < siz; i++ {
			s.Out += delimMin + "\n"
		}
	}
	s.Closed = nil
}

// WrapBlock renders a block, prefixing each line with `delim`, and the first
// line in `firstDelim`. `node` should be the node that is closed at the end of
// the block, and `f` is a function that renders the content of the block.
func (s *SerializerState) WrapBlock(delim string, firstDelim *string, node *model.Node, f func()) {
	old := s.Delim
	d := delim
	if firstDelim != nil {
		d = *firstDelim
	}
	s.Write(d)
	s.Delim += delim
	f()
	s.Delim = old
	s.CloseBlock(node)
}

func (s *SerializerState) atBlank() bool {
	if len(s.Out) == 0 {
		return true
	}
	return s.Out[len(s.Out)-1] == '\n'
}

// EnsureNewLine ensures the current content ends with a newline.
func (s *SerializerState) EnsureNewLine() {
	if !s.atBlank() {
		s.Out += "\n"
	}
}

// Write prepares the state for writing output (closing closed paragraphs,
// adding delimiters, and so on), and then optionally add content
// (unescaped) to the output.
func (s *SerializerState) Write(content ...string) {
	s.flushClose()
	if s.Delim != "" && s.atBlank() {
		s.Out += s.Delim
	}
	if len(content) > 0 {
		s.Out += content[0]
	}
}

// CloseBlock closes the block for the given node.
func (s *SerializerState) CloseBlock(node *model.Node) {
	s.Closed = node
}

// Text adds the given text to the document. When escape is not `false`, it
// will be escaped.
func (s *SerializerState) Text(text string, escape ...bool) {
	lines := strings.Split(text, "\n")
	esc := true
	if len(escape) > 0 {
		esc = escape[0]
	}
	for i, line := range lines {
		s.Write()
		if esc {
			s.Out += s.Esc(line, s.AtBlockStart)
		} else {
			s.Out += line
		}
		if i != len(lines)-1 {
			s.Out += "\n"
		}
	}
	s.AtBlockStart = false
}

// Render the given node as a block.
func (s *SerializerState) Render(node, parent *model.Node, index int) {
	if node == nil {
		return
	}
	if fn, ok := s.Nodes[node.Type]; ok {
		fn(s, node, parent, index)
		return
	}
	if node.IsText() {
		s.Text(*node.Text)
		return
	}
	s.RenderMixed(node)
}

// RenderContent renders the contents of `parent` as block nodes.
func (s *SerializerState) RenderContent(parent *model.Node) {
	parent.ForEach(func(node *model.Node, i int) {
		s.Render(node, parent, i)
	})
}

// RenderInline renders the contents of `parent` as inline content.
func (s *SerializerState) RenderInline(parent *model.Node) {
	s.AtBlockStart = true
	parent.ForEach(func(node *model.Node, i int) {
		s.Render(node, parent, i)
	})
	s.AtBlockStart = false
}

// RenderMixed renders children that mix inline runs and blocks, as found in
// tight list items: each run of inline nodes is rendered as one text block.
func (s *SerializerState) RenderMixed(parent *model.Node) {
	inRun := false
	parent.ForEach(func(node *model.Node, i int) {
		if node == nil {
			return
		}
		if node.IsInline() {
			if !inRun {
				s.AtBlockStart = true
				inRun = true
			}
			s.Render(node, parent, i)
			return
		}
		if inRun {
			inRun = false
			s.AtBlockStart = false
			s.CloseBlock(parent)
		}
		s.Render(node, parent, i)
	})
	if inRun {
		s.AtBlockStart = false
		s.CloseBlock(parent)
	}
}

// RenderList renders a node's content as a list. `delim` should be the extra
// indentation added to all lines except the first in an item, `firstDelim` is
// a function going from an item index to a delimiter for the first line of the
// item. Line breaks between items are not written; a list whose items are
// separated by two breaks is written loose.
func (s *SerializerState) RenderList(node *model.Node, delim string, firstDelim func(i int, item *model.Node) string) {
	s.renderItems(node, func(i int, item *model.Node) (string, string) {
		return delim, firstDelim(i, item)
	})
}

func (s *SerializerState) renderItems(node *model.Node, delims func(i int, item *model.Node) (delim, first string)) {
	if s.Closed != nil && s.Closed.Type == node.Type {
		s.flushClose(3)
	} else if s.InTightList {
		s.flushClose(1)
	}

	isTight := isTightList(node)
	prevTight := s.InTightList
	s.InTightList = isTight
	for i, item := range listItems(node) {
		if i > 0 && isTight {
			s.flushClose(1)
		}
		delim, first := delims(i, item)
		s.WrapBlock(delim, &first, node, func() { s.Render(item, node, i) })
	}
	s.InTightList = prevTight
}

var (
	escRegexp1 = regexp.MustCompile("([`*\\\\~\\[\\]])")
	escRegexp2 = regexp.MustCompile(`(\b_)|(_\b)`)
	escRegexp3 = regexp.MustCompile(`^([#\-*+>])`)
	escRegexp4 = regexp.MustCompile(`^(\s*\d+)\.`)
)

// Esc escapes the given string so that it can safely appear in Markdown
// content. If `startOfLine` is true, also escape characters that have special
// meaning only at the start of the line.
func (s *SerializerState) Esc(str string, startOfLine ...bool) string {
	start := false
	if len(startOfLine) > 0 {
		start = startOfLine[0]
	}
	str = escRegexp1.ReplaceAllString(str, "\\$1")
	str = escRegexp2.ReplaceAllString(str, "\\_")
	if start {
		str = escRegexp3.ReplaceAllString(str, "\\$1")
		str = escRegexp4.ReplaceAllString(str, "$1\\.")
	}
	return str
}
