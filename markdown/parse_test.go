package markdown

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/shodgson/mdlist/dom"
	"github.com/shodgson/mdlist/model"
	"github.com/shodgson/mdlist/test/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	doc        = builder.Doc
	p          = builder.P
	h1         = builder.H1
	h2         = builder.H2
	blockquote = builder.Blockquote
	pre        = builder.Pre
	hr         = builder.Hr
	br         = builder.Br
	em         = builder.Em
	strong     = builder.Strong
	del        = builder.Del
	code       = builder.Code
	li         = builder.Li
	oli        = builder.OLi
	task       = builder.Task
	done       = builder.Done
	dt         = builder.Dt
	dd         = builder.Dd
	link       = builder.Link
)

func ul(indent int, args ...interface{}) *model.Node {
	return builder.Ul(append([]interface{}{builder.Indent(indent)}, args...)...)
}

func ol(indent int, args ...interface{}) *model.Node {
	return builder.Ol(append([]interface{}{builder.Indent(indent)}, args...)...)
}

func dl(indent int, args ...interface{}) *model.Node {
	return builder.Dl(append([]interface{}{builder.Indent(indent)}, args...)...)
}

func TestMarkdown(t *testing.T) {
	parse := func(text string, expected *model.Node) {
		t.Helper()
		actual := ParseBytes([]byte(text))
		assert.True(t, actual.Eq(expected), "%s != %s\n", actual.String(), expected.String())
	}

	serialize := func(doc *model.Node, text string) {
		t.Helper()
		assert.Equal(t, text, Restore(doc))
	}

	same := func(text string, doc *model.Node) {
		t.Helper()
		parse(text, doc)
		serialize(doc, text)
	}

	// parses a paragraph
	same("hello!",
		doc(p("hello!")))

	// parses headings
	same("# one\n\n## two\n\nthree",
		doc(h1("one"), h2("two"), p("three")))

	// parses a blockquote
	same("> once\n\n> > twice",
		doc(blockquote(p("once")), blockquote(blockquote(p("twice")))))

	// parses a horizontal rule
	same("one\n\n---\n\ntwo",
		doc(p("one"), hr(), p("two")))

	// parses a tight bullet list
	same("- foo\n- bar",
		doc(ul(0, li("foo"), br(), li("bar"))))

	// parses a loose bullet list
	same("- foo\n\n- bar",
		doc(ul(0, li(p("foo")), br(), br(), li(p("bar")))))

	// keeps the bullet
	same("* foo\n* bar",
		doc(ul(0, builder.Li(builder.Spec{model.AttrSymbol: "*"}, "foo"), br(), builder.Li(builder.Spec{model.AttrSymbol: "*"}, "bar"))))

	// parses a nested list
	same("- foo\n  - bar\n  - baz\n- quux",
		doc(ul(0, li("foo", ul(1, li("bar"), br(), li("baz"))), br(), li("quux"))))

	// parses an ordered list
	same("1. Hello\n2. Goodbye\n3. Nest\n   1. Hey\n   2. Aye",
		doc(ol(0, oli(1)("Hello"), br(), oli(2)("Goodbye"), br(), oli(3)("Nest", ol(1, oli(1)("Hey"), br(), oli(2)("Aye"))))))

	// preserves ordered list start number
	same("3. Foo\n4. Bar",
		doc(ol(0, oli(3)("Foo"), br(), oli(4)("Bar"))))

	// parses a task list
	same("- [ ] todo\n- [x] done",
		doc(ul(0, task("todo"), br(), done("done"))))

	// parses a definition list
	same("term\n: definition",
		doc(dl(0, dt("term"), br(), dd("definition"))))

	// parses a fenced code block
	same("Some code:\n\n```\nHere it is\n```\n\nPara",
		doc(p("Some code:"), pre("Here it is"), p("Para")))

	// parses a fenced code block with info string
	same("foo\n\n```go\nx := 1\n```",
		doc(p("foo"), pre(builder.Spec{model.AttrLanguage: "go"}, "x := 1")))

	// parses an indented code block
	parse("Some code:\n\n    Here it is\n\nPara",
		doc(p("Some code:"), pre("Here it is"), p("Para")))

	// parses inline formatting
	same("Some *em* text, some **strong** text, some ~~gone~~ text",
		doc(p("Some ", em("em"), " text, some ", strong("strong"), " text, some ", del("gone"), " text")))

	// parses inline code
	same("and some `code`",
		doc(p("and some ", code("code"))))

	// parses code containing backticks
	same("``` one backtick: ` two backticks: `` ```",
		doc(p(code("one backtick: ` two backticks: ``"))))

	// parses hard breaks
	same("foo\\\nbar", doc(p("foo", br(), "bar")))

	// parses soft breaks as line breaks
	parse("foo\nbar", doc(p("foo", br(), "bar")))

	// parses links
	same("My [link](foo) goes to foo",
		doc(p("My ", link("foo", "link"), " goes to foo")))

	// can handle link titles
	same(`[a](x.html "a title")`,
		doc(p(link("x.html", builder.Spec{model.AttrTitle: "a title"}, "a"))))

	// parses urls
	same("Link to <https://example.com>",
		doc(p("Link to ", builder.Block(model.NodeTypeAutoLink, builder.Spec{model.AttrURL: "https://example.com"})("https://example.com"))))

	// parses an image
	same("Here is an image: ![x](img.png)",
		doc(p("Here is an image: ", builder.Block(model.NodeTypeImage, builder.Spec{model.AttrURL: "img.png", model.AttrAlt: "x"})())))
}

func TestParseJoinsTextRuns(t *testing.T) {
	cases := map[string]*model.Node{
		"Wow! Really?":   doc(p("Wow! Really?")),
		"a*b and c_d":    doc(p("a*b and c_d")),
		"[not a link":    doc(p("[not a link")),
		"a!\nb!":         doc(p("a!", br(), "b!")),
		"x **y!** z!":    doc(p("x ", strong("y!"), " z!")),
		"- one!\n- two!": doc(ul(0, li("one!"), br(), li("two!"))),
	}
	for src, want := range cases {
		got := ParseBytes([]byte(src))
		assert.True(t, got.Eq(want), "%q: %s != %s", src, got.String(), want.String())
	}
}

func TestRestore(t *testing.T) {
	// escapes special characters
	assert.Equal(t, "1\\. not a list \\*really\\*", Restore(doc(p("1. not a list *really*"))))

	// code containing only whitespace
	assert.Equal(t, "Three spaces: `   `", Restore(doc(p("Three spaces: ", code("   ")))))

	// widens the fence around backticks
	assert.Equal(t, "````\n```\n````", Restore(doc(pre("```"))))

	// pads ordered numbers
	items := []interface{}{}
	for i := 9; i <= 11; i++ {
		if i > 9 {
			items = append(items, br())
		}
		items = append(items, oli(i)("x"))
	}
	assert.Equal(t, " 9. x\n10. x\n11. x", Restore(doc(ol(0, items...))))

	// breaks in lists are separators, not text
	assert.Equal(t, "- a\n- b", Restore(doc(ul(0, li("a"), br(), li("b")))))
	assert.Equal(t, "- a\n\n- b", Restore(doc(ul(0, li("a"), br(), br(), br(), li("b")))))
	assert.Equal(t, "- a\n\n- b", Restore(doc(ul(0, li(p("a")), br(), br(), li(p("b"))))))

	// a trailing break writes nothing
	assert.Equal(t, "a", Restore(doc(p("a", br()))))

	// unknown nodes render their children
	assert.Equal(t, "inside", Restore(doc(builder.Block("SPOILER", nil)(p("inside")))))

	assert.Equal(t, "", Restore(doc()))
}

func TestRoundTrip(t *testing.T) {
	docs := []string{
		"plain",
		"# Title\n\nwith *some* **inline** `bits` and ~~gone~~",
		"- one\n- two\n  1. nested\n  2. again\n- three",
		"- loose\n\n- list\n\n  with more",
		"7. seven\n8. eight",
		"- [ ] open\n- [x] closed\n  - child",
		"term\n: one\n: two",
		"> - quoted\n> - list",
		"line\\\nbreak",
		"see https://go.dev and <https://example.com>",
		"```sh\necho `hi`\n```",
	}
	for _, md := range docs {
		first := ParseBytes([]byte(md))
		again := ParseBytes([]byte(Restore(first)))
		assert.Equal(t, first.String(), again.String(), "round trip of %q through %q", md, Restore(first))
	}
}

func TestParseReader(t *testing.T) {
	node, err := Parse(strings.NewReader("- a\n- b"))
	require.NoError(t, err)
	assert.Equal(t, model.NodeTypeDocument, node.Type)
	assert.Equal(t, 1, node.ChildCount())

	_, err = Parse(iotest.ErrReader(errors.New("boom")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read markdown")
	assert.Contains(t, err.Error(), "boom")
}

func TestParseListLayout(t *testing.T) {
	node := ParseBytes([]byte("- a\n\n- b\n\n- c"))
	list := node.MaybeChild(0)
	require.NotNil(t, list)
	assert.Equal(t, model.ListKindUnordered, list.ListKind())
	assert.Equal(t, 0, list.Indent())

	var types []model.NodeType
	list.ForEach(func(child *model.Node, _ int) { types = append(types, child.Type) })
	assert.Equal(t, []model.NodeType{
		model.NodeTypeUnorderedListItem,
		model.NodeTypeLineBreak,
		model.NodeTypeLineBreak,
		model.NodeTypeUnorderedListItem,
		model.NodeTypeLineBreak,
		model.NodeTypeLineBreak,
		model.NodeTypeUnorderedListItem,
	}, types)
}

func TestParseThenRender(t *testing.T) {
	serializer := dom.NewSerializer()
	render := func(md string) string {
		t.Helper()
		out, err := serializer.RenderString(ParseBytes([]byte(md)))
		require.NoError(t, err)
		return out
	}

	assert.Equal(t,
		`<ul class="list-inside break-all list-disc" style="padding-left: 0px"><li>a</li><li>b</li></ul>`,
		render("- a\n- b"))

	// one break of each pair survives
	assert.Equal(t,
		`<ul class="list-inside break-all list-disc" style="padding-left: 0px"><li><p>a</p></li><br/><li><p>b</p></li></ul>`,
		render("- a\n\n- b"))

	assert.Equal(t,
		`<ol class="list-inside break-all list-decimal" style="padding-left: 0px" start="3"><li>x</li><li>y</li></ol>`,
		render("3. x\n4. y"))

	assert.Equal(t,
		`<ul class="list-inside break-all list-disc" style="padding-left: 0px"><li>a<ul class="list-inside break-all list-disc" style="padding-left: 6px"><li>b</li></ul></li></ul>`,
		render("- a\n  - b"))

	assert.Equal(t,
		`<dl class="list-inside break-all list-none" style="padding-left: 0px"><dt>term</dt><dd>definition</dd></dl>`,
		render("term\n: definition"))
}
