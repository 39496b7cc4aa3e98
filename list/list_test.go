package list_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/shodgson/mdlist/list"
	"github.com/shodgson/mdlist/model"
	"github.com/shodgson/mdlist/test/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	text = builder.Text
	br   = builder.Br
	oli  = builder.OLi
	li   = builder.Li
)

// recorder renders text as text nodes and everything else as an element
// named after the node type, remembering the keys it was called with.
type recorder struct {
	keys []string
}

func (r *recorder) RenderNode(node *model.Node, key string) *html.Node {
	r.keys = append(r.keys, key)
	if node.IsText() {
		return &html.Node{Type: html.TextNode, Data: *node.Text}
	}
	if node.Type == model.NodeTypeLineBreak {
		return &html.Node{Type: html.ElementNode, DataAtom: atom.Br, Data: "br"}
	}
	return &html.Node{Type: html.ElementNode, DataAtom: atom.Li, Data: "li"}
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, html.Render(buf, n))
	return buf.String()
}

func TestResolveRole(t *testing.T) {
	tests := []struct {
		kind model.ListKind
		role list.Role
		atom atom.Atom
	}{
		{model.ListKindOrdered, list.RoleOrdered, atom.Ol},
		{model.ListKindUnordered, list.RoleUnordered, atom.Ul},
		{model.ListKindDescription, list.RoleDescription, atom.Dl},
		{model.ListKindUnspecified, list.RoleGeneric, atom.Div},
		{model.ListKind(42), list.RoleGeneric, atom.Div},
	}
	for _, tt := range tests {
		c := list.Resolve(tt.kind, nil)
		assert.Equal(t, tt.role, c.Role, tt.kind.String())
		assert.Equal(t, tt.atom, c.Atom, tt.kind.String())
	}
}

func TestResolveClasses(t *testing.T) {
	assert.Equal(t, []string{"list-inside", "break-all", "list-decimal"}, list.Resolve(model.ListKindOrdered, nil).Classes)
	assert.Equal(t, []string{"list-inside", "break-all", "list-disc"}, list.Resolve(model.ListKindUnordered, nil).Classes)
	assert.Equal(t, []string{"list-inside", "break-all", "list-none"}, list.Resolve(model.ListKindDescription, nil).Classes)
	assert.Equal(t, []string{"list-inside", "break-all", "list-none"}, list.Resolve(model.ListKindUnspecified, nil).Classes)
}

func TestResolveStart(t *testing.T) {
	c := list.Resolve(model.ListKindOrdered, []*model.Node{oli(5)("five"), br()})
	assert.True(t, c.HasStart)
	assert.Equal(t, 5, c.Start)

	// decoded from JSON
	c = list.Resolve(model.ListKindOrdered, []*model.Node{builder.Block(model.NodeTypeOrderedListItem, builder.Spec{"number": float64(3)})()})
	assert.True(t, c.HasStart)
	assert.Equal(t, 3, c.Start)

	c = list.Resolve(model.ListKindOrdered, []*model.Node{builder.Block(model.NodeTypeOrderedListItem, builder.Spec{"number": "7"})()})
	assert.True(t, c.HasStart)
	assert.Equal(t, 7, c.Start)

	noStart := map[string]struct {
		kind     model.ListKind
		children []*model.Node
	}{
		"first child not an ordered item": {model.ListKindOrdered, []*model.Node{li("a"), oli(4)("b")}},
		"first child is a break":          {model.ListKindOrdered, []*model.Node{br(), oli(4)("b")}},
		"unordered list":                  {model.ListKindUnordered, []*model.Node{oli(4)("a")}},
		"generic list":                    {model.ListKindUnspecified, []*model.Node{oli(4)("a")}},
		"no children":                     {model.ListKindOrdered, nil},
		"nil first child":                 {model.ListKindOrdered, []*model.Node{nil}},
		"number missing":                  {model.ListKindOrdered, []*model.Node{builder.Block(model.NodeTypeOrderedListItem, nil)("a")}},
		"number malformed":                {model.ListKindOrdered, []*model.Node{builder.Block(model.NodeTypeOrderedListItem, builder.Spec{"number": "x"})()}},
		"number fractional":               {model.ListKindOrdered, []*model.Node{builder.Block(model.NodeTypeOrderedListItem, builder.Spec{"number": 5.7})()}},
		"number out of range":             {model.ListKindOrdered, []*model.Node{builder.Block(model.NodeTypeOrderedListItem, builder.Spec{"number": 1e30})()}},
	}
	for name, tt := range noStart {
		c := list.Resolve(tt.kind, tt.children)
		assert.False(t, c.HasStart, name)
		for _, a := range c.Attributes(0) {
			assert.NotEqual(t, "start", a.Key, name)
		}
	}
}

func TestSpacing(t *testing.T) {
	prev := list.Spacing(0)
	assert.Equal(t, list.Pixels(0), prev)
	for indent := 1; indent <= 3; indent++ {
		s := list.Spacing(indent)
		assert.Greater(t, int(s), int(prev), "indent %d", indent)
		prev = s
	}
	assert.Equal(t, "6px", list.Spacing(1).String())
	assert.Equal(t, "18px", list.Spacing(3).String())
	assert.Equal(t, list.Pixels(0), list.Spacing(-2))
	assert.Equal(t, list.Pixels(20), list.SpacingWithUnit(2, 10))
	assert.Equal(t, list.Spacing(2), list.SpacingWithUnit(2, 0))
}

func TestProcessLineBreaks(t *testing.T) {
	tests := []struct {
		name     string
		children []*model.Node
		omitted  []int
	}{
		{"text then two breaks", []*model.Node{text("a"), br(), br()}, []int{1}},
		{"two leading breaks", []*model.Node{br(), br()}, nil},
		{"three leading breaks", []*model.Node{br(), br(), br()}, nil},
		{"two texts then a break", []*model.Node{text("a"), text("b"), br()}, []int{2}},
		{"break between texts", []*model.Node{text("a"), br(), text("b")}, []int{1}},
		{"text then three breaks", []*model.Node{text("a"), br(), br(), br()}, []int{1}},
		{"single break", []*model.Node{br()}, nil},
		{"leading break then text then break", []*model.Node{br(), text("a"), br()}, []int{2}},
		{"alternating", []*model.Node{text("a"), br(), text("b"), br(), text("c")}, []int{1, 3}},
		{"rearmed after a rendered break", []*model.Node{text("a"), br(), br(), text("b"), br()}, []int{1, 4}},
		{"items", []*model.Node{oli(1)("a"), br(), oli(2)("b"), br(), br(), oli(3)("c")}, []int{1, 3}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			results := list.Process(tt.children, r)
			require.Len(t, results, len(tt.children))

			omitted := map[int]bool{}
			for _, i := range tt.omitted {
				omitted[i] = true
			}
			var wantKeys []string
			for i, res := range results {
				assert.Equal(t, list.Key(tt.children[i], i), res.Key)
				if omitted[i] {
					assert.True(t, res.Omitted, "child %d should be omitted", i)
					assert.Nil(t, res.Node)
					continue
				}
				assert.False(t, res.Omitted, "child %d should be rendered", i)
				assert.NotNil(t, res.Node)
				wantKeys = append(wantKeys, res.Key)
			}
			assert.Equal(t, wantKeys, r.keys)
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "LINE_BREAK-1", list.Key(br(), 1))
	assert.Equal(t, "ORDERED_LIST_ITEM-0", list.Key(oli(1)(), 0))
	assert.Equal(t, "-3", list.Key(nil, 3))
}

func TestRender(t *testing.T) {
	// unordered list with the break between items dropped
	out := list.Render(model.ListKindUnordered, 1, []*model.Node{text("a"), br(), text("b")}, &recorder{})
	assert.Equal(t,
		`<ul class="list-inside break-all list-disc" style="padding-left: 6px">ab</ul>`,
		render(t, out))

	// ordered list starting at 5
	out = list.Render(model.ListKindOrdered, 0, []*model.Node{oli(5)(), br(), oli(6)()}, &recorder{})
	assert.Equal(t,
		`<ol class="list-inside break-all list-decimal" style="padding-left: 0px" start="5"><li></li><li></li></ol>`,
		render(t, out))

	// second break of a pair is kept
	out = list.Render(model.ListKindDescription, 2, []*model.Node{text("a"), br(), br(), text("b")}, &recorder{})
	assert.Equal(t,
		`<dl class="list-inside break-all list-none" style="padding-left: 12px">a<br/>b</dl>`,
		render(t, out))

	out = list.Render(model.ListKind(9), 0, []*model.Node{text("x")}, &recorder{})
	assert.Equal(t,
		`<div class="list-inside break-all list-none" style="padding-left: 0px">x</div>`,
		render(t, out))
}

func TestRenderOptions(t *testing.T) {
	out := list.Render(model.ListKindUnordered, 2, []*model.Node{text("a")}, &recorder{},
		list.WithIndentUnit(10), list.WithRoleAttr("data-role"))
	assert.Equal(t,
		`<ul class="list-inside break-all list-disc" style="padding-left: 20px" data-role="unordered-list-container">a</ul>`,
		render(t, out))

	out = list.Render(model.ListKindUnordered, 2, nil, &recorder{}, list.WithIndentUnit(-1))
	assert.Equal(t,
		`<ul class="list-inside break-all list-disc" style="padding-left: 12px"></ul>`,
		render(t, out))
}

func TestRenderSkipsNilOutput(t *testing.T) {
	r := list.RendererFunc(func(node *model.Node, _ string) *html.Node {
		if node.IsText() {
			return nil
		}
		return &html.Node{Type: html.ElementNode, DataAtom: atom.Br, Data: "br"}
	})
	// the text renders to nothing but still arms suppression
	out := list.Render(model.ListKindUnordered, 0, []*model.Node{text("a"), br(), br()}, r)
	assert.Equal(t,
		`<ul class="list-inside break-all list-disc" style="padding-left: 0px"><br/></ul>`,
		render(t, out))
}

func TestRenderIsIdempotent(t *testing.T) {
	children := []*model.Node{oli(2)("a"), br(), br(), oli(3)("b"), br()}
	first := render(t, list.Render(model.ListKindOrdered, 1, children, &recorder{}))
	second := render(t, list.Render(model.ListKindOrdered, 1, children, &recorder{}))
	assert.Equal(t, first, second)
}

func TestRenderConcurrently(t *testing.T) {
	children := []*model.Node{text("a"), br(), text("b"), br(), br(), text("c")}
	want := render(t, list.Render(model.ListKindUnordered, 1, children, &recorder{}))

	var wg sync.WaitGroup
	got := make([]string, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			buf := new(bytes.Buffer)
			_ = html.Render(buf, list.Render(model.ListKindUnordered, 1, children, &recorder{}))
			got[i] = buf.String()
		}(i)
	}
	wg.Wait()
	for _, g := range got {
		assert.Equal(t, want, g)
	}
}
