package list

import (
	"strconv"

	"github.com/shodgson/mdlist/model"
	"golang.org/x/net/html"
)

// Result is the outcome for one child of a list.
type Result struct {
	// Key is the positional key the child was (or would have been)
	// rendered with.
	Key string
	// Node is the rendered output, nil when omitted.
	Node *html.Node
	// Omitted is set for suppressed line breaks.
	Omitted bool
}

// Key returns the positional key of a child: its type and index.
func Key(child *model.Node, index int) string {
	var typ model.NodeType
	if child != nil {
		typ = child.Type
	}
	return string(typ) + "-" + strconv.Itoa(index)
}

func isLineBreak(n *model.Node) bool {
	return n != nil && n.Type == model.NodeTypeLineBreak
}

// Process walks children in order and renders each one with r, except for
// redundant line breaks: after any rendered child, the next LINE_BREAK is
// dropped once, unless the last rendered child was itself a LINE_BREAK.
// The returned slice has one Result per child, in input order.
func Process(children []*model.Node, r Renderer) []Result {
	var state struct {
		previous          *model.Node
		suppressNextBreak bool
	}

	results := make([]Result, 0, len(children))
	for i, child := range children {
		key := Key(child, i)
		if !isLineBreak(state.previous) && isLineBreak(child) && state.suppressNextBreak {
			// previous stays on the last rendered child.
			state.suppressNextBreak = false
			results = append(results, Result{Key: key, Omitted: true})
			continue
		}

		results = append(results, Result{Key: key, Node: r.RenderNode(child, key)})
		state.previous = child
		state.suppressNextBreak = true
	}
	return results
}
