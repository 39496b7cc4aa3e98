// Package builder has small helpers to build document trees in tests.
//
// A NodeBuilder takes a mix of arguments: strings become TEXT nodes,
// *model.Node and NodeBuilder values become children, and Spec values are
// merged into the node's attributes.
package builder

import "github.com/shodgson/mdlist/model"

type Spec map[string]interface{}
type NodeBuilder func(args ...interface{}) *model.Node

func takeAttrs(attrs Spec, args []interface{}) map[string]interface{} {
	var result map[string]interface{}
	merge := func(s Spec) {
		if len(s) == 0 {
			return
		}
		if result == nil {
			result = map[string]interface{}{}
		}
		for k, v := range s {
			result[k] = v
		}
	}
	merge(attrs)
	for _, arg := range args {
		switch a := arg.(type) {
		case Spec:
			merge(a)
		case map[string]interface{}:
			merge(a)
		}
	}
	return result
}

func takeContent(args []interface{}) []*model.Node {
	var content []*model.Node
	for _, arg := range args {
		switch a := arg.(type) {
		case string:
			content = append(content, model.NewTextNode(a))
		case *model.Node:
			content = append(content, a)
		case NodeBuilder:
			content = append(content, a())
		}
	}
	return content
}

// Block creates a builder for nodes of the given type with default attrs.
func Block(typ model.NodeType, attrs Spec) NodeBuilder {
	return func(args ...interface{}) *model.Node {
		return model.NewNode(typ, takeAttrs(attrs, args), takeContent(args)...)
	}
}

// OLi builds ORDERED_LIST_ITEM nodes carrying the given number.
func OLi(number int) NodeBuilder {
	return Block(model.NodeTypeOrderedListItem, Spec{model.AttrNumber: number})
}

// Indent returns a Spec setting a list's nesting depth.
func Indent(n int) Spec {
	return Spec{model.AttrIndent: n}
}

// Text builds a TEXT node.
func Text(s string) *model.Node {
	return model.NewTextNode(s)
}

// Link builds a LINK node pointing at url.
func Link(url string, args ...interface{}) *model.Node {
	return Block(model.NodeTypeLink, Spec{model.AttrURL: url})(args...)
}

var (
	Doc        = Block(model.NodeTypeDocument, nil)
	P          = Block(model.NodeTypeParagraph, nil)
	Blockquote = Block(model.NodeTypeBlockquote, nil)
	Pre        = Block(model.NodeTypeCodeBlock, nil)
	H1         = Block(model.NodeTypeHeading, Spec{model.AttrLevel: 1})
	H2         = Block(model.NodeTypeHeading, Spec{model.AttrLevel: 2})
	H3         = Block(model.NodeTypeHeading, Spec{model.AttrLevel: 3})
	Hr         = Block(model.NodeTypeHorizontalRule, nil)
	Br         = Block(model.NodeTypeLineBreak, nil)

	Ol   = Block(model.NodeTypeList, Spec{model.AttrKind: model.ListKindOrdered})
	Ul   = Block(model.NodeTypeList, Spec{model.AttrKind: model.ListKindUnordered})
	Dl   = Block(model.NodeTypeList, Spec{model.AttrKind: model.ListKindDescription})
	Li   = Block(model.NodeTypeUnorderedListItem, Spec{model.AttrSymbol: "-"})
	Task = Block(model.NodeTypeTaskListItem, Spec{model.AttrSymbol: "-", model.AttrComplete: false})
	Done = Block(model.NodeTypeTaskListItem, Spec{model.AttrSymbol: "-", model.AttrComplete: true})
	Dt   = Block(model.NodeTypeDescriptionTerm, nil)
	Dd   = Block(model.NodeTypeDescriptionDetail, nil)

	Em     = Block(model.NodeTypeItalic, nil)
	Strong = Block(model.NodeTypeBold, nil)
	Del    = Block(model.NodeTypeStrikethrough, nil)
	Code   = Block(model.NodeTypeCode, nil)
)
