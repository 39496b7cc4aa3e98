package model

import "strings"

// NodeType tags what a document node represents. The set of known types is
// closed, but decoding is lenient: an unknown name is kept as is and treated
// as a generic node by renderers.
type NodeType string

// Block node types.
const (
	NodeTypeDocument          NodeType = "DOCUMENT"
	NodeTypeLineBreak         NodeType = "LINE_BREAK"
	NodeTypeParagraph         NodeType = "PARAGRAPH"
	NodeTypeCodeBlock         NodeType = "CODE_BLOCK"
	NodeTypeHeading           NodeType = "HEADING"
	NodeTypeHorizontalRule    NodeType = "HORIZONTAL_RULE"
	NodeTypeBlockquote        NodeType = "BLOCKQUOTE"
	NodeTypeList              NodeType = "LIST"
	NodeTypeOrderedListItem   NodeType = "ORDERED_LIST_ITEM"
	NodeTypeUnorderedListItem NodeType = "UNORDERED_LIST_ITEM"
	NodeTypeTaskListItem      NodeType = "TASK_LIST_ITEM"
	NodeTypeDescriptionTerm   NodeType = "DESCRIPTION_TERM"
	NodeTypeDescriptionDetail NodeType = "DESCRIPTION_DETAIL"
)

// Inline node types.
const (
	NodeTypeText          NodeType = "TEXT"
	NodeTypeBold          NodeType = "BOLD"
	NodeTypeItalic        NodeType = "ITALIC"
	NodeTypeStrikethrough NodeType = "STRIKETHROUGH"
	NodeTypeCode          NodeType = "CODE"
	NodeTypeLink          NodeType = "LINK"
	NodeTypeAutoLink      NodeType = "AUTO_LINK"
	NodeTypeImage         NodeType = "IMAGE"
)

var inlineTypes = map[NodeType]bool{
	NodeTypeLineBreak:     true,
	NodeTypeText:          true,
	NodeTypeBold:          true,
	NodeTypeItalic:        true,
	NodeTypeStrikethrough: true,
	NodeTypeCode:          true,
	NodeTypeLink:          true,
	NodeTypeAutoLink:      true,
	NodeTypeImage:         true,
}

var knownTypes = map[NodeType]bool{
	NodeTypeDocument:          true,
	NodeTypeParagraph:         true,
	NodeTypeCodeBlock:         true,
	NodeTypeHeading:           true,
	NodeTypeHorizontalRule:    true,
	NodeTypeBlockquote:        true,
	NodeTypeList:              true,
	NodeTypeOrderedListItem:   true,
	NodeTypeUnorderedListItem: true,
	NodeTypeTaskListItem:      true,
	NodeTypeDescriptionTerm:   true,
	NodeTypeDescriptionDetail: true,
}

// Known reports whether t is one of the node types defined in this package.
func (t NodeType) Known() bool {
	return knownTypes[t] || inlineTypes[t]
}

// IsInline reports whether nodes of this type sit inside text blocks.
// Unknown types are considered block nodes.
func (t NodeType) IsInline() bool {
	return inlineTypes[t]
}

// IsListItem is true for the three list item types.
func (t NodeType) IsListItem() bool {
	switch t {
	case NodeTypeOrderedListItem, NodeTypeUnorderedListItem, NodeTypeTaskListItem:
		return true
	}
	return false
}

func (t NodeType) String() string {
	return string(t)
}

// ListKind is the kind of a LIST node.
type ListKind int

const (
	// ListKindUnspecified covers any list that is neither ordered, unordered
	// nor a description list.
	ListKindUnspecified ListKind = iota
	ListKindOrdered
	ListKindUnordered
	ListKindDescription
)

var listKindNames = map[ListKind]string{
	ListKindUnspecified: "KIND_UNSPECIFIED",
	ListKindOrdered:     "ORDERED",
	ListKindUnordered:   "UNORDERED",
	ListKindDescription: "DESCRIPTION",
}

func (k ListKind) String() string {
	if name, ok := listKindNames[k]; ok {
		return name
	}
	return listKindNames[ListKindUnspecified]
}

// ParseListKind maps a kind name to a ListKind, case-insensitively.
// Unrecognized names map to ListKindUnspecified.
func ParseListKind(name string) ListKind {
	name = strings.ToUpper(strings.TrimSpace(name))
	for kind, n := range listKindNames {
		if n == name {
			return kind
		}
	}
	return ListKindUnspecified
}

// Attribute names used by the node types of this package.
const (
	AttrKind     = "kind"
	AttrIndent   = "indent"
	AttrNumber   = "number"
	AttrSymbol   = "symbol"
	AttrComplete = "complete"
	AttrLevel    = "level"
	AttrLanguage = "language"
	AttrURL      = "url"
	AttrTitle    = "title"
	AttrAlt      = "alt"
)
