package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidJSON is returned when a JSON document cannot be decoded into a
// node tree.
var ErrInvalidJSON = errors.New("invalid node JSON")

type jsonNode struct {
	Type    NodeType               `json:"type"`
	Attrs   map[string]interface{} `json:"attrs,omitempty"`
	Content []*Node                `json:"content,omitempty"`
	Text    *string                `json:"text,omitempty"`
}

// MarshalJSON encodes the node as `{type, attrs, content, text}`. ListKind
// attributes are written by name.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := jsonNode{Type: n.Type, Content: n.Children(), Text: n.Text}
	if len(n.Attrs) > 0 {
		out.Attrs = make(map[string]interface{}, len(n.Attrs))
		for k, v := range n.Attrs {
			if kind, ok := v.(ListKind); ok {
				v = kind.String()
			}
			out.Attrs[k] = v
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the shape written by MarshalJSON. A node with text
// and no type is a TEXT node.
func (n *Node) UnmarshalJSON(data []byte) error {
	var in jsonNode
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Type == "" {
		if in.Text == nil {
			return fmt.Errorf("%w: node without type", ErrInvalidJSON)
		}
		in.Type = NodeTypeText
	}
	*n = Node{Type: in.Type, Attrs: in.Attrs, Content: NewFragment(in.Content...), Text: in.Text}
	return nil
}

// NodeFromJSON decodes a node tree.
func NodeFromJSON(data []byte) (*Node, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		if errors.Is(err, ErrInvalidJSON) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return &n, nil
}
