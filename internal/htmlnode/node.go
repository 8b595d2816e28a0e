// Package htmlnode is a minimal HTML tree that renders to markup without escaping.
package htmlnode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingValue is returned when a leaf without a value is rendered
	ErrMissingValue = errors.New("leaf node has no value")
	// ErrMissingTag is returned when a parent without a tag is rendered
	ErrMissingTag = errors.New("parent node has no tag")
	// ErrEmptyParent is returned when a parent without children is rendered
	ErrEmptyParent = errors.New("parent node has no children")
)

// Attr is a single HTML attribute
type Attr struct {
	Key   string
	Value string
}

// Node is an HTML tree node. A leaf carries a value, a parent carries children.
type Node struct {
	Tag      string
	Value    string
	Children []*Node
	Attrs    []Attr

	leaf     bool
	hasValue bool
}

// Leaf creates a leaf node rendered as <tag>value</tag>
func Leaf(tag, value string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Value: value, Attrs: attrs, leaf: true, hasValue: true}
}

// Text creates an untagged leaf holding raw text
func Text(value string) *Node {
	return Leaf("", value)
}

// Empty creates a leaf with no value. Rendering it fails.
func Empty(tag string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attrs: attrs, leaf: true}
}

// Parent creates a container node wrapping children
func Parent(tag string, children []*Node, attrs ...Attr) *Node {
	return &Node{Tag: tag, Children: children, Attrs: attrs}
}

// IsLeaf reports whether the node is a leaf
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Attr returns the value of the named attribute
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Render serializes the node and its subtree to HTML.
// No entity escaping is performed.
func (n *Node) Render() (string, error) {
	var sb strings.Builder
	if err := n.render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (n *Node) render(sb *strings.Builder) error {
	if n.leaf {
		if !n.hasValue {
			return fmt.Errorf("<%s>: %w", n.Tag, ErrMissingValue)
		}
		if n.Tag == "" {
			sb.WriteString(n.Value)
			return nil
		}
		sb.WriteString("<" + n.Tag + n.AttrsHTML() + ">")
		sb.WriteString(n.Value)
		sb.WriteString("</" + n.Tag + ">")
		return nil
	}

	if n.Tag == "" {
		return ErrMissingTag
	}
	if len(n.Children) == 0 {
		return fmt.Errorf("<%s>: %w", n.Tag, ErrEmptyParent)
	}

	sb.WriteString("<" + n.Tag + n.AttrsHTML() + ">")
	for _, child := range n.Children {
		if err := child.render(sb); err != nil {
			return err
		}
	}
	sb.WriteString("</" + n.Tag + ">")
	return nil
}

// AttrsHTML renders attributes as ` key="value"` pairs in insertion order
func (n *Node) AttrsHTML() string {
	if len(n.Attrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(n.Attrs))
	for _, a := range n.Attrs {
		parts = append(parts, fmt.Sprintf(`%s="%s"`, a.Key, a.Value))
	}
	return " " + strings.Join(parts, " ")
}

// Equal reports whether two trees have the same tags, values, children and
// attributes. Attribute order is ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Tag != other.Tag || n.leaf != other.leaf {
		return false
	}
	if n.hasValue != other.hasValue || n.Value != other.Value {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return sameAttrs(n.Attrs, other.Attrs)
}

func sameAttrs(a, b []Attr) bool {
	if len(a) != len(b) {
		return false
	}
	m := make(map[string]string, len(a))
	for _, attr := range a {
		m[attr.Key] = attr.Value
	}
	for _, attr := range b {
		v, ok := m[attr.Key]
		if !ok || v != attr.Value {
			return false
		}
	}
	return true
}

// String returns a debug representation of the node
func (n *Node) String() string {
	if n.leaf {
		return fmt.Sprintf("Leaf(tag=%q, value=%q, attrs=%v)", n.Tag, n.Value, n.Attrs)
	}
	children := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, c.String())
	}
	return fmt.Sprintf("Parent(tag=%q, children=[%s], attrs=%v)", n.Tag, strings.Join(children, ", "), n.Attrs)
}
