package inline

import (
	"errors"
	"fmt"

	"github.com/gerunddev/mdsite/internal/htmlnode"
)

// ErrUnknownKind is returned when a span of an unrecognized kind is converted
var ErrUnknownKind = errors.New("unknown span kind")

// Kind identifies the formatting of a span
type Kind int

const (
	Plain Kind = iota
	Bold
	Italic
	Code
	Link
	Image
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case Link:
		return "link"
	case Image:
		return "image"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Span is a run of inline text with a single formatting kind.
// Target is only set for Link and Image spans.
type Span struct {
	Kind    Kind
	Content string
	Target  string
}

// Text creates a plain span
func Text(content string) Span {
	return Span{Kind: Plain, Content: content}
}

// Styled creates a span of a non-target kind
func Styled(kind Kind, content string) Span {
	return Span{Kind: kind, Content: content}
}

// LinkTo creates a link span
func LinkTo(content, target string) Span {
	return Span{Kind: Link, Content: content, Target: target}
}

// ImageOf creates an image span; content is the alt text
func ImageOf(alt, src string) Span {
	return Span{Kind: Image, Content: alt, Target: src}
}

func (s Span) String() string {
	if s.Target != "" {
		return fmt.Sprintf("%s(%q, %q)", s.Kind, s.Content, s.Target)
	}
	return fmt.Sprintf("%s(%q)", s.Kind, s.Content)
}

// ToNode converts a span into its HTML leaf
func ToNode(s Span) (*htmlnode.Node, error) {
	switch s.Kind {
	case Plain:
		return htmlnode.Text(s.Content), nil
	case Bold:
		return htmlnode.Leaf("b", s.Content), nil
	case Italic:
		return htmlnode.Leaf("i", s.Content), nil
	case Code:
		return htmlnode.Leaf("code", s.Content), nil
	case Link:
		return htmlnode.Leaf("a", s.Content, htmlnode.Attr{Key: "href", Value: s.Target}), nil
	case Image:
		return htmlnode.Leaf("img", "",
			htmlnode.Attr{Key: "src", Value: s.Target},
			htmlnode.Attr{Key: "alt", Value: s.Content},
		), nil
	default:
		return nil, fmt.Errorf("%s: %w", s.Kind, ErrUnknownKind)
	}
}

// ToNodes converts spans into HTML leaves, preserving order
func ToNodes(spans []Span) ([]*htmlnode.Node, error) {
	nodes := make([]*htmlnode.Node, 0, len(spans))
	for _, s := range spans {
		n, err := ToNode(s)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
