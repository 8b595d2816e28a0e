package block

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gerunddev/mdsite/internal/htmlnode"
	"github.com/gerunddev/mdsite/internal/inline"
)

var (
	// ErrInvalidCodeBlock is returned when a code block lacks its fences
	ErrInvalidCodeBlock = errors.New("invalid code block")
	// ErrInvalidQuoteBlock is returned when a quote line lacks the > prefix
	ErrInvalidQuoteBlock = errors.New("invalid quote block")
)

// ToDocumentTree parses a markdown document into an HTML tree rooted at a div
func ToDocumentTree(markdown string) (*htmlnode.Node, error) {
	blocks := Segment(markdown)
	children := make([]*htmlnode.Node, 0, len(blocks))
	for _, b := range blocks {
		node, err := BuildBlock(b)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}
	return htmlnode.Parent("div", children), nil
}

// ToHTML parses a markdown document and renders it
func ToHTML(markdown string) (string, error) {
	root, err := ToDocumentTree(markdown)
	if err != nil {
		return "", err
	}
	return root.Render()
}

// BuildBlock classifies a block and builds its subtree
func BuildBlock(block string) (*htmlnode.Node, error) {
	typ := Classify(block)

	var (
		node *htmlnode.Node
		err  error
	)
	switch typ.Kind {
	case Heading:
		node, err = BuildHeading(block, typ.Level)
	case Code:
		node, err = BuildCode(block)
	case Quote:
		node, err = BuildQuote(block)
	case UnorderedList:
		node, err = BuildUnorderedList(block)
	case OrderedList:
		node, err = BuildOrderedList(block)
	case Paragraph:
		node, err = BuildParagraph(block)
	default:
		err = fmt.Errorf("invalid block type: %s", typ)
	}
	if err != nil {
		return nil, fmt.Errorf("%s block: %w", typ, err)
	}
	return node, nil
}

// textToChildren lexes inline markdown into leaf nodes
func textToChildren(text string) ([]*htmlnode.Node, error) {
	spans, err := inline.Lex(text)
	if err != nil {
		return nil, err
	}
	return inline.ToNodes(spans)
}

func wrap(tag, text string) (*htmlnode.Node, error) {
	children, err := textToChildren(text)
	if err != nil {
		return nil, err
	}
	return htmlnode.Parent(tag, children), nil
}

// BuildParagraph joins the block's lines with spaces inside a p
func BuildParagraph(block string) (*htmlnode.Node, error) {
	return wrap("p", strings.Join(strings.Split(block, "\n"), " "))
}

// BuildHeading strips the heading marker and wraps the text in h{level}
func BuildHeading(block string, level int) (*htmlnode.Node, error) {
	content := strings.TrimSpace(strings.TrimLeft(block, "#"))
	return wrap(fmt.Sprintf("h%d", level), content)
}

// BuildCode strips the fence lines and wraps the raw text in pre > code.
// The content is not inline-parsed.
func BuildCode(block string) (*htmlnode.Node, error) {
	if !strings.HasPrefix(block, fence) || !strings.HasSuffix(block, fence) {
		return nil, ErrInvalidCodeBlock
	}
	nl := strings.IndexByte(block, '\n')
	end := len(block) - len(fence)
	if nl < 0 || nl+1 > end {
		return nil, ErrInvalidCodeBlock
	}

	code := htmlnode.Parent("code", []*htmlnode.Node{htmlnode.Text(block[nl+1 : end])})
	return htmlnode.Parent("pre", []*htmlnode.Node{code}), nil
}

// BuildQuote strips the > prefix from each line and joins them inside a blockquote
func BuildQuote(block string) (*htmlnode.Node, error) {
	lines := strings.Split(block, "\n")
	quoted := make([]string, 0, len(lines))
	for i, line := range lines {
		if !strings.HasPrefix(line, ">") {
			return nil, fmt.Errorf("line %d: %w", i+1, ErrInvalidQuoteBlock)
		}
		line = strings.TrimPrefix(line[1:], " ")
		quoted = append(quoted, strings.TrimRight(line, " \t"))
	}
	return wrap("blockquote", strings.Join(quoted, " "))
}

// BuildUnorderedList makes one li per "- " line inside a ul
func BuildUnorderedList(block string) (*htmlnode.Node, error) {
	return buildList("ul", block, func(line string) string {
		if len(line) < 2 {
			return ""
		}
		return line[2:]
	})
}

// BuildOrderedList makes one li per "n. " line inside an ol
func BuildOrderedList(block string) (*htmlnode.Node, error) {
	return buildList("ol", block, func(line string) string {
		if _, text, ok := strings.Cut(line, ". "); ok {
			return text
		}
		return line
	})
}

func buildList(tag, block string, strip func(line string) string) (*htmlnode.Node, error) {
	lines := strings.Split(block, "\n")
	items := make([]*htmlnode.Node, 0, len(lines))
	for i, line := range lines {
		item, err := wrap("li", strip(line))
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return htmlnode.Parent(tag, items), nil
}
