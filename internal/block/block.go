// Package block splits Markdown documents into blocks and builds their HTML trees.
package block

import (
	"fmt"
	"strconv"
	"strings"
)

const fence = "```"

// Kind is the structural type of a block
type Kind int

const (
	Paragraph Kind = iota
	Heading
	Code
	Quote
	UnorderedList
	OrderedList
)

func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case Code:
		return "code"
	case Quote:
		return "quote"
	case UnorderedList:
		return "unordered_list"
	case OrderedList:
		return "ordered_list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Type is a block kind plus its heading level (1-6, zero for non-headings)
type Type struct {
	Kind  Kind
	Level int
}

func (t Type) String() string {
	if t.Kind == Heading {
		return fmt.Sprintf("heading(%d)", t.Level)
	}
	return t.Kind.String()
}

// Segment splits a document into blocks on blank lines.
// Blocks are trimmed and empty blocks are dropped.
func Segment(document string) []string {
	var blocks []string
	for _, b := range strings.Split(document, "\n\n") {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// Classify determines the structural type of a block
func Classify(block string) Type {
	lines := strings.Split(block, "\n")

	if level := headingLevel(block); level > 0 {
		return Type{Kind: Heading, Level: level}
	}
	if len(lines) > 1 && strings.HasPrefix(lines[0], fence) && strings.HasPrefix(lines[len(lines)-1], fence) {
		return Type{Kind: Code}
	}
	if strings.HasPrefix(block, ">") {
		if !allPrefixed(lines, ">") {
			return Type{Kind: Paragraph}
		}
		return Type{Kind: Quote}
	}
	if strings.HasPrefix(block, "- ") {
		if !allPrefixed(lines, "- ") {
			return Type{Kind: Paragraph}
		}
		return Type{Kind: UnorderedList}
	}
	if strings.HasPrefix(block, "1. ") {
		for i, line := range lines {
			if !strings.HasPrefix(line, orderedMarker(i+1)) {
				return Type{Kind: Paragraph}
			}
		}
		return Type{Kind: OrderedList}
	}
	return Type{Kind: Paragraph}
}

// headingLevel returns the number of leading #s when followed by a space,
// or zero if the block is not a heading
func headingLevel(block string) int {
	level := 0
	for level < len(block) && block[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(block) || block[level] != ' ' {
		return 0
	}
	return level
}

func allPrefixed(lines []string, prefix string) bool {
	for _, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			return false
		}
	}
	return true
}

func orderedMarker(n int) string {
	return strconv.Itoa(n) + ". "
}
