// Package inline lexes inline Markdown (emphasis, code, links and images) into spans.
package inline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnterminatedDelimiter is returned when an inline delimiter is opened but never closed
var ErrUnterminatedDelimiter = errors.New("unterminated delimiter")

// DelimiterError reports which delimiter was left open and where
type DelimiterError struct {
	Delimiter string
	Text      string
}

func (e *DelimiterError) Error() string {
	return fmt.Sprintf("unterminated delimiter %q in %q", e.Delimiter, e.Text)
}

func (e *DelimiterError) Unwrap() error {
	return ErrUnterminatedDelimiter
}

var (
	imageRe = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	linkRe  = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

// Delimiter passes, applied in this order
var delimiters = []struct {
	delim string
	kind  Kind
}{
	{"**", Bold},
	{"_", Italic},
	{"`", Code},
}

// Ref is a bracket-paren reference: [text](url) or ![alt](url)
type Ref struct {
	Text   string
	Target string
	start  int
	end    int
}

// Lex splits text into typed spans.
// Images and links are extracted first, then bold, italic and code
// delimiters are split out of the remaining plain spans.
func Lex(text string) ([]Span, error) {
	spans := []Span{Text(text)}
	spans = SplitImages(spans)
	spans = SplitLinks(spans)

	var err error
	for _, d := range delimiters {
		spans, err = SplitDelimiter(spans, d.delim, d.kind)
		if err != nil {
			return nil, err
		}
	}
	return spans, nil
}

// ExtractImages finds all ![alt](url) references in text
func ExtractImages(text string) []Ref {
	var refs []Ref
	for _, m := range imageRe.FindAllStringSubmatchIndex(text, -1) {
		refs = append(refs, Ref{
			Text:   text[m[2]:m[3]],
			Target: text[m[4]:m[5]],
			start:  m[0],
			end:    m[1],
		})
	}
	return refs
}

// ExtractLinks finds all [text](url) references in text that are not images
func ExtractLinks(text string) []Ref {
	var refs []Ref
	for _, m := range linkRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > 0 && text[m[0]-1] == '!' {
			continue
		}
		refs = append(refs, Ref{
			Text:   text[m[2]:m[3]],
			Target: text[m[4]:m[5]],
			start:  m[0],
			end:    m[1],
		})
	}
	return refs
}

// SplitImages replaces image references inside plain spans with image spans
func SplitImages(spans []Span) []Span {
	return splitRefs(spans, ExtractImages, ImageOf)
}

// SplitLinks replaces link references inside plain spans with link spans
func SplitLinks(spans []Span) []Span {
	return splitRefs(spans, ExtractLinks, LinkTo)
}

func splitRefs(spans []Span, extract func(string) []Ref, mk func(text, target string) Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Kind != Plain {
			out = append(out, s)
			continue
		}

		pos := 0
		for _, ref := range extract(s.Content) {
			if before := s.Content[pos:ref.start]; before != "" {
				out = append(out, Text(before))
			}
			out = append(out, mk(ref.Text, ref.Target))
			pos = ref.end
		}
		if rest := s.Content[pos:]; rest != "" {
			out = append(out, Text(rest))
		}
	}
	return out
}

// SplitDelimiter splits plain spans on delim. Text between a pair of
// delimiters becomes a span of the given kind; spans of other kinds pass
// through untouched.
func SplitDelimiter(spans []Span, delim string, kind Kind) ([]Span, error) {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Kind != Plain {
			out = append(out, s)
			continue
		}

		parts := strings.Split(s.Content, delim)
		if len(parts)%2 == 0 {
			return nil, &DelimiterError{Delimiter: delim, Text: s.Content}
		}
		for i, part := range parts {
			if i%2 == 0 {
				if part != "" {
					out = append(out, Text(part))
				}
				continue
			}
			out = append(out, Styled(kind, part))
		}
	}
	return out, nil
}
