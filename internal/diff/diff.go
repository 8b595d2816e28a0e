// Package diff shows what a rebuild would change in a generated page.
package diff

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Unified returns a unified diff from oldContent to newContent, or "" if
// they are identical
func Unified(oldName, newName, oldContent, newContent string) string {
	if oldContent == newContent {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(oldName), oldContent, newContent)
	return fmt.Sprint(gotextdiff.ToUnified(oldName, newName, oldContent, edits))
}

// Render wraps a unified diff in a diff code fence and renders it for the
// terminal. The plain fenced diff is returned if rendering fails.
func Render(unified string, width int) string {
	fenced := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fenced
	}

	rendered, err := renderer.Render(fenced)
	if err != nil {
		return fenced
	}
	return rendered
}
