// Package site turns a directory of markdown documents into HTML pages.
package site

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gerunddev/mdsite/internal/block"
)

// Template placeholders
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// DefaultTemplate is written by `mdsite init`
const DefaultTemplate = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{ Title }}</title>
    <link href="/index.css" rel="stylesheet" />
  </head>
  <body>
    <article>{{ Content }}</article>
  </body>
</html>
`

// ErrNoTitle is returned when a document has no level-one heading
var ErrNoTitle = errors.New("no h1 title found")

// ExtractTitle returns the text of the first line starting with "# "
func ExtractTitle(markdown string) (string, error) {
	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:]), nil
		}
	}
	return "", ErrNoTitle
}

// RenderPage converts markdown to HTML and fills the template.
// Root-relative href and src attributes are rewritten to live under basePath.
func RenderPage(markdown, template, basePath string) (string, string, error) {
	title, err := ExtractTitle(markdown)
	if err != nil {
		return "", "", err
	}

	content, err := block.ToHTML(markdown)
	if err != nil {
		return "", "", fmt.Errorf("failed to render markdown: %w", err)
	}

	page := strings.ReplaceAll(template, TitlePlaceholder, title)
	page = strings.ReplaceAll(page, ContentPlaceholder, content)
	return RewriteBasePath(page, basePath), title, nil
}

// RewriteBasePath prefixes root-relative href="/ and src="/ URLs with basePath
func RewriteBasePath(page, basePath string) string {
	if basePath == "" || basePath == "/" {
		return page
	}
	r := strings.NewReplacer(
		`href="/`, `href="`+basePath,
		`src="/`, `src="`+basePath,
	)
	return r.Replace(page)
}
