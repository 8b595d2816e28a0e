package site

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/mdsite/internal/inline"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "title first",
			input:    "# My Title\n\nSome content here.",
			expected: "My Title",
		},
		{
			name:     "title after other content",
			input:    "intro\n\n## Sub\n\n#   Spaced Title  \n",
			expected: "Spaced Title",
		},
		{
			name:    "no title",
			input:   "No title here.",
			wantErr: true,
		},
		{
			name:    "h2 is not a title",
			input:   "## Only a subheading",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, err := ExtractTitle(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoTitle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, title)
		})
	}
}

func TestRenderPage(t *testing.T) {
	md := "# Hello\n\nSee [about](/about.html) and ![cat](/img/cat.png)."

	page, title, err := RenderPage(md, DefaultTemplate, "/")
	require.NoError(t, err)
	assert.Equal(t, "Hello", title)
	assert.NotContains(t, page, TitlePlaceholder)
	assert.NotContains(t, page, ContentPlaceholder)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "Hello", doc.Find("title").Text())
	assert.Equal(t, "Hello", doc.Find("article h1").Text())
	assert.Equal(t, "/about.html", doc.Find("article a").AttrOr("href", ""))
	assert.Equal(t, "/img/cat.png", doc.Find("article img").AttrOr("src", ""))
	assert.Equal(t, "cat", doc.Find("article img").AttrOr("alt", ""))
}

func TestRenderPageBasePath(t *testing.T) {
	md := "# Docs\n\n[home](/index.html) [external](https://example.com/x)"

	page, _, err := RenderPage(md, DefaultTemplate, "/docs/")
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "/docs/index.css", doc.Find("link").AttrOr("href", ""))

	var hrefs []string
	doc.Find("article a").Each(func(_ int, s *goquery.Selection) {
		hrefs = append(hrefs, s.AttrOr("href", ""))
	})
	assert.Equal(t, []string{"/docs/index.html", "https://example.com/x"}, hrefs)
}

func TestRenderPageErrors(t *testing.T) {
	_, _, err := RenderPage("no title", DefaultTemplate, "/")
	assert.ErrorIs(t, err, ErrNoTitle)

	_, _, err = RenderPage("# Title\n\n**unterminated", DefaultTemplate, "/")
	assert.ErrorIs(t, err, inline.ErrUnterminatedDelimiter)
}

func TestRewriteBasePath(t *testing.T) {
	in := `<a href="/a">a</a><img src="/b.png"></img><a href="c">c</a>`

	assert.Equal(t, in, RewriteBasePath(in, "/"))
	assert.Equal(t,
		`<a href="/site/a">a</a><img src="/site/b.png"></img><a href="c">c</a>`,
		RewriteBasePath(in, "/site/"))
}
