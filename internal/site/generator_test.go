package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/state"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newSite(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		ContentDir: filepath.Join(root, "content"),
		StaticDir:  filepath.Join(root, "static"),
		PublicDir:  filepath.Join(root, "public"),
		Template:   filepath.Join(root, "template.html"),
		BasePath:   "/",
		StateFile:  filepath.Join(root, "state.json"),
		Interval:   time.Second,
	}

	writeFile(t, cfg.Template, DefaultTemplate)
	writeFile(t, filepath.Join(cfg.ContentDir, "index.md"), "# Home\n\nWelcome to the **site**.\n\n- [Post](/blog/post.html)")
	writeFile(t, filepath.Join(cfg.ContentDir, "blog", "post.md"), "# A Post\n\n> quoted\n> text\n\n```\ncode _here_\n```")
	writeFile(t, filepath.Join(cfg.StaticDir, "index.css"), "body { margin: 0; }")
	writeFile(t, filepath.Join(cfg.StaticDir, "images", "logo.png"), "png")
	return cfg
}

func readDoc(t *testing.T, path string) *goquery.Document {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	return doc
}

func TestBuild(t *testing.T) {
	cfg := newSite(t)
	writeFile(t, filepath.Join(cfg.PublicDir, "stale.html"), "old")

	g := NewGenerator(cfg, nil)
	result, err := g.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 2, result.Copied)
	assert.Empty(t, result.Errors)
	assert.NotEmpty(t, result.BuildID)
	assert.Contains(t, result.String(), "2 pages generated")

	assert.NoFileExists(t, filepath.Join(cfg.PublicDir, "stale.html"))
	assert.FileExists(t, filepath.Join(cfg.PublicDir, "index.css"))
	assert.FileExists(t, filepath.Join(cfg.PublicDir, "images", "logo.png"))

	index := readDoc(t, filepath.Join(cfg.PublicDir, "index.html"))
	assert.Equal(t, "Home", index.Find("title").Text())
	assert.Equal(t, "site", index.Find("article p b").Text())
	assert.Equal(t, "/blog/post.html", index.Find("article ul li a").AttrOr("href", ""))

	post := readDoc(t, filepath.Join(cfg.PublicDir, "blog", "post.html"))
	assert.Equal(t, "quoted text", post.Find("blockquote").Text())
	assert.Equal(t, "code _here_\n", post.Find("pre code").Text())
}

func TestBuildContinuesPastBrokenPage(t *testing.T) {
	cfg := newSite(t)
	writeFile(t, filepath.Join(cfg.ContentDir, "broken.md"), "# Broken\n\nan _open italic")
	writeFile(t, filepath.Join(cfg.ContentDir, "untitled.md"), "no heading")

	g := NewGenerator(cfg, nil)
	result, err := g.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Pages)
	assert.Len(t, result.Errors, 2)
	assert.NoFileExists(t, filepath.Join(cfg.PublicDir, "broken.html"))
	assert.NoFileExists(t, filepath.Join(cfg.PublicDir, "untitled.html"))
}

func TestIncrementalBuild(t *testing.T) {
	cfg := newSite(t)
	cfg.Incremental = true
	st := state.NewState()

	g := NewGenerator(cfg, st)
	first, err := g.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Pages)
	assert.Equal(t, first.BuildID, st.LastBuildID)

	second, err := g.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Pages)
	assert.Equal(t, 2, second.Skipped)
	assert.NotEqual(t, first.BuildID, second.BuildID)

	// Changing a source rebuilds only that page
	index := filepath.Join(cfg.ContentDir, "index.md")
	writeFile(t, index, "# Home\n\nUpdated.")
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(index, past, past))

	third, err := g.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, third.Pages)
	assert.Equal(t, 1, third.Skipped)

	html, err := os.ReadFile(filepath.Join(cfg.PublicDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<p>Updated.</p>")

	// Changing the template rebuilds everything
	writeFile(t, cfg.Template, "<main>{{ Content }}</main>")
	fourth, err := g.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fourth.Pages)
}

func TestIncrementalBuildBasePathChange(t *testing.T) {
	cfg := newSite(t)
	cfg.Incremental = true
	st := state.NewState()

	g := NewGenerator(cfg, st)
	_, err := g.Build(context.Background())
	require.NoError(t, err)

	cfg.BasePath = "/docs/"
	result, err := g.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 0, result.Skipped)

	doc := readDoc(t, filepath.Join(cfg.PublicDir, "index.html"))
	href, _ := doc.Find("li a").Attr("href")
	assert.Equal(t, "/docs/blog/post.html", href)
	css, _ := doc.Find("link").Attr("href")
	assert.Equal(t, "/docs/index.css", css)
}

func TestIncrementalBuildRemovesDeletedPages(t *testing.T) {
	cfg := newSite(t)
	cfg.Incremental = true
	st := state.NewState()

	g := NewGenerator(cfg, st)
	_, err := g.Build(context.Background())
	require.NoError(t, err)

	post := filepath.Join(cfg.PublicDir, "blog", "post.html")
	require.FileExists(t, post)

	require.NoError(t, os.Remove(filepath.Join(cfg.ContentDir, "blog", "post.md")))
	result, err := g.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)

	assert.NoFileExists(t, post)
	assert.FileExists(t, filepath.Join(cfg.PublicDir, "index.html"))
	assert.Len(t, st.Pages, 1)
}

func TestBuildMissingTemplate(t *testing.T) {
	cfg := newSite(t)
	require.NoError(t, os.Remove(cfg.Template))

	_, err := NewGenerator(cfg, nil).Build(context.Background())
	assert.Error(t, err)
}

func TestBuildCancelled(t *testing.T) {
	cfg := newSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(cfg, nil).Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCopyStaticMissingSource(t *testing.T) {
	g := NewGenerator(config.DefaultConfig(), nil)
	files, n, err := g.CopyStatic(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, files)
	assert.Zero(t, n)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
		wantErr  bool
	}{
		{"top level", "/c/index.md", "/p/index.html", false},
		{"nested", "/c/blog/2024/post.md", "/p/blog/2024/post.html", false},
		{"outside content", "/elsewhere/x.md", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := OutputPath("/c", "/p", filepath.FromSlash(tt.src))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.expected), out)
		})
	}
}

func TestScanDirectory(t *testing.T) {
	cfg := newSite(t)
	writeFile(t, filepath.Join(cfg.ContentDir, "notes.txt"), "ignored")

	files, err := ScanDirectory(cfg.ContentDir, ".md")
	require.NoError(t, err)
	assert.Len(t, files, 2)
	for _, f := range files {
		assert.True(t, strings.HasSuffix(f, ".md"), f)
	}
}
