package site

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/logger"
	"github.com/gerunddev/mdsite/internal/state"
)

// Generator builds a site from a content directory
type Generator struct {
	config *config.Config
	state  *state.State
	log    *logger.Logger
}

// NewGenerator creates a new generator instance.
// st may be nil, in which case every page is rebuilt.
func NewGenerator(cfg *config.Config, st *state.State) *Generator {
	return &Generator{
		config: cfg,
		state:  st,
		log:    logger.Discard(),
	}
}

// SetLogger sets the logger used for build events
func (g *Generator) SetLogger(l *logger.Logger) {
	g.log = l
}

// Result represents the result of a build
type Result struct {
	BuildID   string
	Pages     int
	Skipped   int
	Copied    int
	Bytes     int64
	Errors    []error
	StartTime time.Time
	EndTime   time.Time
}

// String returns a human-readable summary of the build result
func (r *Result) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	return fmt.Sprintf(
		"Build complete: %s pages generated, %s unchanged, %s files copied (%s), %d errors (took %v)",
		humanize.Comma(int64(r.Pages)),
		humanize.Comma(int64(r.Skipped)),
		humanize.Comma(int64(r.Copied)),
		humanize.Bytes(uint64(r.Bytes)),
		len(r.Errors),
		duration.Round(time.Millisecond),
	)
}

// Build runs a full site build: clean (unless incremental), copy static
// assets, then generate every page.
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	result := &Result{
		BuildID:   uuid.New().String(),
		StartTime: time.Now(),
	}
	g.log.BuildStarted(result.BuildID, g.config.ContentDir, g.config.PublicDir)

	if !g.config.Incremental || g.state == nil {
		if err := g.Clean(g.config.PublicDir); err != nil {
			return nil, err
		}
	}

	if g.config.StaticDir != "" {
		copied, bytes, err := g.CopyStatic(g.config.StaticDir, g.config.PublicDir)
		if err != nil {
			return nil, err
		}
		result.Copied = copied
		result.Bytes = bytes
	}

	if err := g.GenerateAll(ctx, result); err != nil {
		return nil, err
	}

	result.EndTime = time.Now()
	if g.state != nil {
		g.state.RecordBuild(result.BuildID, result.EndTime)
	}
	g.log.BuildCompleted(result.BuildID, result.Pages, result.Skipped, len(result.Errors), result.EndTime.Sub(result.StartTime))
	return result, nil
}

// GenerateAll renders every markdown file in the content directory into
// the public directory, mirroring the directory layout. A page that fails
// is logged and recorded in the result; the rest are still generated.
func (g *Generator) GenerateAll(ctx context.Context, result *Result) error {
	tmpl, err := os.ReadFile(g.config.Template)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}
	inputsHash := state.InputsHash(tmpl, g.config.BasePath)

	sources, err := ScanDirectory(g.config.ContentDir, ".md")
	if err != nil {
		return fmt.Errorf("failed to scan content directory: %w", err)
	}

	seen := make(map[string]bool, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[src] = true

		dst, err := OutputPath(g.config.ContentDir, g.config.PublicDir, src)
		if err != nil {
			result.Errors = append(result.Errors, err)
			g.log.PageError(src, err)
			continue
		}

		if g.config.Incremental && g.state != nil {
			fresh, err := g.state.IsFresh(src, inputsHash)
			if err != nil {
				g.log.StateError("check freshness", err)
			} else if fresh {
				result.Skipped++
				g.log.PageSkipped(src, "unchanged")
				continue
			}
		}

		if err := g.GeneratePage(src, string(tmpl), dst); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", src, err))
			g.log.PageError(src, err)
			if g.state != nil {
				g.state.Forget(src)
			}
			continue
		}
		result.Pages++

		if g.state != nil {
			if err := g.state.Update(src, dst, inputsHash); err != nil {
				g.log.StateError("update", err)
			}
		}
	}

	if g.state != nil {
		for _, stale := range g.state.Prune(g.config.ContentDir, seen) {
			if err := os.Remove(stale); err != nil && !os.IsNotExist(err) {
				g.log.StateError("remove stale page", err)
				continue
			}
			g.log.FileRemoved(stale)
		}
	}
	return nil
}

// GeneratePage renders a single markdown file through the template into dst.
// Nothing is written when rendering fails.
func (g *Generator) GeneratePage(src, template, dst string) error {
	markdown, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	page, title, err := RenderPage(string(markdown), template, g.config.BasePath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(dst, []byte(page), 0644); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}

	g.log.PageGenerated(src, dst, title)
	return nil
}

// Clean deletes everything inside dir, keeping dir itself
func (g *Generator) Clean(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read output directory: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		g.log.FileRemoved(path)
	}
	return nil
}

// CopyStatic recursively copies every file in src into dst, returning the
// number of files and bytes copied
func (g *Generator) CopyStatic(src, dst string) (int, int64, error) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return 0, 0, nil
	}

	var (
		files int
		total int64
	)
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		n, err := copyFile(path, target)
		if err != nil {
			return err
		}
		files++
		total += n
		g.log.FileCopied(path, target)
		return nil
	})
	if err != nil {
		return files, total, fmt.Errorf("failed to copy static files: %w", err)
	}

	return files, total, nil
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return n, err
}

// OutputPath maps a markdown source under contentDir to its .html path under publicDir
func OutputPath(contentDir, publicDir, src string) (string, error) {
	rel, err := filepath.Rel(contentDir, src)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside %s", src, contentDir)
	}
	return filepath.Join(publicDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".html"), nil
}

// ScanDirectory scans a directory for files with given extension
func ScanDirectory(dir string, ext string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && filepath.Ext(path) == ext {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}
