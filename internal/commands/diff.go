package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/diff"
	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/styles"
)

// Diff shows how rebuilding each page would change its published HTML.
// With no pages given every page in the content directory is compared.
func Diff(opts Options, pages []string, plain bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	tmpl, err := os.ReadFile(cfg.Template)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	if len(pages) == 0 {
		pages, err = site.ScanDirectory(cfg.ContentDir, ".md")
		if err != nil {
			return fmt.Errorf("failed to scan content directory: %w", err)
		}
	}

	changed := 0
	for _, page := range pages {
		unified, err := diffPage(cfg, page, string(tmpl))
		if err != nil {
			fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
			continue
		}
		if unified == "" {
			continue
		}
		changed++
		if plain {
			fmt.Print(unified)
		} else {
			fmt.Print(diff.Render(unified, 120))
		}
	}

	if changed == 0 {
		fmt.Println(styles.SuccessStyle.Render("✓ Published pages are up to date"))
	} else {
		fmt.Println(styles.WarningStyle.Render(fmt.Sprintf("%d of %d pages would change", changed, len(pages))))
	}
	return nil
}

// diffPage renders src in memory and diffs it against its current output
func diffPage(cfg *config.Config, src, template string) (string, error) {
	src, err := filepath.Abs(src)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", src, err)
	}

	dst, err := site.OutputPath(cfg.ContentDir, cfg.PublicDir, src)
	if err != nil {
		return "", err
	}

	markdown, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	rendered, _, err := site.RenderPage(string(markdown), template, cfg.BasePath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", src, err)
	}

	current, err := os.ReadFile(dst)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read output: %w", err)
	}

	name := filepath.Base(dst)
	return diff.Unified(name, name+" (rebuilt)", string(current), rendered), nil
}
