package commands

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/diff"
	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/gerunddev/mdsite/internal/tui"
)

// Browse opens an interactive table of every page and its build status
func Browse(opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	tmpl, err := os.ReadFile(cfg.Template)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	m := tui.InitBrowseModel(func(source string) (string, error) {
		unified, err := diffPage(cfg, filepath.Join(cfg.ContentDir, source), string(tmpl))
		if err != nil || unified == "" {
			return "", err
		}
		return diff.Render(unified, 100), nil
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	go func() {
		data, err := collectPages(cfg, tmpl)
		p.Send(tui.BrowseMsg{Data: data, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}

// collectPages classifies every content page against the recorded state
func collectPages(cfg *config.Config, tmpl []byte) (*tui.BrowseData, error) {
	st, err := state.Load(cfg.StateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	inputsHash := state.InputsHash(tmpl, cfg.BasePath)

	sources, err := site.ScanDirectory(cfg.ContentDir, ".md")
	if err != nil {
		return nil, fmt.Errorf("failed to scan content directory: %w", err)
	}

	data := &tui.BrowseData{}
	for _, src := range sources {
		info := tui.PageInfo{Source: src, Status: tui.StatusNew}
		if rel, err := filepath.Rel(cfg.ContentDir, src); err == nil {
			info.Source = rel
		}
		if dst, err := site.OutputPath(cfg.ContentDir, cfg.PublicDir, src); err == nil {
			info.Output = dst
		}

		markdown, err := os.ReadFile(src)
		if err == nil {
			info.Title, _ = site.ExtractTitle(string(markdown))
			_, _, err = site.RenderPage(string(markdown), string(tmpl), cfg.BasePath)
		}

		switch {
		case err != nil:
			info.Status = tui.StatusBroken
		case st.Pages[src] != nil:
			info.Status = tui.StatusStale
			if fresh, err := st.IsFresh(src, inputsHash); err == nil && fresh {
				info.Status = tui.StatusFresh
			}
		}
		data.Pages = append(data.Pages, info)
	}

	return data, nil
}
