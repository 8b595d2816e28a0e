package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/gerunddev/mdsite/internal/styles"
)

// Watch rebuilds the site every interval until ctx is cancelled.
// Builds are incremental so only changed pages are regenerated.
func Watch(ctx context.Context, opts Options, interval time.Duration) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if interval > 0 {
		cfg.Interval = interval
	}
	cfg.Incremental = true

	log, cleanup := setupLogger(cfg, opts.Verbose)
	defer cleanup()

	st, err := state.Load(cfg.StateFile)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	gen := site.NewGenerator(cfg, st)
	gen.SetLogger(log)

	fmt.Println(styles.TitleStyle.Render("mdsite watch"))
	fmt.Println(styles.DimStyle.Render(fmt.Sprintf("  Rebuilding every %v, press Ctrl+C to stop", cfg.Interval)))
	fmt.Println()

	log.Info("watch started", "interval", cfg.Interval)

	rebuild := func() {
		result, err := gen.Build(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Error("build failed", "error", err)
			}
			return
		}
		if result.Pages > 0 || len(result.Errors) > 0 {
			printResult(result)
		}
		if err := st.Save(cfg.StateFile); err != nil {
			log.StateError("save", err)
		}
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	// Initial build
	rebuild()

	for {
		select {
		case <-ticker.C:
			rebuild()
		case <-ctx.Done():
			log.Info("watch stopping")
			if err := st.Save(cfg.StateFile); err != nil {
				log.StateError("save on shutdown", err)
			}
			return nil
		}
	}
}
