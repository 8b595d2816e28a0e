package commands

import (
	"context"
	"fmt"

	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/gerunddev/mdsite/internal/styles"
)

// Build performs a one-shot site build
func Build(ctx context.Context, opts Options, incremental bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if incremental {
		cfg.Incremental = true
	}

	log, cleanup := setupLogger(cfg, opts.Verbose)
	defer cleanup()
	log.ConfigLoaded(cfg.ContentDir, cfg.PublicDir, cfg.BasePath, cfg.Incremental)

	fmt.Println(styles.TitleStyle.Render("mdsite build"))
	fmt.Printf("%s → %s\n\n", styles.DimStyle.Render(cfg.ContentDir), styles.DimStyle.Render(cfg.PublicDir))

	st, err := state.Load(cfg.StateFile)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	gen := site.NewGenerator(cfg, st)
	gen.SetLogger(log)

	result, err := gen.Build(ctx)
	if err != nil {
		return err
	}

	if err := st.Save(cfg.StateFile); err != nil {
		log.StateError("save", err)
	}

	printResult(result)
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d pages failed to build", len(result.Errors))
	}
	return nil
}

func printResult(result *site.Result) {
	for _, err := range result.Errors {
		fmt.Println(styles.ErrorStyle.Render("✗ " + err.Error()))
	}
	if len(result.Errors) > 0 {
		fmt.Println(styles.WarningStyle.Render(result.String()))
		return
	}
	fmt.Println(styles.SuccessStyle.Render("✓ " + result.String()))
}
