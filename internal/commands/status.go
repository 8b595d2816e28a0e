package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/gerunddev/mdsite/internal/styles"
)

// Status displays the last recorded build
func Status(opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	st, err := state.Load(cfg.StateFile)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	fmt.Println(styles.TitleStyle.Render("mdsite status"))
	fmt.Println()

	if st.LastBuild().IsZero() {
		fmt.Println(styles.DimStyle.Render("No builds recorded yet"))
		return nil
	}

	pages := 0
	for src := range st.Pages {
		if _, err := site.OutputPath(cfg.ContentDir, cfg.PublicDir, src); err == nil {
			pages++
		}
	}

	fmt.Printf("%s %s\n", styles.DimStyle.Render("Last build:"), styles.HighlightStyle.Render(humanize.Time(st.LastBuild())))
	fmt.Printf("%s %s\n", styles.DimStyle.Render("Build ID:  "), st.LastBuildID)
	fmt.Printf("%s %s\n", styles.DimStyle.Render("Pages:     "), humanize.Comma(int64(pages)))
	fmt.Printf("%s %s\n", styles.DimStyle.Render("Output:    "), styles.NormalTextStyle.Render(cfg.PublicDir))
	return nil
}
