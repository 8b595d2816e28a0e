package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/styles"
)

const sampleIndex = `# Hello

This site was generated by **mdsite**.

- Edit ` + "`content/index.md`" + `
- Run ` + "`mdsite build`" + `
`

// Init scaffolds a new site in dir: a config file, a template and a
// sample page. Existing files are left untouched.
func Init(dir string) error {
	cfg := config.DefaultConfig()
	// Keep the state in the user's data dir rather than in the project file
	cfg.StateFile = ""

	files := []struct {
		path  string
		write func(path string) error
	}{
		{filepath.Join(dir, config.ProjectFile), cfg.SaveTo},
		{filepath.Join(dir, cfg.Template), writeString(site.DefaultTemplate)},
		{filepath.Join(dir, cfg.ContentDir, "index.md"), writeString(sampleIndex)},
		{filepath.Join(dir, cfg.StaticDir, "index.css"), writeString("body { max-width: 42rem; margin: 2rem auto; }\n")},
	}

	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil {
			fmt.Println(styles.DimStyle.Render("  exists  " + f.path))
			continue
		}
		if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		if err := f.write(f.path); err != nil {
			return err
		}
		fmt.Println(styles.SuccessStyle.Render("  created ") + f.path)
	}

	return nil
}

func writeString(content string) func(string) error {
	return func(path string) error {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	}
}
