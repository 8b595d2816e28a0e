// Command mdsite generates a static HTML site from a directory of Markdown pages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/gerunddev/mdsite/internal/commands"
	"github.com/gerunddev/mdsite/internal/styles"
)

const version = "0.1.0"

// Globals are flags accepted by every command.
type Globals struct {
	Config  string `name:"config" short:"c" help:"Path to the config file" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`
}

func (g *Globals) options() commands.Options {
	return commands.Options{ConfigFile: g.Config, Verbose: g.Verbose}
}

// CLI defines the command-line interface for mdsite.
type CLI struct {
	Globals

	Build   BuildCmd   `cmd:"" default:"withargs" help:"Generate the site once"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild changed pages periodically"`
	Init    InitCmd    `cmd:"" help:"Scaffold a new site"`
	Diff    DiffCmd    `cmd:"" help:"Show how a rebuild would change published pages"`
	Browse  BrowseCmd  `cmd:"" help:"Browse pages and preview rebuilds interactively"`
	Status  StatusCmd  `cmd:"" help:"Show the last recorded build"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// BuildCmd generates every page of the site.
type BuildCmd struct {
	BasePath    string `name:"base-path" help:"URL prefix for root-relative links, e.g. /blog/"`
	Incremental bool   `short:"i" help:"Only regenerate pages whose source or template changed"`
}

func (c *BuildCmd) Run(ctx context.Context, g *Globals) error {
	opts := g.options()
	opts.BasePath = c.BasePath
	return commands.Build(ctx, opts, c.Incremental)
}

// WatchCmd rebuilds the site until interrupted.
type WatchCmd struct {
	BasePath string        `name:"base-path" help:"URL prefix for root-relative links"`
	Interval time.Duration `help:"Time between rebuilds (defaults to the config interval)"`
}

func (c *WatchCmd) Run(ctx context.Context, g *Globals) error {
	opts := g.options()
	opts.BasePath = c.BasePath
	return commands.Watch(ctx, opts, c.Interval)
}

// InitCmd writes a starter config, template and page.
type InitCmd struct {
	Dir string `arg:"" optional:"" default:"." help:"Directory to initialise" type:"path"`
}

func (c *InitCmd) Run() error {
	return commands.Init(c.Dir)
}

// DiffCmd previews rebuilt pages against the published output.
type DiffCmd struct {
	Pages    []string `arg:"" optional:"" help:"Markdown pages to compare (default: all)" type:"path"`
	BasePath string   `name:"base-path" help:"URL prefix for root-relative links"`
	Plain    bool     `help:"Print the raw unified diff without styling"`
}

func (c *DiffCmd) Run(g *Globals) error {
	opts := g.options()
	opts.BasePath = c.BasePath
	return commands.Diff(opts, c.Pages, c.Plain)
}

// BrowseCmd opens the interactive page browser.
type BrowseCmd struct{}

func (c *BrowseCmd) Run(g *Globals) error {
	return commands.Browse(g.options())
}

// StatusCmd shows the recorded build state.
type StatusCmd struct{}

func (c *StatusCmd) Run(g *Globals) error {
	return commands.Status(g.options())
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("mdsite v%s\n", version)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("mdsite"),
		kong.Description("Static site generator for Markdown pages"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&cli.Globals),
	)

	if err := kctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+err.Error()))
		stop()
		os.Exit(1)
	}
}
