package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	"git.home.luguber.info/inful/blogsmith/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory for the generated site" default:"./dist"`
	Source string `short:"s" name:"source" help:"Content directory override"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.Source != "" {
		cfg.Content = b.Source
	}

	outputDir := ResolveOutputDir(b.Output, cfg.Output.Directory)
	return RunBuild(cfg, outputDir)
}

func RunBuild(cfg *config.Config, outputDir string) error {
	fmt.Println("Starting site build")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	generator, err := site.NewGenerator(cfg, outputDir)
	if err != nil {
		return err
	}

	report, err := generator.Build(ctx)
	if err != nil {
		fmt.Println("Build failed")
		return err
	}

	fmt.Printf("Build completed successfully: %d posts, %d pages, %d assets in %s\n",
		report.Posts, report.Pages, report.Assets, report.Duration.Round(time.Millisecond))
	return nil
}
