package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	"git.home.luguber.info/inful/blogsmith/internal/preview"
)

// PreviewCmd serves the generated site locally with rebuild-on-change.
type PreviewCmd struct {
	Output     string        `short:"o" name:"output" default:"" help:"Output directory for the generated site (defaults to temp)."`
	Addr       string        `name:"addr" default:"localhost:1313" help:"Listen address for the preview server."`
	StatsEvery time.Duration `name:"stats-every" default:"0" help:"Refresh network stats at this interval (0 disables)."`
	Metrics    bool          `name:"metrics" help:"Expose Prometheus metrics on /metrics."`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// If no output provided, build into a temporary directory.
	outDir := p.Output
	tempOut := ""
	if outDir == "" {
		tmp, err := os.MkdirTemp("", "blogsmith-preview-*")
		if err != nil {
			return fmt.Errorf("create temp output: %w", err)
		}
		outDir = tmp
		tempOut = tmp
		fmt.Println("Preview output directory:", outDir)
	}

	server := preview.NewServer(cfg, preview.Options{
		ConfigPath: root.Config,
		OutputDir:  outDir,
		Addr:       p.Addr,
		StatsEvery: p.StatsEvery,
		Metrics:    p.Metrics,
	})
	err = server.Run(sigctx)

	if tempOut != "" {
		_ = os.RemoveAll(tempOut)
	}
	return err
}
