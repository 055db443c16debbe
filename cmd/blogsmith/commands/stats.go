package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	"git.home.luguber.info/inful/blogsmith/internal/stats"
)

// StatsCmd fetches current network statistics and writes the stats file.
type StatsCmd struct {
	Output string `short:"o" name:"output" help:"Stats file path (defaults to the configured stats file)"`
}

func (s *StatsCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	path := s.Output
	if path == "" {
		path = cfg.Stats.File
	}

	fetched, err := stats.NewFetcher().Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}
	if fetched.Empty() {
		fmt.Println("No statistics could be fetched; stats file left unchanged")
		return nil
	}

	if err := fetched.Save(path); err != nil {
		return err
	}
	fmt.Printf("Stats written to %s\n", path)
	return nil
}
