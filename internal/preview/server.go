// Package preview serves the generated site locally and rebuilds it whenever
// the content directory or the configuration file changes.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
	"git.home.luguber.info/inful/blogsmith/internal/metrics"
	"git.home.luguber.info/inful/blogsmith/internal/site"
	"git.home.luguber.info/inful/blogsmith/internal/stats"
)

const debounceDelay = 300 * time.Millisecond

// Options control the preview server.
type Options struct {
	ConfigPath string
	OutputDir  string
	Addr       string
	StatsEvery time.Duration // 0 disables periodic stats refresh
	Metrics    bool          // expose /metrics on the preview server
}

// Server watches the content directory and the config file, rebuilding the
// site on change and serving the last successful output over HTTP.
//
// The output tree is served at the web root, so builds always run with the
// base URL cleared; a deployment base_url such as "/blog" would otherwise
// produce links the preview server cannot resolve.
type Server struct {
	opts     Options
	recorder metrics.Recorder
	registry *prom.Registry

	mu  sync.RWMutex
	cfg *config.Config
}

// NewServer creates a preview server for an already-loaded configuration.
func NewServer(cfg *config.Config, opts Options) *Server {
	s := &Server{opts: opts, cfg: localized(cfg), recorder: metrics.NoopRecorder{}}
	if opts.Metrics {
		s.registry = prom.NewRegistry()
		s.recorder = metrics.NewPrometheusRecorder(s.registry)
	}
	return s
}

// localized copies cfg with the base URL cleared so generated links resolve
// from the preview server root.
func localized(cfg *config.Config) *config.Config {
	out := *cfg
	out.Site.BaseURL = ""
	return &out
}

func (s *Server) config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// reloadConfig re-reads the config file, keeping the previous configuration
// when the new one fails to load.
func (s *Server) reloadConfig() {
	cfg, err := config.Load(s.opts.ConfigPath)
	if err != nil {
		slog.Warn("Config reload failed, keeping previous configuration", logfields.Error(err))
		return
	}
	s.mu.Lock()
	s.cfg = localized(cfg)
	s.mu.Unlock()
	slog.Info("Configuration reloaded", logfields.Path(s.opts.ConfigPath))
}

// Run blocks until the context is canceled. The initial build runs before the
// HTTP server starts; later build failures keep serving the previous output.
func (s *Server) Run(ctx context.Context) error {
	if err := s.rebuild(ctx); err != nil {
		// Serve anyway so the author can fix the content and save again.
		slog.Error("Initial build failed", logfields.Error(err))
	}

	httpServer := s.startHTTP()

	watcher, err := s.startWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	scheduler, err := s.startStatsRefresh(ctx)
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() { _ = scheduler.Shutdown() }()
	}

	rebuildReq, trigger := debouncer()
	s.startRebuildWorker(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(httpServer)
		case ev, ok := <-watcher.Events:
			if !ok {
				return s.shutdown(httpServer)
			}
			s.handleEvent(watcher, ev, trigger)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return s.shutdown(httpServer)
			}
			slog.Warn("Watcher error", logfields.Error(werr))
		}
	}
}

func (s *Server) startHTTP() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.opts.OutputDir)))
	if s.registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("Preview server listening", logfields.URL("http://"+s.opts.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Preview server failed", logfields.Error(err))
		}
	}()
	return srv
}

func (s *Server) shutdown(srv *http.Server) error {
	slog.Info("Shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return nil
}

// startWatcher watches the content tree recursively plus the directory
// holding the config file, so edits to either trigger a rebuild.
func (s *Server) startWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	cfg := s.config()
	if err := addDirsRecursive(watcher, cfg.Content); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	if cfg.Assets != "" {
		if _, statErr := os.Stat(cfg.Assets); statErr == nil {
			if err := addDirsRecursive(watcher, cfg.Assets); err != nil {
				_ = watcher.Close()
				return nil, err
			}
		}
	}
	if s.opts.ConfigPath != "" {
		if err := watcher.Add(filepath.Dir(s.opts.ConfigPath)); err != nil {
			slog.Warn("Cannot watch config directory", logfields.Path(s.opts.ConfigPath), logfields.Error(err))
		}
	}
	return watcher, nil
}

func (s *Server) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}

	// Config edits reload the configuration before the rebuild fires.
	if s.opts.ConfigPath != "" && sameFile(ev.Name, s.opts.ConfigPath) {
		s.reloadConfig()
		trigger()
		return
	}

	// Only content and asset changes matter; the config dir watch sees
	// unrelated siblings too.
	cfg := s.config()
	if !underDir(ev.Name, cfg.Content) && !underDir(ev.Name, cfg.Assets) {
		return
	}

	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

// debouncer coalesces bursts of filesystem events into single rebuilds.
func debouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceDelay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

// startRebuildWorker serializes rebuilds: at most one runs at a time, and a
// request arriving mid-build queues exactly one follow-up.
func (s *Server) startRebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	var mu sync.Mutex
	running := false
	pending := false

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-rebuildReq:
				if !ok {
					return
				}
				mu.Lock()
				if running {
					pending = true
					mu.Unlock()
					continue
				}
				running = true
				mu.Unlock()

				slog.Info("Change detected, rebuilding site")
				if err := s.rebuild(ctx); err != nil {
					slog.Warn("Rebuild failed, serving previous output", logfields.Error(err))
				}

				mu.Lock()
				running = false
				if pending {
					pending = false
					mu.Unlock()
					select {
					case rebuildReq <- struct{}{}:
					default:
					}
				} else {
					mu.Unlock()
				}
			}
		}
	}()
}

func (s *Server) rebuild(ctx context.Context) error {
	g, err := site.NewGenerator(s.config(), s.opts.OutputDir)
	if err != nil {
		return err
	}
	_, err = g.SetRecorder(s.recorder).Build(ctx)
	return err
}

// startStatsRefresh schedules periodic network stats fetches when enabled.
// Each successful fetch rewrites the stats file and rebuilds the site.
func (s *Server) startStatsRefresh(ctx context.Context) (gocron.Scheduler, error) {
	if s.opts.StatsEvery <= 0 {
		return nil, nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.opts.StatsEvery),
		gocron.NewTask(func() {
			cfg := s.config()
			fetched, err := stats.NewFetcher().Fetch(ctx)
			if err != nil {
				slog.Warn("Stats refresh aborted", logfields.Error(err))
				return
			}
			if fetched.Empty() {
				slog.Warn("Stats refresh returned no data, keeping previous file")
				return
			}
			if err := fetched.Save(cfg.Stats.File); err != nil {
				slog.Warn("Stats refresh write failed", logfields.Path(cfg.Stats.File), logfields.Error(err))
				return
			}
			slog.Info("Network stats refreshed", logfields.Path(cfg.Stats.File))
			if err := s.rebuild(ctx); err != nil {
				slog.Warn("Rebuild after stats refresh failed", logfields.Error(err))
			}
		}),
		gocron.WithName("stats-refresh"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats refresh job: %w", err)
	}

	scheduler.Start()
	slog.Info("Periodic stats refresh enabled", slog.String("interval", s.opts.StatsEvery.String()))
	return scheduler, nil
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

func sameFile(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return a == b
	}
	return aa == bb
}

func underDir(path, dir string) bool {
	if dir == "" {
		return false
	}
	ap, err1 := filepath.Abs(path)
	ad, err2 := filepath.Abs(dir)
	if err1 != nil || err2 != nil {
		return strings.HasPrefix(path, dir)
	}
	rel, err := filepath.Rel(ad, ap)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && rel != "")
}

// shouldIgnoreEvent filters editor temp files and hidden files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
