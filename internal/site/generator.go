// Package site assembles the static blog: it orchestrates loading,
// validation, Markdown rendering, template expansion, and the atomic publish
// of the output directory.
package site

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"git.home.luguber.info/inful/blogsmith/internal/config"
	"git.home.luguber.info/inful/blogsmith/internal/content"
	berrors "git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
	"git.home.luguber.info/inful/blogsmith/internal/markdown"
	"git.home.luguber.info/inful/blogsmith/internal/metrics"
	"git.home.luguber.info/inful/blogsmith/internal/site/templates"
	"git.home.luguber.info/inful/blogsmith/internal/stats"
)

// IndexPostCount is how many recent posts appear on the index page.
const IndexPostCount = 12

// RenderedPage is one complete output file: a path relative to the output
// root and the bytes written verbatim.
type RenderedPage struct {
	Path    string
	Content []byte
}

// Generator runs the build pipeline. One Generator serves one invocation;
// no state persists across builds.
type Generator struct {
	cfg       *config.Config
	outputDir string
	renderer  *markdown.Renderer
	engine    *templates.Engine
	stats     *stats.Stats
	recorder  metrics.Recorder
	workers   int
}

// NewGenerator creates a generator for the given configuration and output
// directory. Template parsing failures surface here, before any I/O.
func NewGenerator(cfg *config.Config, outputDir string) (*Generator, error) {
	engine, err := templates.New(cfg)
	if err != nil {
		return nil, berrors.InternalError("template engine init failed", err)
	}
	return &Generator{
		cfg:       cfg,
		outputDir: filepath.Clean(outputDir),
		renderer:  markdown.NewRenderer(),
		engine:    engine,
		recorder:  metrics.NoopRecorder{},
		workers:   runtime.NumCPU(),
	}, nil
}

// SetRecorder injects a metrics recorder (optional). Returns the generator for chaining.
func (g *Generator) SetRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		g.recorder = metrics.NoopRecorder{}
		return g
	}
	g.recorder = r
	return g
}

// Build runs the full pipeline and returns a report. On any error the output
// directory is left exactly as it was, except for a failure inside the final
// publish stage itself.
func (g *Generator) Build(ctx context.Context) (*BuildReport, error) {
	report := newBuildReport()
	bs := newBuildState(g, report)

	slog.Info("Starting site build",
		logfields.BuildID(report.BuildID),
		logfields.Path(g.outputDir))

	// Stats are optional: absence or staleness never fails a build.
	if s, err := stats.Load(g.cfg.Stats.File); err != nil {
		slog.Warn("Ignoring unreadable stats file", logfields.Path(g.cfg.Stats.File), logfields.Error(err))
	} else if !s.Empty() {
		g.stats = s
	}

	err := runStages(ctx, bs, []namedStage{
		{StageLoad, stageLoad},
		{StageValidate, stageValidate},
		{StageRender, stageRender},
		{StagePages, stagePages},
		{StagePublish, stagePublish},
	})

	report.Duration = time.Since(bs.start)
	g.recorder.ObserveBuildDuration(report.Duration)

	switch {
	case err == nil:
		report.Outcome = "success"
	case ctx.Err() != nil:
		report.Outcome = "canceled"
	default:
		report.Outcome = "failed"
	}
	g.recorder.IncBuildOutcome(report.Outcome)

	if err != nil {
		return report, err
	}

	slog.Info("Site build completed",
		logfields.BuildID(report.BuildID),
		logfields.Count(report.Pages),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}

func stageLoad(_ context.Context, bs *BuildState) error {
	raw, err := content.NewLoader(bs.Generator.cfg.Content).Load()
	if err != nil {
		return err
	}
	bs.Raw = raw
	slog.Info("Content loaded", logfields.Count(len(raw)))
	return nil
}

// stageValidate validates every post's metadata and checks slug uniqueness.
// The first invalid post aborts the build; nothing has been written yet.
func stageValidate(_ context.Context, bs *BuildState) error {
	posts := make([]*content.Post, 0, len(bs.Raw))
	bySlug := make(map[string]string, len(bs.Raw))

	for _, raw := range bs.Raw {
		post, err := content.Validate(raw)
		if err != nil {
			return err
		}
		if prev, dup := bySlug[post.Slug]; dup {
			return berrors.SlugConflict(post.Slug, raw.Path, prev)
		}
		bySlug[post.Slug] = raw.Path
		posts = append(posts, post)
	}

	bs.Posts = posts
	bs.Report.Posts = len(posts)
	return nil
}

// stageRender renders every post body to HTML. Posts are independent until
// listing aggregation, so this is a bounded parallel map; results are then
// re-sorted (date descending, slug ascending) for deterministic listings.
func stageRender(ctx context.Context, bs *BuildState) error {
	g := bs.Generator
	posts := bs.Posts

	workers := g.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(posts) {
		workers = len(posts)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	jobs := make(chan *content.Post)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for post := range jobs {
				html, err := g.renderer.Render(post.Body)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = berrors.InternalError("markdown rendering failed", err).
							WithContext("path", post.SourcePath)
					}
					mu.Unlock()
					continue
				}
				post.HTML = html
				post.Excerpt = content.Excerpt(html, content.ExcerptLimit)
			}
		}()
	}

feed:
	for _, post := range posts {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- post:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return newCanceledStageError(StageRender, err)
	}
	if firstErr != nil {
		return firstErr
	}

	sortPosts(posts)
	return nil
}

// sortPosts orders posts by date descending, ties broken by slug ascending.
func sortPosts(posts []*content.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})
}

func stagePages(_ context.Context, bs *BuildState) error {
	pages, err := bs.Generator.renderPages(bs)
	if err != nil {
		return err
	}
	bs.Pages = pages
	bs.Report.Pages = len(pages)
	bs.Generator.recorder.AddPagesRendered(len(pages))
	return nil
}

func stagePublish(_ context.Context, bs *BuildState) error {
	w := NewWriter(bs.Generator.outputDir)
	assets, err := w.Publish(bs.Pages, bs.Generator.cfg.Assets)
	if err != nil {
		return err
	}
	bs.Report.Assets = assets
	return nil
}
