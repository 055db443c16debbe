package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/blogsmith/internal/content"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
	"git.home.luguber.info/inful/blogsmith/internal/metrics"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageName identifies a pipeline stage in reports, logs, and metrics.
type StageName string

const (
	StageLoad     StageName = "load"
	StageValidate StageName = "validate"
	StageRender   StageName = "render"
	StagePages    StageName = "pages"
	StagePublish  StageName = "publish"
)

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying the failing stage and cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries mutable state across stages of a single build.
// Nothing in it survives the invocation.
type BuildState struct {
	Generator *Generator
	Report    *BuildReport

	Raw   []content.RawPost // after load
	Posts []*content.Post   // after validate+render, date desc / slug asc
	Pages []RenderedPage    // after pages

	Timings map[StageName]time.Duration
	start   time.Time
}

func newBuildState(g *Generator, report *BuildReport) *BuildState {
	return &BuildState{
		Generator: g,
		Report:    report,
		Timings:   make(map[StageName]time.Duration),
		start:     time.Now(),
	}
}

type namedStage struct {
	name StageName
	fn   Stage
}

// runStages executes stages in order, recording timing and stopping on the
// first error. Every post-processing failure is fatal here; the only
// degrading path (Markdown rendering) never returns an error.
func runStages(ctx context.Context, bs *BuildState, stages []namedStage) error {
	rec := bs.Generator.recorder
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.name, ctx.Err())
			bs.Report.recordStage(st.name, metrics.ResultCanceled, rec)
			return se
		default:
		}

		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.Timings[st.name] = dur
		bs.Report.StageDurations[st.name] = dur
		rec.ObserveStageDuration(string(st.name), dur)

		if err != nil {
			var se *StageError
			if !errors.As(err, &se) {
				se = newFatalStageError(st.name, err)
			}
			if se.Kind == StageErrorCanceled {
				bs.Report.recordStage(st.name, metrics.ResultCanceled, rec)
			} else {
				bs.Report.recordStage(st.name, metrics.ResultFatal, rec)
			}
			slog.Error("Build stage failed",
				logfields.Stage(string(st.name)),
				logfields.BuildID(bs.Report.BuildID),
				logfields.Error(se))
			return se
		}

		bs.Report.recordStage(st.name, metrics.ResultSuccess, rec)
		slog.Debug("Build stage completed",
			logfields.Stage(string(st.name)),
			logfields.DurationMS(float64(dur.Milliseconds())))
	}
	return nil
}
