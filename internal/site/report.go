package site

import (
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogsmith/internal/metrics"
)

// BuildReport summarizes one build invocation for logs and the CLI.
type BuildReport struct {
	BuildID string `json:"build_id"`

	Posts      int `json:"posts"`
	Pages      int `json:"pages"`
	Categories int `json:"categories"`
	Tags       int `json:"tags"`
	Assets     int `json:"assets"`

	StageDurations map[StageName]time.Duration       `json:"stage_durations"`
	StageResults   map[StageName]metrics.ResultLabel `json:"stage_results"`
	Duration       time.Duration                     `json:"duration"`
	Outcome        string                            `json:"outcome"` // success|failed|canceled
}

func newBuildReport() *BuildReport {
	return &BuildReport{
		BuildID:        uuid.NewString(),
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]metrics.ResultLabel),
	}
}

func (r *BuildReport) recordStage(stage StageName, res metrics.ResultLabel, rec metrics.Recorder) {
	r.StageResults[stage] = res
	rec.IncStageResult(string(stage), res)
}
