package analyzer

import (
	"context"
	"time"
)

type Stage string

const (
	StageRetrieve Stage = "retrieve"
	StageClassify Stage = "classify"
	StageExtract  Stage = "extract"
	StageRank     Stage = "rank"
	StageGraph    Stage = "graph"
	StageDone     Stage = "done"
	StageFailed   Stage = "failed"
)

type Status string

const (
	StatusStarted  Status = "started"
	StatusFinished Status = "finished"
	StatusFailed   Status = "failed"
)

// Event reports pipeline progress. Detail holds stage counters such as
// "files" or "routes".
type Event struct {
	Stage   Stage
	Status  Status
	Elapsed time.Duration
	Detail  map[string]any
	Err     error
}

// Observer receives events synchronously. Calls for one run are serialized.
type Observer func(Event)

type runIDKey struct{}

// WithRunID tags ctx with a run id used in log lines.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunIDFrom returns the run id set by WithRunID, or "-".
func RunIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(runIDKey{}).(string); ok && v != "" {
		return v
	}
	return "-"
}
