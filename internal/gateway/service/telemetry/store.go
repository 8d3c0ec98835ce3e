// Package telemetry keeps the stage events of recent analysis runs in memory
// for /debug/run-logs.
package telemetry

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"codeviz/internal/analyzer"
)

// MaxEventsPerRun caps a single run's log; later events are dropped.
const MaxEventsPerRun = 256

// Store holds events for the most recently touched runs. Older runs are
// evicted once the run limit is reached.
type Store struct {
	mu   sync.Mutex
	runs *lru.Cache[string, []map[string]any]
}

func NewStore(maxRuns int) (*Store, error) {
	if maxRuns <= 0 {
		maxRuns = 128
	}
	c, err := lru.New[string, []map[string]any](maxRuns)
	if err != nil {
		return nil, fmt.Errorf("telemetry store: %w", err)
	}
	return &Store{runs: c}, nil
}

func (s *Store) Append(runID, source, stage string, fields map[string]any) {
	evt := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		evt[k] = v
	}
	evt["run_id"] = runID
	evt["source"] = source
	evt["stage"] = stage
	if _, ok := evt["timestamp"]; !ok {
		evt["timestamp"] = time.Now().Format(time.RFC3339Nano)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	events, _ := s.runs.Get(runID)
	if len(events) >= MaxEventsPerRun {
		return
	}
	s.runs.Add(runID, append(events, evt))
}

// Read returns a copy of the run's events; unknown runs yield an empty slice.
func (s *Store) Read(runID string) ([]map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events, ok := s.runs.Peek(runID)
	if !ok {
		return []map[string]any{}, nil
	}
	out := make([]map[string]any, len(events))
	copy(out, events)
	return out, nil
}

func (s *Store) Len() int { return s.runs.Len() }

// Observer records analyzer events under runID.
func (s *Store) Observer(runID string) analyzer.Observer {
	return func(ev analyzer.Event) {
		s.Append(runID, "analyzer", string(ev.Stage), EventFields(ev))
	}
}

// EventFields flattens an analyzer event for JSON output.
func EventFields(ev analyzer.Event) map[string]any {
	fields := map[string]any{
		"status":     string(ev.Status),
		"elapsed_ms": ev.Elapsed.Milliseconds(),
	}
	for k, v := range ev.Detail {
		fields[k] = v
	}
	if ev.Err != nil {
		fields["error"] = ev.Err.Error()
	}
	return fields
}
