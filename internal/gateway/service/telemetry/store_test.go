package telemetry

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeviz/internal/analyzer"
)

func TestStore_AppendAndRead(t *testing.T) {
	s, err := NewStore(4)
	require.NoError(t, err)

	s.Append("r1", "analyzer", "retrieve", map[string]any{"status": "started"})
	s.Append("r1", "analyzer", "retrieve", map[string]any{"status": "finished", "timestamp": "fixed"})

	events, err := s.Read("r1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "r1", events[0]["run_id"])
	assert.Equal(t, "analyzer", events[0]["source"])
	assert.Equal(t, "retrieve", events[0]["stage"])
	assert.NotEmpty(t, events[0]["timestamp"])
	assert.Equal(t, "fixed", events[1]["timestamp"])

	missing, err := s.Read("nope")
	require.NoError(t, err)
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
}

func TestStore_EvictsOldestRun(t *testing.T) {
	s, err := NewStore(2)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		s.Append(fmt.Sprintf("r%d", i), "analyzer", "done", nil)
	}
	assert.Equal(t, 2, s.Len())
	events, _ := s.Read("r0")
	assert.Empty(t, events)
	events, _ = s.Read("r2")
	assert.Len(t, events, 1)
}

func TestStore_CapsEventsPerRun(t *testing.T) {
	s, err := NewStore(1)
	require.NoError(t, err)
	for i := 0; i < MaxEventsPerRun+10; i++ {
		s.Append("r", "analyzer", "extract", nil)
	}
	events, _ := s.Read("r")
	assert.Len(t, events, MaxEventsPerRun)
}

func TestStore_ConcurrentAppend(t *testing.T) {
	s, err := NewStore(8)
	require.NoError(t, err)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append("r", "analyzer", "classify", nil)
		}()
	}
	wg.Wait()
	events, _ := s.Read("r")
	assert.Len(t, events, 20)
}

func TestStore_Observer(t *testing.T) {
	s, err := NewStore(0)
	require.NoError(t, err)
	obs := s.Observer("run-9")
	obs(analyzer.Event{Stage: analyzer.StageExtract, Status: analyzer.StatusFinished,
		Elapsed: 1500 * time.Millisecond, Detail: map[string]any{"routes": 3}})
	obs(analyzer.Event{Stage: analyzer.StageFailed, Status: analyzer.StatusFailed, Err: errors.New("boom")})

	events, _ := s.Read("run-9")
	require.Len(t, events, 2)
	assert.Equal(t, "extract", events[0]["stage"])
	assert.Equal(t, "finished", events[0]["status"])
	assert.Equal(t, int64(1500), events[0]["elapsed_ms"])
	assert.Equal(t, 3, events[0]["routes"])
	assert.Equal(t, "boom", events[1]["error"])
}
