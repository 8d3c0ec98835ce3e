// Package analyzer runs the fetch, classify, extract, rank and graph stages
// for one repository and assembles the response payload.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"codeviz/internal/cache/memory"
	"codeviz/internal/failure"
	"codeviz/internal/graph"
	"codeviz/internal/lang"
	"codeviz/internal/rank"
	"codeviz/internal/retrieve"
	"codeviz/internal/routes"
	"codeviz/internal/safeio"
	t "codeviz/internal/types"
)

// MaxEntries caps the top-level listing in the result.
const MaxEntries = 50

type Config struct {
	Retriever *retrieve.Retriever
	// Failures replays recent RetrievalFailed errors per URL. Nil disables it.
	Failures *memory.FailureCache
	// Observer receives every run's events in addition to per-call observers.
	Observer Observer
}

type Analyzer struct {
	retriever *retrieve.Retriever
	failures  *memory.FailureCache
	observer  Observer
}

func New(cfg Config) *Analyzer {
	return &Analyzer{
		retriever: cfg.Retriever,
		failures:  cfg.Failures,
		observer:  cfg.Observer,
	}
}

// Analyze runs the whole pipeline for src. It returns either a complete
// result or an error classified by the failure taxonomy, never both.
func (a *Analyzer) Analyze(ctx context.Context, src Source) (*t.AnalysisResult, error) {
	return a.AnalyzeObserved(ctx, src, nil)
}

// AnalyzeObserved is Analyze with an extra observer for this run only.
func (a *Analyzer) AnalyzeObserved(ctx context.Context, src Source, obs Observer) (*t.AnalysisResult, error) {
	r := &run{
		runID:     RunIDFrom(ctx),
		src:       src,
		observers: []Observer{a.observer, obs},
		started:   time.Now(),
	}
	res, err := a.analyze(ctx, r)
	if err != nil {
		var fe *failure.Error
		if !errors.As(err, &fe) {
			err = failure.New(failure.UnexpectedFailure, err)
		}
		r.emit(Event{Stage: StageFailed, Status: StatusFailed, Elapsed: time.Since(r.started), Err: err,
			Detail: map[string]any{"kind": string(failure.KindOf(err))}})
		return nil, err
	}
	r.emit(Event{Stage: StageDone, Status: StatusFinished, Elapsed: time.Since(r.started),
		Detail: map[string]any{"languages": len(res.Languages), "routes": res.Counts.Routes}})
	return res, nil
}

func (a *Analyzer) analyze(ctx context.Context, r *run) (*t.AnalysisResult, error) {
	if r.src.IsZero() {
		return nil, failure.New(failure.InvalidSource, ErrInvalidSource)
	}
	url := r.src.URL()
	if cached, ok := a.failures.Get(url); ok {
		log.Printf("analyze %s [%s]: replaying cached retrieval failure", url, r.runID)
		return nil, cached
	}

	var res *t.AnalysisResult
	err := retrieve.WithWorkingTree(func(tree *retrieve.WorkingTree) error {
		if err := r.stage(StageRetrieve, func() (map[string]any, error) {
			return nil, a.retriever.Retrieve(ctx, url, tree)
		}); err != nil {
			if failure.Is(err, failure.RetrievalFailed) {
				a.failures.Add(url, err)
			}
			return err
		}

		entries, err := listEntries(tree.Root, MaxEntries)
		if err != nil {
			return err
		}

		var (
			counts lang.Counts
			found  []t.RouteRecord
			g      errgroup.Group
		)
		g.Go(func() error {
			return r.stage(StageClassify, func() (map[string]any, error) {
				var err error
				counts, err = lang.Classify(tree.Root)
				return map[string]any{"languages": len(counts)}, err
			})
		})
		g.Go(func() error {
			return r.stage(StageExtract, func() (map[string]any, error) {
				var err error
				found, err = routes.Extract(tree.Root)
				return map[string]any{"routes": len(found)}, err
			})
		})
		if err := g.Wait(); err != nil {
			return err
		}

		var (
			langs  []t.LanguageCount
			ranked []t.RouteRecord
		)
		r.step(StageRank, func() map[string]any {
			langs = rank.TopLanguages(counts, rank.MaxLanguages)
			ranked = rank.Routes(found, rank.MaxRoutes)
			return map[string]any{"languages": len(langs), "routes": len(ranked)}
		})

		var gr t.Graph
		r.step(StageGraph, func() map[string]any {
			gr = graph.Build(langs, ranked)
			return map[string]any{"nodes": len(gr.Nodes), "edges": len(gr.Edges)}
		})

		res = &t.AnalysisResult{
			Cloned:    true,
			Entries:   entries,
			Languages: langs,
			Routes:    ranked,
			Counts:    t.Counts{Routes: len(ranked)},
			Graph:     gr,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// listEntries returns up to limit top-level names of root in lexical order.
func listEntries(root string, limit int) ([]string, error) {
	fsys, err := safeio.NewSafeFS(root)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	des, err := fsys.SafeReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if len(des) > limit {
		des = des[:limit]
	}
	names := make([]string, 0, len(des))
	for _, de := range des {
		names = append(names, de.Name())
	}
	return names, nil
}

// run carries per-request state for event emission.
type run struct {
	runID     string
	src       Source
	observers []Observer
	started   time.Time

	mu sync.Mutex
}

func (r *run) emit(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.observers {
		if o != nil {
			o(ev)
		}
	}
}

// stage brackets fn with started/finished (or failed) events and a log line.
func (r *run) stage(s Stage, fn func() (map[string]any, error)) error {
	r.emit(Event{Stage: s, Status: StatusStarted})
	start := time.Now()
	detail, err := fn()
	elapsed := time.Since(start)
	if err != nil {
		log.Printf("analyze %s [%s]: %s failed after %s: %v", r.src, r.runID, s, elapsed.Round(time.Millisecond), err)
		r.emit(Event{Stage: s, Status: StatusFailed, Elapsed: elapsed, Detail: detail, Err: err})
		return err
	}
	log.Printf("analyze %s [%s]: %s done in %s", r.src, r.runID, s, elapsed.Round(time.Millisecond))
	r.emit(Event{Stage: s, Status: StatusFinished, Elapsed: elapsed, Detail: detail})
	return nil
}

// step is stage for work that cannot fail.
func (r *run) step(s Stage, fn func() map[string]any) {
	r.emit(Event{Stage: s, Status: StatusStarted})
	start := time.Now()
	detail := fn()
	elapsed := time.Since(start)
	log.Printf("analyze %s [%s]: %s done in %s", r.src, r.runID, s, elapsed.Round(time.Millisecond))
	r.emit(Event{Stage: s, Status: StatusFinished, Elapsed: elapsed, Detail: detail})
}
