// Package retrieve materializes a shallow, history-free copy of a remote
// repository into a temporary working tree that lives for one request.
package retrieve

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"codeviz/internal/failure"
)

// DefaultTimeout is the wall-clock budget for one transfer.
const DefaultTimeout = 60 * time.Second

// WorkingTree is a retrieved snapshot rooted at a temporary directory.
// It is owned by the call that created it.
type WorkingTree struct {
	Root string
}

// WithWorkingTree creates a fresh temporary directory, hands it to fn and
// removes it when fn returns, whatever the outcome.
func WithWorkingTree(fn func(tree *WorkingTree) error) error {
	dir, err := os.MkdirTemp("", "codeviz_")
	if err != nil {
		return fmt.Errorf("create working tree: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			log.Printf("remove working tree %s: %v", dir, rmErr)
		}
	}()
	return fn(&WorkingTree{Root: dir})
}

// Fetcher copies the latest snapshot of url into dir, which already exists
// and is empty. Implementations must stop when ctx is done.
type Fetcher interface {
	Fetch(ctx context.Context, url, dir string) error
}

// Retriever applies the time budget around a Fetcher and sorts its failures
// into the retrieval kinds of the failure taxonomy.
type Retriever struct {
	fetcher Fetcher
	timeout time.Duration
}

func New(fetcher Fetcher, timeout time.Duration) *Retriever {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Retriever{fetcher: fetcher, timeout: timeout}
}

// Timeout returns the transfer budget.
func (r *Retriever) Timeout() time.Duration { return r.timeout }

// Retrieve fetches url into tree.Root.
func (r *Retriever) Retrieve(ctx context.Context, url string, tree *WorkingTree) error {
	if r == nil || r.fetcher == nil {
		return failure.New(failure.UnexpectedFailure, errors.New("retrieve: no fetcher configured"))
	}
	if tree == nil || tree.Root == "" {
		return failure.New(failure.UnexpectedFailure, errors.New("retrieve: working tree is required"))
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.fetcher.Fetch(fetchCtx, url, tree.Root)
	if err == nil {
		return nil
	}
	if errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
		return failure.WithDiagnostic(
			failure.RetrievalTimeout,
			"timed out after "+formatBudget(r.timeout),
			fmt.Errorf("retrieve %s: %w", url, context.DeadlineExceeded),
		)
	}
	if ctx.Err() != nil {
		return failure.New(failure.UnexpectedFailure, fmt.Errorf("retrieve %s: %w", url, ctx.Err()))
	}
	var fe *failure.Error
	if errors.As(err, &fe) {
		return err
	}
	return failure.WithDiagnostic(failure.RetrievalFailed, err.Error(), err)
}

func formatBudget(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", int(d/time.Second))
	}
	return d.String()
}

// NewFetcher selects a backend by name: "git" (default) or "go-git".
func NewFetcher(backend, gitBinary string) (Fetcher, error) {
	switch backend {
	case "", "git", "cli":
		return &GitCLI{Binary: gitBinary}, nil
	case "go-git", "gogit":
		return &GoGit{}, nil
	}
	return nil, fmt.Errorf("retrieve: unknown backend %q", backend)
}
