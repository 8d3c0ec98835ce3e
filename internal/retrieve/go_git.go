package retrieve

import (
	"context"
	"fmt"

	gogit "github.com/go-git/go-git/v5"

	"codeviz/internal/failure"
)

// GoGit clones in-process with go-git. It needs no external binary, so it
// never reports a missing tool, and it transfers full blobs for the single
// fetched commit.
type GoGit struct{}

func (GoGit) Fetch(ctx context.Context, url, dir string) error {
	_, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
		Tags:         gogit.NoTags,
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("go-git clone %s: %w", url, ctx.Err())
	}
	return failure.WithDiagnostic(failure.RetrievalFailed, err.Error(), err)
}
