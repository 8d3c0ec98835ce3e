package retrieve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"codeviz/internal/failure"
)

// GitCLI clones with the git binary. Blob contents are fetched lazily
// (--filter=blob:none) so only the checked-out snapshot crosses the wire.
type GitCLI struct {
	// Binary is the git executable; empty means "git" on PATH.
	Binary string
	// WaitDelay bounds how long a killed clone may hold its output pipes.
	WaitDelay time.Duration
}

// CloneArgs returns the arguments for a shallow, tag-less, partial clone.
func CloneArgs(url, dir string) []string {
	return []string{"clone", "--depth", "1", "--no-tags", "--filter=blob:none", url, dir}
}

func (g *GitCLI) binary() string {
	if b := strings.TrimSpace(g.Binary); b != "" {
		return b
	}
	return "git"
}

func (g *GitCLI) Fetch(ctx context.Context, url, dir string) error {
	bin := g.binary()
	if _, err := exec.LookPath(bin); err != nil {
		return failure.New(failure.RetrievalToolMissing, fmt.Errorf("%s not found on PATH: %w", bin, err))
	}

	args := CloneArgs(url, dir)
	cmd := exec.CommandContext(ctx, bin, args...)
	// Never prompt for credentials; a private repository fails instead of hanging.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.WaitDelay = g.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = 5 * time.Second
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("git %s: %w", strings.Join(args, " "), ctx.Err())
	}
	if errors.Is(err, exec.ErrNotFound) {
		return failure.New(failure.RetrievalToolMissing, err)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return failure.WithDiagnostic(failure.RetrievalFailed, diagnostic(stderr.String(), stdout.String(), err), err)
	}
	return fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
}

// diagnostic prefers stderr, then stdout, then the error text, all trimmed.
func diagnostic(stderr, stdout string, err error) string {
	if s := strings.TrimSpace(stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(stdout); s != "" {
		return s
	}
	return strings.TrimSpace(err.Error())
}
