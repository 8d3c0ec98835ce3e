package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"codeviz/internal/analyzer"
	"codeviz/internal/failure"
	"codeviz/internal/retrieve"
)

var (
	analyzeFormat    string
	analyzeBackend   string
	analyzeGitBinary string
	analyzeTimeout   time.Duration
	analyzeQuiet     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <github-url>",
	Short: "Clone a repository and print its languages, routes and graph",
	Long: `Clone a repository and print its languages, routes and graph.

Examples:
  codeviz analyze https://github.com/tiangolo/fastapi
  codeviz analyze https://github.com/o/r --format=table
  codeviz analyze https://github.com/o/r --backend=go-git --timeout=2m`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "Output format (json, yaml, table)")
	analyzeCmd.Flags().StringVar(&analyzeBackend, "backend", "git", "Retrieval backend (git, go-git)")
	analyzeCmd.Flags().StringVar(&analyzeGitBinary, "git", "", "Path to the git executable")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", retrieve.DefaultTimeout, "Clone time budget")
	analyzeCmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false, "Do not print stage progress to stderr")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format := OutputFormat(analyzeFormat)
	if !format.Valid() {
		return fmt.Errorf("unsupported format: %s", analyzeFormat)
	}
	src, err := analyzer.ParseSource(args[0])
	if err != nil {
		return err
	}
	fetcher, err := retrieve.NewFetcher(analyzeBackend, analyzeGitBinary)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := analyzer.New(analyzer.Config{Retriever: retrieve.New(fetcher, analyzeTimeout)})
	var obs analyzer.Observer
	if !analyzeQuiet {
		stderr := cmd.ErrOrStderr()
		obs = func(ev analyzer.Event) {
			if ev.Status == analyzer.StatusStarted {
				return
			}
			fmt.Fprintf(stderr, "%-8s %-8s %s\n", ev.Stage, ev.Status, ev.Elapsed.Round(time.Millisecond))
		}
	}

	res, err := svc.AnalyzeObserved(ctx, src, obs)
	if err != nil {
		if d := failure.DiagnosticOf(err); d != "" {
			return fmt.Errorf("%s: %s", failure.KindOf(err), d)
		}
		return err
	}
	return WriteResult(cmd.OutOrStdout(), res, format)
}
