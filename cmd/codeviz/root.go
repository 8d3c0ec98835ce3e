package main

import (
	"github.com/spf13/cobra"

	"codeviz/internal/gateway/handler"
)

var rootCmd = &cobra.Command{
	Use:   "codeviz",
	Short: "Summarize a public GitHub repository",
	Long: `codeviz clones a public GitHub repository into a temporary directory,
counts its files per language, extracts decorator-declared HTTP routes and
prints a language/route graph. The clone is removed afterwards.`,
	Version:       handler.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}
