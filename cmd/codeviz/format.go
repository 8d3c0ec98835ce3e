package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"codeviz/internal/types"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatTable OutputFormat = "table"
)

func (f OutputFormat) Valid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return true
	}
	return false
}

// WriteResult renders res to w in the requested format.
func WriteResult(w io.Writer, res *types.AnalysisResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return writeTable(w, res)
	}
	return fmt.Errorf("unsupported format: %s", format)
}

func writeTable(w io.Writer, res *types.AnalysisResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "LANGUAGE\tFILES")
	for _, l := range res.Languages {
		fmt.Fprintf(tw, "%s\t%s\n", l.Name, strconv.Itoa(l.Files))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "VERB\tPATH\tVIA\tFILE")
	for _, r := range res.Routes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Verb, r.Path, r.Via, r.File)
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "routes: %d\tnodes: %d\tedges: %d\n", res.Counts.Routes, len(res.Graph.Nodes), len(res.Graph.Edges))
	return tw.Flush()
}
