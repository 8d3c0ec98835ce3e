package lang

import (
	"fmt"

	"codeviz/internal/common/scan"
	t "codeviz/internal/types"
)

// Counts maps a language name to the number of files observed.
type Counts map[string]int

// Classify walks root (honoring the scanner's exclusion set) and counts files
// whose extension is in the language table. Other files are ignored.
func Classify(root string) (Counts, error) {
	return ClassifyWithOptions(root, scan.Options{})
}

// ClassifyWithOptions is Classify with explicit scan options.
func ClassifyWithOptions(root string, opts scan.Options) (Counts, error) {
	counts := Counts{}
	ch, errCh := scan.Stream(root, opts, true)
	for fv := range ch {
		if name, ok := Lookup(fv.Ext); ok {
			counts[name]++
		}
	}
	if err := <-errCh; err != nil {
		return nil, fmt.Errorf("classify %s: %w", root, err)
	}
	return counts, nil
}

// List flattens counts into records in no particular order.
func (c Counts) List() []t.LanguageCount {
	out := make([]t.LanguageCount, 0, len(c))
	for name, files := range c {
		out = append(out, t.LanguageCount{Name: name, Files: files})
	}
	return out
}
