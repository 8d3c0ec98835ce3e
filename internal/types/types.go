package types

// Classification / extraction records ---------------------------------------------

type LanguageCount struct {
	Name  string `json:"name" yaml:"name"`
	Files int    `json:"files" yaml:"files"`
}

// RouteRecord is one declared route. (Verb, Path) identifies it for dedup.
type RouteRecord struct {
	File string `json:"file" yaml:"file"`
	Verb string `json:"verb" yaml:"verb"`
	Path string `json:"path" yaml:"path"`
	Via  string `json:"via" yaml:"via"`
}

// Key returns the dedup key "VERB path".
func (r RouteRecord) Key() string { return r.Verb + " " + r.Path }

// Graph --------------------------------------------------------------------------

const (
	NodeLanguage = "language"
	NodeRoute    = "route"

	EdgeUses = "uses"
)

type GraphNode struct {
	ID    string `json:"id" yaml:"id"`
	Type  string `json:"type" yaml:"type"`
	Label string `json:"label" yaml:"label"`
	Size  *int   `json:"size,omitempty" yaml:"size,omitempty"`
}

type GraphEdge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Type   string `json:"type" yaml:"type"`
}

type Graph struct {
	Nodes []GraphNode `json:"nodes" yaml:"nodes"`
	Edges []GraphEdge `json:"edges" yaml:"edges"`
}

// Response payload ---------------------------------------------------------------

type Counts struct {
	Routes int `json:"routes" yaml:"routes"`
}

// AnalysisResult is produced once per request and never stored.
type AnalysisResult struct {
	Cloned    bool            `json:"cloned" yaml:"cloned"`
	Entries   []string        `json:"entries" yaml:"entries"`
	Languages []LanguageCount `json:"languages" yaml:"languages"`
	Routes    []RouteRecord   `json:"routes" yaml:"routes"`
	Counts    Counts          `json:"counts" yaml:"counts"`
	Graph     Graph           `json:"graph" yaml:"graph"`
}
