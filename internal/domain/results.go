package domain

// SchemaVersionResults is the one structural contract this codebase
// understands for results packs.
const SchemaVersionResults = "results.v1"

// ResultsDocument is the structured form of a results pack shown after
// scoring. The minimal fields (label, summary, key patterns, first
// focus, positioning) are always required; Narrative is the optional
// richer three-page presentation — a union contract, not inheritance.
type ResultsDocument struct {
	SchemaVersion string         `json:"schema_version" yaml:"schema_version"`
	Version       string         `json:"version" yaml:"version"`
	Level         string         `json:"level" yaml:"level"`
	Label         string         `json:"label" yaml:"label"`
	Summary       string         `json:"summary" yaml:"summary"`
	KeyPatterns   []string       `json:"key_patterns" yaml:"key_patterns"`
	FirstFocus    []string       `json:"first_focus" yaml:"first_focus"`
	Positioning   string         `json:"positioning" yaml:"positioning"`
	Narrative     *NarrativeFlow `json:"narrative,omitempty" yaml:"narrative,omitempty"`
}

// NarrativeFlow is the richer multi-page presentation: exactly three
// ordered pages.
type NarrativeFlow struct {
	Pages []NarrativePage `json:"pages" yaml:"pages"`
}

// NarrativePage is one page of the narrative flow
type NarrativePage struct {
	Order    int    `json:"order" yaml:"order"`
	Headline string `json:"headline" yaml:"headline"`
	Body     string `json:"body" yaml:"body"`
	CTALabel string `json:"cta_label,omitempty" yaml:"cta_label,omitempty"`
}
