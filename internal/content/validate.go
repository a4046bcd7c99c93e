package content

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/beaconhq/beacon-backend/internal/domain"
)

// Normalized is the canonical, order-stable form of a validated content
// document. Canonical holds the serialization used for hashing and
// storage; exactly one of QuestionSet/Results is set depending on Kind.
type Normalized struct {
	Kind          string
	SchemaVersion string
	Canonical     []byte
	QuestionSet   *domain.QuestionSetDocument
	Results       *domain.ResultsDocument
}

// Descriptor returns the discriminating keys carried inside the
// normalized document itself, so a stored descriptor can never disagree
// with its document.
func (n *Normalized) Descriptor() domain.IdentityDescriptor {
	switch n.Kind {
	case domain.KindQuestionSet:
		return domain.IdentityDescriptor{
			Kind:    domain.KindQuestionSet,
			Version: n.QuestionSet.Version,
			Locale:  n.QuestionSet.Locale,
		}
	default:
		return domain.IdentityDescriptor{
			Kind:    domain.KindResults,
			Version: n.Results.Version,
			Level:   n.Results.Level,
		}
	}
}

// Validate parses and validates a candidate document of the given kind,
// returning its normalized form or the aggregated error list. Malformed
// input is a normal, reportable outcome — this function never panics.
func Validate(kind string, raw []byte) (*Normalized, []domain.FieldError) {
	switch kind {
	case domain.KindQuestionSet:
		var doc domain.QuestionSetDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, []domain.FieldError{{Location: "document", Message: "not a valid question set document: " + err.Error()}}
		}
		return ValidateQuestionSet(doc)
	case domain.KindResults:
		var doc domain.ResultsDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, []domain.FieldError{{Location: "document", Message: "not a valid results document: " + err.Error()}}
		}
		return ValidateResults(doc)
	default:
		return nil, []domain.FieldError{{Location: "kind", Message: fmt.Sprintf("unknown content kind %q", kind)}}
	}
}

// ValidateQuestionSet checks the question-set rule set and returns the
// normalized document. Errors are aggregated; validation does not stop
// at the first failure when more can be detected cheaply.
func ValidateQuestionSet(doc domain.QuestionSetDocument) (*Normalized, []domain.FieldError) {
	var errs []domain.FieldError

	doc.SchemaVersion = strings.TrimSpace(doc.SchemaVersion)
	doc.Version = strings.TrimSpace(doc.Version)
	doc.Locale = strings.TrimSpace(doc.Locale)

	if doc.SchemaVersion != domain.SchemaVersionQuestionSet {
		errs = append(errs, domain.FieldError{
			Location: "schema_version",
			Message:  fmt.Sprintf("expected %q, got %q", domain.SchemaVersionQuestionSet, doc.SchemaVersion),
		})
	}
	if doc.Version == "" {
		errs = append(errs, domain.FieldError{Location: "version", Message: "version is required"})
	}

	if len(doc.Sections) == 0 {
		errs = append(errs, domain.FieldError{Location: "sections", Message: "at least one section is required"})
	}

	sectionIDs := make(map[string]bool, len(doc.Sections))
	for i := range doc.Sections {
		s := &doc.Sections[i]
		s.ID = strings.TrimSpace(s.ID)
		s.Title = strings.TrimSpace(s.Title)

		loc := fmt.Sprintf("sections[%d]", i)
		if s.ID == "" {
			errs = append(errs, domain.FieldError{Location: loc + ".id", Message: "section id is required"})
			continue
		}
		if sectionIDs[s.ID] {
			errs = append(errs, domain.FieldError{Location: loc + ".id", Message: fmt.Sprintf("duplicate section id %q", s.ID)})
		}
		sectionIDs[s.ID] = true
		if s.Title == "" {
			errs = append(errs, domain.FieldError{Location: fmt.Sprintf("sections[%s].title", s.ID), Message: "section title is required"})
		}
	}

	if len(doc.Items) == 0 {
		errs = append(errs, domain.FieldError{Location: "items", Message: "at least one item is required"})
	}

	itemIDs := make(map[string]bool, len(doc.Items))
	for i := range doc.Items {
		it := &doc.Items[i]
		it.ID = strings.TrimSpace(it.ID)
		it.SectionID = strings.TrimSpace(it.SectionID)
		it.Text = strings.TrimSpace(it.Text)

		name := it.ID
		if name == "" {
			errs = append(errs, domain.FieldError{Location: fmt.Sprintf("items[%d].id", i), Message: "item id is required"})
			name = fmt.Sprintf("#%d", i)
		} else if itemIDs[name] {
			errs = append(errs, domain.FieldError{Location: fmt.Sprintf("items[%s].id", name), Message: fmt.Sprintf("duplicate item id %q", name)})
		}
		itemIDs[it.ID] = true

		if it.Text == "" {
			errs = append(errs, domain.FieldError{Location: fmt.Sprintf("items[%s].text", name), Message: "item text is required"})
		}
		if it.SectionID == "" {
			errs = append(errs, domain.FieldError{Location: fmt.Sprintf("items[%s].section_id", name), Message: "owning section id is required"})
		} else if len(sectionIDs) > 0 && !sectionIDs[it.SectionID] {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("items[%s].section_id", name),
				Message:  fmt.Sprintf("unknown section id %q", it.SectionID),
			})
		}

		errs = append(errs, validateOptions(name, it.Options)...)

		for j := range it.Options {
			it.Options[j].Label = strings.TrimSpace(it.Options[j].Label)
			if it.Options[j].Label == "" {
				errs = append(errs, domain.FieldError{
					Location: fmt.Sprintf("items[%s].options[%d].label", name, j),
					Message:  "option label is required",
				})
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	normalizeQuestionSet(&doc)

	canonical, err := json.Marshal(&doc)
	if err != nil {
		return nil, []domain.FieldError{{Location: "document", Message: "canonical serialization failed: " + err.Error()}}
	}

	return &Normalized{
		Kind:          domain.KindQuestionSet,
		SchemaVersion: doc.SchemaVersion,
		Canonical:     canonical,
		QuestionSet:   &doc,
	}, nil
}

// validateOptions enforces the strictest invariant in the system: every
// item carries exactly four options whose values are the integers
// {0,1,2,3}, each appearing exactly once. Every missing and duplicate
// value is reported, not just the first.
func validateOptions(itemName string, opts []domain.AnswerOption) []domain.FieldError {
	var errs []domain.FieldError
	loc := fmt.Sprintf("items[%s].options", itemName)

	if len(opts) != 4 {
		errs = append(errs, domain.FieldError{
			Location: loc,
			Message:  fmt.Sprintf("exactly 4 options required, got %d", len(opts)),
		})
	}

	seen := make(map[int]int, 4)
	for _, o := range opts {
		seen[o.Value]++
	}
	for _, v := range domain.OptionValues {
		switch {
		case seen[v] == 0:
			errs = append(errs, domain.FieldError{Location: loc, Message: fmt.Sprintf("missing option value %d", v)})
		case seen[v] > 1:
			errs = append(errs, domain.FieldError{Location: loc, Message: fmt.Sprintf("duplicate option value %d", v)})
		}
	}
	for v, n := range seen {
		if (v < 0 || v > 3) && n > 0 {
			errs = append(errs, domain.FieldError{Location: loc, Message: fmt.Sprintf("option value %d out of range 0..3", v)})
		}
	}

	return errs
}

// normalizeQuestionSet fixes ordering: sections by declared order, items
// by (section, order), options by value. Section item id lists are
// rebuilt from the items' declared owners.
func normalizeQuestionSet(doc *domain.QuestionSetDocument) {
	sort.SliceStable(doc.Sections, func(i, j int) bool {
		return doc.Sections[i].Order < doc.Sections[j].Order
	})

	sectionRank := make(map[string]int, len(doc.Sections))
	for i, s := range doc.Sections {
		sectionRank[s.ID] = i
	}

	sort.SliceStable(doc.Items, func(i, j int) bool {
		a, b := doc.Items[i], doc.Items[j]
		if sectionRank[a.SectionID] != sectionRank[b.SectionID] {
			return sectionRank[a.SectionID] < sectionRank[b.SectionID]
		}
		return a.Order < b.Order
	})

	for i := range doc.Items {
		sort.SliceStable(doc.Items[i].Options, func(a, b int) bool {
			return doc.Items[i].Options[a].Value < doc.Items[i].Options[b].Value
		})
	}

	for i := range doc.Sections {
		doc.Sections[i].ItemIDs = doc.Sections[i].ItemIDs[:0]
	}
	for _, it := range doc.Items {
		if rank, ok := sectionRank[it.SectionID]; ok {
			doc.Sections[rank].ItemIDs = append(doc.Sections[rank].ItemIDs, it.ID)
		}
	}
}

// ValidateResults checks the results-pack rule set and returns the
// normalized document. The narrative flow is optional; its absence is
// valid as long as the minimal fields are present.
func ValidateResults(doc domain.ResultsDocument) (*Normalized, []domain.FieldError) {
	var errs []domain.FieldError

	doc.SchemaVersion = strings.TrimSpace(doc.SchemaVersion)
	doc.Version = strings.TrimSpace(doc.Version)
	doc.Level = strings.TrimSpace(doc.Level)
	doc.Label = strings.TrimSpace(doc.Label)
	doc.Summary = strings.TrimSpace(doc.Summary)
	doc.Positioning = strings.TrimSpace(doc.Positioning)

	if doc.SchemaVersion != domain.SchemaVersionResults {
		errs = append(errs, domain.FieldError{
			Location: "schema_version",
			Message:  fmt.Sprintf("expected %q, got %q", domain.SchemaVersionResults, doc.SchemaVersion),
		})
	}
	if doc.Version == "" {
		errs = append(errs, domain.FieldError{Location: "version", Message: "version is required"})
	}
	if doc.Level == "" {
		errs = append(errs, domain.FieldError{Location: "level", Message: "level is required"})
	}
	if doc.Label == "" {
		errs = append(errs, domain.FieldError{Location: "label", Message: "label is required"})
	}
	if doc.Summary == "" {
		errs = append(errs, domain.FieldError{Location: "summary", Message: "summary is required"})
	}
	if doc.Positioning == "" {
		errs = append(errs, domain.FieldError{Location: "positioning", Message: "positioning is required"})
	}

	doc.KeyPatterns = trimStringList(doc.KeyPatterns)
	if len(doc.KeyPatterns) == 0 {
		errs = append(errs, domain.FieldError{Location: "key_patterns", Message: "at least one key pattern is required"})
	}
	doc.FirstFocus = trimStringList(doc.FirstFocus)
	if len(doc.FirstFocus) == 0 {
		errs = append(errs, domain.FieldError{Location: "first_focus", Message: "at least one first focus area is required"})
	}

	if doc.Narrative != nil {
		if len(doc.Narrative.Pages) != 3 {
			errs = append(errs, domain.FieldError{
				Location: "narrative.pages",
				Message:  fmt.Sprintf("narrative flow requires exactly 3 pages, got %d", len(doc.Narrative.Pages)),
			})
		}
		for i := range doc.Narrative.Pages {
			p := &doc.Narrative.Pages[i]
			p.Headline = strings.TrimSpace(p.Headline)
			p.Body = strings.TrimSpace(p.Body)
			p.CTALabel = strings.TrimSpace(p.CTALabel)
			if p.Headline == "" {
				errs = append(errs, domain.FieldError{Location: fmt.Sprintf("narrative.pages[%d].headline", i), Message: "headline is required"})
			}
			if p.Body == "" {
				errs = append(errs, domain.FieldError{Location: fmt.Sprintf("narrative.pages[%d].body", i), Message: "body is required"})
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	if doc.Narrative != nil {
		sort.SliceStable(doc.Narrative.Pages, func(i, j int) bool {
			return doc.Narrative.Pages[i].Order < doc.Narrative.Pages[j].Order
		})
	}

	canonical, err := json.Marshal(&doc)
	if err != nil {
		return nil, []domain.FieldError{{Location: "document", Message: "canonical serialization failed: " + err.Error()}}
	}

	return &Normalized{
		Kind:          domain.KindResults,
		SchemaVersion: doc.SchemaVersion,
		Canonical:     canonical,
		Results:       &doc,
	}, nil
}

func trimStringList(in []string) []string {
	out := in[:0]
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SanityCheck is the minimal structural check used on the pin tier of
// resolution: the stored blob must be JSON with a schema_version tag.
// Full re-validation is deliberately not done there.
func SanityCheck(raw []byte) bool {
	var probe struct {
		SchemaVersion string `json:"schema_version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.SchemaVersion != ""
}
