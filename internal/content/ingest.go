package content

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/beaconhq/beacon-backend/internal/domain"
)

// TabularInput carries the four related tables of a question-set import
// as raw delimited text, each with a declared header row. This is the
// shape editors export from a spreadsheet.
type TabularInput struct {
	Meta     string `json:"meta"`
	Sections string `json:"sections"`
	Items    string `json:"items"`
	Options  string `json:"options"`
}

// Expected header sets per table
var (
	metaHeaders    = []string{"key", "value"}
	sectionHeaders = []string{"id", "title", "order"}
	itemHeaders    = []string{"id", "section_id", "text", "order"}
	optionHeaders  = []string{"item_id", "label", "value"}
)

// Required metadata keys
const (
	metaKeySchemaVersion = "schema_version"
	metaKeyKind          = "kind"
	metaKeyVersion       = "version"
	metaKeyLocale        = "locale"
)

// BuildQuestionSet parses the four tables, cross-validates referential
// integrity between them, assembles a question-set document, and runs
// it through the validator as a final structural check. The full
// aggregated error list is the primary deliverable of a failed call:
// a human fixing a spreadsheet needs every problem at once, not the
// first one.
func BuildQuestionSet(in TabularInput) (*Normalized, []domain.FieldError) {
	var errs []domain.FieldError

	metaRows, metaErrs := parseTable("meta", in.Meta, metaHeaders)
	sectionRows, sectionErrs := parseTable("sections", in.Sections, sectionHeaders)
	itemRows, itemErrs := parseTable("items", in.Items, itemHeaders)
	optionRows, optionErrs := parseTable("options", in.Options, optionHeaders)
	errs = append(errs, metaErrs...)
	errs = append(errs, sectionErrs...)
	errs = append(errs, itemErrs...)
	errs = append(errs, optionErrs...)

	meta, metaErrs2 := buildMeta(metaRows)
	errs = append(errs, metaErrs2...)

	sections, sectionIDs, sectionErrs2 := buildSections(sectionRows)
	errs = append(errs, sectionErrs2...)

	items, itemIDs, itemErrs2 := buildItems(itemRows, sectionIDs)
	errs = append(errs, itemErrs2...)

	optionErrs2 := attachOptions(optionRows, items, itemIDs)
	errs = append(errs, optionErrs2...)

	if len(errs) > 0 {
		return nil, errs
	}

	doc := domain.QuestionSetDocument{
		SchemaVersion: meta[metaKeySchemaVersion],
		Version:       meta[metaKeyVersion],
		Locale:        meta[metaKeyLocale],
		Sections:      sections,
	}
	for _, id := range itemIDs {
		doc.Items = append(doc.Items, *items[id])
	}

	// Final structural check through the generic validator
	return ValidateQuestionSet(doc)
}

// row is one parsed record keyed by column name, remembering its 1-based
// position in the source table for error reporting.
type row struct {
	num  int
	cols map[string]string
}

// parseTable reads delimited text against an expected header set. A
// header mismatch fails the whole table; a malformed row is a per-row
// error carrying table, 1-based row number, and column count.
func parseTable(table, text string, headers []string) ([]row, []domain.FieldError) {
	if strings.TrimSpace(text) == "" {
		return nil, []domain.FieldError{{Location: table, Message: "table is empty"}}
	}

	r := csv.NewReader(strings.NewReader(text))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1 // row length is validated per-row below

	header, err := r.Read()
	if err != nil {
		return nil, []domain.FieldError{{Location: table + ":1", Message: "cannot read header row: " + err.Error()}}
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	if !equalHeaders(header, headers) {
		return nil, []domain.FieldError{{
			Location: table + ":1",
			Message:  fmt.Sprintf("header must be %q, got %q", strings.Join(headers, ","), strings.Join(header, ",")),
		}}
	}

	var rows []row
	var errs []domain.FieldError
	num := 1
	for {
		num++
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("%s:%d", table, num),
				Message:  "malformed row: " + err.Error(),
			})
			continue
		}
		if len(record) != len(headers) {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("%s:%d", table, num),
				Message:  fmt.Sprintf("expected %d columns, got %d", len(headers), len(record)),
			})
			continue
		}
		cols := make(map[string]string, len(headers))
		for i, h := range headers {
			cols[h] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row{num: num, cols: cols})
	}

	return rows, errs
}

func equalHeaders(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// buildMeta requires the minimal metadata key set and rejects any
// schema-version literal other than the one this pipeline understands.
func buildMeta(rows []row) (map[string]string, []domain.FieldError) {
	var errs []domain.FieldError
	meta := make(map[string]string, len(rows))

	for _, r := range rows {
		key := strings.ToLower(r.cols["key"])
		if key == "" {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("meta:%d:key", r.num),
				Message:  "empty metadata key",
			})
			continue
		}
		if _, dup := meta[key]; dup {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("meta:%d:key", r.num),
				Message:  fmt.Sprintf("duplicate metadata key %q", key),
			})
			continue
		}
		meta[key] = r.cols["value"]
	}

	for _, required := range []string{metaKeySchemaVersion, metaKeyKind, metaKeyVersion} {
		if meta[required] == "" {
			errs = append(errs, domain.FieldError{
				Location: "meta:" + required,
				Message:  fmt.Sprintf("required metadata key %q is missing", required),
			})
		}
	}

	if v := meta[metaKeySchemaVersion]; v != "" && v != domain.SchemaVersionQuestionSet {
		errs = append(errs, domain.FieldError{
			Location: "meta:" + metaKeySchemaVersion,
			Message:  fmt.Sprintf("unsupported schema version %q, this pipeline understands %q", v, domain.SchemaVersionQuestionSet),
		})
	}
	if k := meta[metaKeyKind]; k != "" && k != domain.KindQuestionSet {
		errs = append(errs, domain.FieldError{
			Location: "meta:" + metaKeyKind,
			Message:  fmt.Sprintf("kind must be %q, got %q", domain.KindQuestionSet, k),
		})
	}

	return meta, errs
}

// buildSections parses and sorts sections by their numeric order field
func buildSections(rows []row) ([]domain.Section, map[string]bool, []domain.FieldError) {
	var errs []domain.FieldError
	var sections []domain.Section
	ids := make(map[string]bool, len(rows))

	for _, r := range rows {
		id := r.cols["id"]
		if id == "" {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("sections:%d:id", r.num),
				Message:  "section id is required",
			})
			continue
		}
		if ids[id] {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("sections:%d:id", r.num),
				Message:  fmt.Sprintf("duplicate section id %q", id),
			})
			continue
		}
		ids[id] = true

		order, err := strconv.Atoi(r.cols["order"])
		if err != nil {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("sections:%d:order", r.num),
				Message:  fmt.Sprintf("order must be numeric, got %q", r.cols["order"]),
			})
			continue
		}

		sections = append(sections, domain.Section{
			ID:    id,
			Title: r.cols["title"],
			Order: order,
		})
	}

	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Order < sections[j].Order })
	return sections, ids, errs
}

// buildItems parses items, rejecting references to non-existent sections
// and duplicate ids across the whole set. Returned itemIDs preserve
// (section, order) sort order for assembly.
func buildItems(rows []row, sectionIDs map[string]bool) (map[string]*domain.Item, []string, []domain.FieldError) {
	var errs []domain.FieldError
	items := make(map[string]*domain.Item, len(rows))
	var ordered []*domain.Item

	for _, r := range rows {
		id := r.cols["id"]
		if id == "" {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("items:%d:id", r.num),
				Message:  "item id is required",
			})
			continue
		}
		if _, dup := items[id]; dup {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("items:%d:id", r.num),
				Message:  fmt.Sprintf("duplicate item id %q", id),
			})
			continue
		}

		sectionID := r.cols["section_id"]
		if sectionID == "" || !sectionIDs[sectionID] {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("items:%d:section_id", r.num),
				Message:  fmt.Sprintf("item %q references non-existent section %q", id, sectionID),
			})
			continue
		}

		order, err := strconv.Atoi(r.cols["order"])
		if err != nil {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("items:%d:order", r.num),
				Message:  fmt.Sprintf("order must be numeric, got %q", r.cols["order"]),
			})
			continue
		}

		item := &domain.Item{
			ID:        id,
			SectionID: sectionID,
			Text:      r.cols["text"],
			Order:     order,
		}
		items[id] = item
		ordered = append(ordered, item)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SectionID != ordered[j].SectionID {
			return ordered[i].SectionID < ordered[j].SectionID
		}
		return ordered[i].Order < ordered[j].Order
	})
	ids := make([]string, len(ordered))
	for i, it := range ordered {
		ids[i] = it.ID
	}

	return items, ids, errs
}

// attachOptions groups options by owning item and enforces the
// exactly-four / values-{0,1,2,3}-exactly-once invariant before the
// document ever reaches the generic validator, with table/row/column
// precise errors.
func attachOptions(rows []row, items map[string]*domain.Item, itemIDs []string) []domain.FieldError {
	var errs []domain.FieldError

	for _, r := range rows {
		itemID := r.cols["item_id"]
		item, ok := items[itemID]
		if !ok {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("options:%d:item_id", r.num),
				Message:  fmt.Sprintf("option references non-existent item %q", itemID),
			})
			continue
		}

		value, err := strconv.Atoi(r.cols["value"])
		if err != nil {
			errs = append(errs, domain.FieldError{
				Location: fmt.Sprintf("options:%d:value", r.num),
				Message:  fmt.Sprintf("value must be an integer, got %q", r.cols["value"]),
			})
			continue
		}

		item.Options = append(item.Options, domain.AnswerOption{
			Label: r.cols["label"],
			Value: value,
		})
	}

	for _, id := range itemIDs {
		errs = append(errs, validateOptions(id, items[id].Options)...)
	}

	return errs
}
