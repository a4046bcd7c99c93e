package domain

// SchemaVersionQuestionSet is the one structural contract this codebase
// understands for question sets. The ingestion pipeline hard-rejects any
// other literal; bumping it is a code change.
const SchemaVersionQuestionSet = "questionset.v1"

// OptionValues are the answer values every item must carry exactly once
var OptionValues = [4]int{0, 1, 2, 3}

// QuestionSetDocument is the structured form of an assessment question
// set: ordered sections, each owning an ordered run of items, each item
// carrying exactly four answer options valued 0..3.
type QuestionSetDocument struct {
	SchemaVersion string    `json:"schema_version" yaml:"schema_version"`
	Version       string    `json:"version" yaml:"version"`
	Locale        string    `json:"locale,omitempty" yaml:"locale,omitempty"`
	Sections      []Section `json:"sections" yaml:"sections"`
	Items         []Item    `json:"items" yaml:"items"`
}

// Section groups items under a title. ItemIDs is derived during
// normalization from the items' declared owners and orders.
type Section struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Order   int      `json:"order" yaml:"order"`
	ItemIDs []string `json:"item_ids,omitempty" yaml:"item_ids,omitempty"`
}

// Item is one assessment question
type Item struct {
	ID        string         `json:"id" yaml:"id"`
	SectionID string         `json:"section_id" yaml:"section_id"`
	Text      string         `json:"text" yaml:"text"`
	Order     int            `json:"order" yaml:"order"`
	Options   []AnswerOption `json:"options" yaml:"options"`
}

// AnswerOption is one of the four choices for an item
type AnswerOption struct {
	Label string `json:"label" yaml:"label"`
	Value int    `json:"value" yaml:"value"`
}
