package domain

import "fmt"

// FieldError locates one validation failure inside a submitted document
// or tabular import. Location is a dotted path ("items[Q1].options") or
// a table coordinate ("options:4:value").
type FieldError struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}
