// Package schema validates the shape of a scripture document.
//
// Lookups never validate; this is what `kjv check` runs.
package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bos-app/kjv/internal/bible"
	gojsonschema "github.com/xeipuuv/gojsonschema"
)

//go:embed document.schema.json
var documentSchema []byte

// Issue is a single problem found in a document.
type Issue struct {
	Type    string   `json:"type"`
	Field   string   `json:"field,omitempty"`
	Abbrev  string   `json:"abbrev,omitempty"`
	Books   []string `json:"books,omitempty"`
	Message string   `json:"message"`
}

// Issue types.
const (
	IssueSchema          = "schema"
	IssueDuplicateAbbrev = "duplicate_abbrev"
	IssueEmptyChapter    = "empty_chapter"
)

// ErrInvalidJSON is returned by Validate when data is not exactly one JSON value.
var ErrInvalidJSON = errors.New("document is not valid JSON")

// Validate checks raw document bytes against the document JSON Schema.
// The returned error is non-nil only when validation could not run.
func Validate(data []byte) ([]Issue, error) {
	// gojsonschema stops after the first value, so trailing data is caught here.
	if !json.Valid(data) {
		return nil, ErrInvalidJSON
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(documentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validating document: %w", err)
	}

	issues := []Issue{}
	for _, e := range result.Errors() {
		issues = append(issues, Issue{
			Type:    IssueSchema,
			Field:   e.Field(),
			Message: e.Description(),
		})
	}
	return issues, nil
}

// Duplicates reports abbreviations shared by more than one book.
func Duplicates(doc bible.Document) []Issue {
	byAbbrev := make(map[string][]string)
	var order []string
	for _, b := range doc {
		if _, seen := byAbbrev[b.Abbrev]; !seen {
			order = append(order, b.Abbrev)
		}
		byAbbrev[b.Abbrev] = append(byAbbrev[b.Abbrev], b.Name)
	}

	issues := []Issue{}
	for _, abbrev := range order {
		names := byAbbrev[abbrev]
		if len(names) > 1 {
			issues = append(issues, Issue{
				Type:    IssueDuplicateAbbrev,
				Abbrev:  abbrev,
				Books:   names,
				Message: fmt.Sprintf("abbreviation %q is used by %d books", abbrev, len(names)),
			})
		}
	}
	return issues
}

// EmptyChapters reports chapters with no verses.
func EmptyChapters(doc bible.Document) []Issue {
	issues := []Issue{}
	for _, b := range doc {
		for i, ch := range b.Chapters {
			if len(ch) == 0 {
				issues = append(issues, Issue{
					Type:    IssueEmptyChapter,
					Abbrev:  b.Abbrev,
					Message: fmt.Sprintf("%s %d has no verses", b.Name, i+1),
				})
			}
		}
	}
	return issues
}
