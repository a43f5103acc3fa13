// Package report holds the fixed lookup reports: each one loads nothing
// itself, runs a hard-coded lookup against a document and prints plain
// text lines.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/bos-app/kjv/internal/bible"
)

var (
	// ErrUnknownReport is returned by Run for a name with no report.
	ErrUnknownReport = errors.New("unknown report")

	// ErrTargetMissing is returned when a report's hard-coded book is absent
	// or too short to index. Reports that guard their lookups print a
	// diagnostic instead.
	ErrTargetMissing = errors.New("report target not found")
)

// Report is a named fixed lookup.
type Report struct {
	Name        string
	Description string
	Run         func(w io.Writer, doc bible.Document) error
}

// Hard-coded lookup targets.
const (
	ListLimit = 10

	DeutAbbrev  = "dt"
	DeutChapter = 29
	DeutVerse   = 29

	ExodusAbbrev  = "ex"
	ExodusChapter = 20

	JohnAbbrev    = "jo"
	JohnChapter   = 8
	JohnVerseCap  = 12
	JohnSubstring = "john"
)

// NewTestamentAbbrevs are the abbreviations checked by the "nt" report.
var NewTestamentAbbrevs = []string{"mt", "mk", "lk", "jn", "ac", "rm", "rv"}

// JohnExcludePrefixes separate John from 1, 2 and 3 John.
var JohnExcludePrefixes = []string{"1", "2", "3"}

var reports = []Report{
	{Name: "books", Description: "Count books and list the first ten", Run: Books},
	{Name: "nt", Description: "Look up New Testament books by abbreviation", Run: NewTestament},
	{Name: "find-john", Description: "Find the Gospel of John by name", Run: FindJohn},
	{Name: "deut-29-29", Description: "Print Deuteronomy 29:29", Run: Deut2929},
	{Name: "exodus-20", Description: "Print Exodus 20 in full", Run: Exodus20},
	{Name: "john-8", Description: "Print John 8:1-12", Run: John8},
}

// All returns every report in display order.
func All() []Report {
	out := make([]Report, len(reports))
	copy(out, reports)
	return out
}

// Names returns report names in display order.
func Names() []string {
	names := make([]string, len(reports))
	for i, r := range reports {
		names[i] = r.Name
	}
	return names
}

// Run executes the named report against doc.
func Run(w io.Writer, doc bible.Document, name string) error {
	for _, r := range reports {
		if r.Name == name {
			return r.Run(w, doc)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownReport, name)
}

// Books prints the book count and the first ten books.
func Books(w io.Writer, doc bible.Document) error {
	if _, err := fmt.Fprintf(w, "Number of books in the Bible data: %d\n", len(doc)); err != nil {
		return err
	}
	return writeSummaries(w, "", doc.FirstN(ListLimit))
}

// NewTestament looks up each of NewTestamentAbbrevs, reporting misses.
func NewTestament(w io.Writer, doc bible.Document) error {
	for _, abbrev := range NewTestamentAbbrevs {
		line := fmt.Sprintf("Book with abbreviation '%s' not found", abbrev)
		if book, ok := doc.FindByAbbrev(abbrev); ok {
			line = book.Summary().String()
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FindJohn prints every book whose name contains "john" apart from the
// numbered epistles.
func FindJohn(w io.Writer, doc bible.Document) error {
	return writeSummaries(w, "Found: ", doc.FindByNameSubstring(JohnSubstring, JohnExcludePrefixes))
}

// Deut2929 prints Deuteronomy 29:29, or how many chapters/verses exist
// when the book is too short.
func Deut2929(w io.Writer, doc bible.Document) error {
	book, err := target(doc, DeutAbbrev)
	if err != nil {
		return err
	}

	line, err := guardedLine(book.Verse(DeutChapter, DeutVerse))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, line)
	return err
}

// Exodus20 prints a header and every verse of Exodus 20.
func Exodus20(w io.Writer, doc bible.Document) error {
	book, err := target(doc, ExodusAbbrev)
	if err != nil {
		return err
	}

	verses, err := book.VerseRange(ExodusChapter, 1, 0)
	var rangeErr *bible.ChapterRangeError
	if errors.As(err, &rangeErr) {
		_, err = fmt.Fprintln(w, rangeErr.Error())
		return err
	}
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s %d (KJV) - The Ten Commandments\n\n", book.Name, ExodusChapter); err != nil {
		return err
	}
	return writeVerses(w, verses)
}

// John8 prints the first twelve verses of John 8. The chapter is not
// guarded: a document without it is an error.
func John8(w io.Writer, doc bible.Document) error {
	book, err := target(doc, JohnAbbrev)
	if err != nil {
		return err
	}

	verses, err := book.VerseRange(JohnChapter, 1, JohnVerseCap)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTargetMissing, err)
	}
	return writeVerses(w, verses)
}

func target(doc bible.Document, abbrev string) (*bible.Book, error) {
	book, ok := doc.FindByAbbrev(abbrev)
	if !ok {
		return nil, fmt.Errorf("%w: no book with abbreviation %q", ErrTargetMissing, abbrev)
	}
	return book, nil
}

// guardedLine turns a verse lookup into its output line, with range
// errors rendered as diagnostics.
func guardedLine(v bible.Verse, err error) (string, error) {
	var chErr *bible.ChapterRangeError
	var vErr *bible.VerseRangeError
	switch {
	case err == nil:
		return v.String(), nil
	case errors.As(err, &chErr):
		return chErr.Error(), nil
	case errors.As(err, &vErr):
		return vErr.Error(), nil
	default:
		return "", err
	}
}

func writeSummaries(w io.Writer, prefix string, books []bible.Book) error {
	for i := range books {
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, books[i].Summary()); err != nil {
			return err
		}
	}
	return nil
}

func writeVerses(w io.Writer, verses []bible.Verse) error {
	for _, v := range verses {
		if _, err := fmt.Fprintln(w, v.String()); err != nil {
			return err
		}
	}
	return nil
}
