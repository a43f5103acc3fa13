// Package bible defines the scripture document model and the lookups run against it.
package bible

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrBookNotFound is returned when no book matches a name or abbreviation.
var ErrBookNotFound = errors.New("book not found")

// Document is the whole text: books in canonical order.
type Document []Book

// Book is a named unit of the document with a short abbreviation.
type Book struct {
	Name     string    `json:"name"`
	Abbrev   string    `json:"abbrev"`
	Chapters []Chapter `json:"chapters"`
}

// Chapter holds verse texts. Verse N is stored at index N-1.
type Chapter []string

// Verse is a single addressed verse. Chapter and Verse are one-indexed.
type Verse struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// String renders the verse as "<Book> <chapter>:<verse> <text>".
func (v Verse) String() string {
	return fmt.Sprintf("%s %d:%d %s", v.Book, v.Chapter, v.Verse, v.Text)
}

// Summary is the name/abbreviation/chapter-count view of a book.
type Summary struct {
	Name     string `json:"name"`
	Abbrev   string `json:"abbrev"`
	Chapters int    `json:"chapters"`
}

// String renders the summary as "Name (abbrev): N chapters".
func (s Summary) String() string {
	return fmt.Sprintf("%s (%s): %d chapters", s.Name, s.Abbrev, s.Chapters)
}

// ChapterRangeError reports a chapter number the book does not have.
type ChapterRangeError struct {
	Book      string
	Requested int
	Available int
}

func (e *ChapterRangeError) Error() string {
	return fmt.Sprintf("%s only has %d chapters", e.Book, e.Available)
}

// VerseRangeError reports a verse number the chapter does not have.
type VerseRangeError struct {
	Book      string
	Chapter   int
	Requested int
	Available int
}

func (e *VerseRangeError) Error() string {
	return fmt.Sprintf("%s %d only has %d verses", e.Book, e.Chapter, e.Available)
}

// foldString case-folds s with a fresh Caser, so it is safe to call from
// any goroutine.
func foldString(s string) string {
	return cases.Fold().String(s)
}

// Summary returns the book's listing view.
func (b *Book) Summary() Summary {
	return Summary{Name: b.Name, Abbrev: b.Abbrev, Chapters: b.ChapterCount()}
}

// ChapterCount returns the number of chapters in the book.
func (b *Book) ChapterCount() int {
	return len(b.Chapters)
}

// Chapter returns chapter n (one-indexed).
func (b *Book) Chapter(n int) (Chapter, error) {
	if n < 1 || n > len(b.Chapters) {
		return nil, &ChapterRangeError{Book: b.Name, Requested: n, Available: len(b.Chapters)}
	}
	return b.Chapters[n-1], nil
}

// VerseCount returns the number of verses in chapter n, or 0 if the chapter does not exist.
func (b *Book) VerseCount(n int) int {
	ch, err := b.Chapter(n)
	if err != nil {
		return 0
	}
	return len(ch)
}

// Verse indexes a single verse by one-indexed chapter and verse numbers.
func (b *Book) Verse(chapter, verse int) (Verse, error) {
	ch, err := b.Chapter(chapter)
	if err != nil {
		return Verse{}, err
	}
	if verse < 1 || verse > len(ch) {
		return Verse{}, &VerseRangeError{Book: b.Name, Chapter: chapter, Requested: verse, Available: len(ch)}
	}
	return Verse{Book: b.Name, Chapter: chapter, Verse: verse, Text: ch[verse-1]}, nil
}

// VerseRange returns up to max verses of a chapter starting at verse from.
// A max of zero or less returns the rest of the chapter. The result never
// holds more verses than the chapter has.
func (b *Book) VerseRange(chapter, from, max int) ([]Verse, error) {
	ch, err := b.Chapter(chapter)
	if err != nil {
		return nil, err
	}
	if from < 1 {
		from = 1
	}
	if from > len(ch) {
		if len(ch) == 0 {
			return []Verse{}, nil
		}
		return nil, &VerseRangeError{Book: b.Name, Chapter: chapter, Requested: from, Available: len(ch)}
	}

	end := len(ch)
	if max > 0 && max < end-(from-1) {
		end = from - 1 + max
	}

	verses := make([]Verse, 0, end-from+1)
	for i := from - 1; i < end; i++ {
		verses = append(verses, Verse{Book: b.Name, Chapter: chapter, Verse: i + 1, Text: ch[i]})
	}
	return verses, nil
}

// FirstN returns the first n books in document order.
func (d Document) FirstN(n int) []Book {
	if n <= 0 {
		return []Book{}
	}
	if n > len(d) {
		n = len(d)
	}
	return d[:n]
}

// Summaries returns the listing view of each book.
func Summaries(books []Book) []Summary {
	out := make([]Summary, len(books))
	for i := range books {
		out[i] = books[i].Summary()
	}
	return out
}

// FindByAbbrev returns the book whose abbreviation equals abbrev exactly.
func (d Document) FindByAbbrev(abbrev string) (*Book, bool) {
	for i := range d {
		if d[i].Abbrev == abbrev {
			return &d[i], true
		}
	}
	return nil, false
}

// FindByNameSubstring returns books whose name contains substr, ignoring
// case, skipping names that start with any of excludePrefixes.
func (d Document) FindByNameSubstring(substr string, excludePrefixes []string) []Book {
	needle := foldString(substr)
	prefixes := make([]string, 0, len(excludePrefixes))
	for _, p := range excludePrefixes {
		if p != "" {
			prefixes = append(prefixes, foldString(p))
		}
	}

	var found []Book
	for _, book := range d {
		name := foldString(book.Name)
		if !strings.Contains(name, needle) {
			continue
		}
		if hasAnyPrefix(name, prefixes) {
			continue
		}
		found = append(found, book)
	}
	return found
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Book looks a book up by name or abbreviation, ignoring case and
// surrounding whitespace.
func (d Document) Book(nameOrAbbrev string) (*Book, error) {
	i := d.indexOf(nameOrAbbrev)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrBookNotFound, strings.TrimSpace(nameOrAbbrev))
	}
	return &d[i], nil
}

// indexOf compares with spaces removed so "1John" and "1 jo" find the
// same book as "1 John" and "1jo".
func (d Document) indexOf(nameOrAbbrev string) int {
	key := compactKey(nameOrAbbrev)
	if key == "" {
		return -1
	}
	for i := range d {
		if compactKey(d[i].Name) == key || compactKey(d[i].Abbrev) == key {
			return i
		}
	}
	return -1
}

func compactKey(s string) string {
	return strings.Join(strings.Fields(foldString(s)), "")
}

// VerseTotal returns the number of verses in the document.
func (d Document) VerseTotal() int {
	total := 0
	for _, b := range d {
		for _, ch := range b.Chapters {
			total += len(ch)
		}
	}
	return total
}
