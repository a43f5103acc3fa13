// Package reference parses human-written scripture references such as
// "John 3:16", "1 John 2:1-5" or "Song of Solomon 2".
package reference

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Reference is a parsed chapter, verse or verse-range reference.
type Reference struct {
	// Book is the book name or abbreviation as written, with a numeric
	// prefix separated by a single space ("1 John").
	Book string `json:"book"`

	// Chapter is one-indexed and always set.
	Chapter int `json:"chapter"`

	// Verse is one-indexed, 0 for a whole-chapter reference.
	Verse int `json:"verse,omitempty"`

	// EndVerse closes a verse range, 0 when absent.
	EndVerse int `json:"end_verse,omitempty"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	Prefix  string     `parser:"@Int?"`
	Words   []string   `parser:"@Ident+"`
	Chapter int        `parser:"@Int"`
	Verses  *verseSpan `parser:"( \":\" @@ )?"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type verseSpan struct {
	Verse int  `parser:"@Int"`
	End   *int `parser:"( \"-\" @Int )?"`
}

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a reference of the form "<book> <chapter>[:<verse>[-<end>]]".
func Parse(s string) (Reference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Reference{}, fmt.Errorf("empty reference")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return Reference{}, fmt.Errorf("invalid reference %q: %w", s, err)
	}

	book := strings.Join(parsed.Words, " ")
	if parsed.Prefix != "" {
		book = parsed.Prefix + " " + book
	}

	ref := Reference{Book: book, Chapter: parsed.Chapter}
	if ref.Chapter < 1 {
		return Reference{}, fmt.Errorf("invalid reference %q: chapter must be at least 1", s)
	}

	if parsed.Verses != nil {
		ref.Verse = parsed.Verses.Verse
		if ref.Verse < 1 {
			return Reference{}, fmt.Errorf("invalid reference %q: verse must be at least 1", s)
		}
		if parsed.Verses.End != nil {
			ref.EndVerse = *parsed.Verses.End
		}
	}

	return ref, nil
}

// String renders the reference as "Book C", "Book C:V" or "Book C:V-E".
func (r Reference) String() string {
	var sb strings.Builder
	sb.WriteString(r.Book)
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(r.Chapter))
	if r.Verse > 0 {
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(r.Verse))
		if r.EndVerse > 0 {
			sb.WriteString("-")
			sb.WriteString(strconv.Itoa(r.EndVerse))
		}
	}
	return sb.String()
}

// IsRange reports whether the reference spans more than one verse.
func (r Reference) IsRange() bool {
	return r.Verse > 0 && r.EndVerse > r.Verse
}
