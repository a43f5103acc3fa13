package bible

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultSearchLimit caps search results when no limit is given.
const DefaultSearchLimit = 100

// SearchOptions controls a linear text search.
type SearchOptions struct {
	CaseSensitive bool
	WholeWord     bool
	Limit         int // 0 means DefaultSearchLimit
}

// Search scans every verse in document order and returns those containing
// term. It stops as soon as Limit matches have been collected.
func (d Document) Search(term string, opts SearchOptions) ([]Verse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("empty search term")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	match, err := matcher(term, opts)
	if err != nil {
		return nil, err
	}

	results := []Verse{}
	for _, book := range d {
		for ci, ch := range book.Chapters {
			for vi, text := range ch {
				if !match(text) {
					continue
				}
				results = append(results, Verse{Book: book.Name, Chapter: ci + 1, Verse: vi + 1, Text: text})
				if len(results) >= limit {
					return results, nil
				}
			}
		}
	}
	return results, nil
}

func matcher(term string, opts SearchOptions) (func(string) bool, error) {
	if opts.WholeWord {
		pattern := `\b` + regexp.QuoteMeta(term) + `\b`
		if !opts.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling search pattern: %w", err)
		}
		return re.MatchString, nil
	}

	if opts.CaseSensitive {
		return func(s string) bool { return strings.Contains(s, term) }, nil
	}
	// The matcher reuses one Caser, so it must not be called concurrently.
	fold := cases.Fold()
	needle := fold.String(term)
	return func(s string) bool { return strings.Contains(fold.String(s), needle) }, nil
}
