package main

import (
	"fmt"

	"github.com/bos-app/kjv/internal/bible"
	"github.com/bos-app/kjv/internal/report"
	"github.com/spf13/cobra"
)

var (
	booksLimit  int
	findExclude []string
)

func init() {
	booksCmd.Flags().IntVar(&booksLimit, "limit", report.ListLimit, "Number of books to list")
	findCmd.Flags().StringArrayVar(&findExclude, "exclude-prefix", nil, "Skip names starting with this prefix (repeatable)")
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(findCmd)
}

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Count the books and list the first few",
	Args:  cobra.NoArgs,
	RunE:  runBooks,
}

// BooksResponse is the response for the books command.
type BooksResponse struct {
	Total int             `json:"total"`
	Books []bible.Summary `json:"books"`
}

func runBooks(cmd *cobra.Command, args []string) error {
	doc := mustLoadDocument()
	books := doc.FirstN(booksLimit)

	if jsonOutput {
		return outputJSON(BooksResponse{Total: len(doc), Books: bible.Summaries(books)})
	}
	fmt.Printf("Number of books in the Bible data: %d\n", len(doc))
	for i := range books {
		fmt.Println(books[i].Summary())
	}
	return nil
}

var bookCmd = &cobra.Command{
	Use:   "book <abbrev>...",
	Short: "Look books up by exact abbreviation",
	Long: `Look books up by exact, case-sensitive abbreviation.

A missing abbreviation prints a not-found line and does not fail the run.

Examples:
  kjv book mt mk lk jn`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBook,
}

// BookLookup is one abbreviation lookup in the book command's response.
type BookLookup struct {
	Abbrev string         `json:"abbrev"`
	Found  bool           `json:"found"`
	Book   *bible.Summary `json:"book,omitempty"`
}

func runBook(cmd *cobra.Command, args []string) error {
	doc := mustLoadDocument()

	lookups := make([]BookLookup, 0, len(args))
	for _, abbrev := range args {
		lookup := BookLookup{Abbrev: abbrev}
		if book, ok := doc.FindByAbbrev(abbrev); ok {
			s := book.Summary()
			lookup.Found = true
			lookup.Book = &s
		}
		lookups = append(lookups, lookup)
	}

	if jsonOutput {
		return outputJSON(lookups)
	}
	for _, l := range lookups {
		if l.Found {
			fmt.Println(l.Book)
		} else {
			fmt.Printf("Book with abbreviation '%s' not found\n", l.Abbrev)
		}
	}
	return nil
}

var findCmd = &cobra.Command{
	Use:   "find <substring>",
	Short: "Find books whose name contains a substring",
	Long: `Find books whose name contains a substring, ignoring case.

Names starting with any --exclude-prefix are skipped.

Examples:
  kjv find john --exclude-prefix 1 --exclude-prefix 2 --exclude-prefix 3`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	doc := mustLoadDocument()
	books := doc.FindByNameSubstring(args[0], findExclude)

	if jsonOutput {
		return outputJSON(bible.Summaries(books))
	}
	for i := range books {
		fmt.Printf("Found: %s\n", books[i].Summary())
	}
	return nil
}
