package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bos-app/kjv/internal/bible"
	"github.com/bos-app/kjv/internal/reference"
	"github.com/spf13/cobra"
)

var (
	chapterFrom   int
	chapterMax    int
	chapterHeader bool
	verseUseIndex bool
)

func init() {
	verseCmd.Flags().BoolVar(&verseUseIndex, "index", false, "Read the verse from the search index by exact abbreviation")
	chapterCmd.Flags().IntVar(&chapterFrom, "from", 1, "First verse to print")
	chapterCmd.Flags().IntVar(&chapterMax, "max", 0, "Maximum verses to print (0 for the rest of the chapter)")
	chapterCmd.Flags().BoolVar(&chapterHeader, "header", false, "Print a heading line before the verses")
	rootCmd.AddCommand(verseCmd)
	rootCmd.AddCommand(chapterCmd)
	rootCmd.AddCommand(refCmd)
}

var verseCmd = &cobra.Command{
	Use:   "verse <book> <chapter> <verse>",
	Short: "Print a single verse",
	Long: `Print a single verse by book name or abbreviation, chapter and verse.

A chapter or verse the book does not have prints how many exist instead.

With --index the verse is read from the search index (see 'kjv index
build') without loading the document. The book must then be given by its
exact abbreviation, and a missing verse is reported as not found.

Examples:
  kjv verse dt 29 29
  kjv verse "1 John" 4 8
  kjv verse jo 11 35 --index`,
	Args: cobra.ExactArgs(3),
	RunE: runVerse,
}

func runVerse(cmd *cobra.Command, args []string) error {
	chapter := mustParsePositive("chapter", args[1])
	verse := mustParsePositive("verse", args[2])

	if verseUseIndex {
		return runVerseIndexed(args[0], chapter, verse)
	}

	doc := mustLoadDocument()
	book := mustFindBook(doc, args[0])

	v, err := book.Verse(chapter, verse)
	if msg, ok := rangeDiagnostic(err); ok {
		printDiagnostic(msg)
		return nil
	}
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	printVerses(fmt.Sprintf("%s %d:%d", book.Name, chapter, verse), []bible.Verse{v})
	return nil
}

func runVerseIndexed(abbrev string, chapter, verse int) error {
	db := mustOpenFreshIndex()
	defer db.Close()

	v, err := db.GetVerse(abbrev, chapter, verse)
	if err != nil {
		exitWithError(ExitError, "reading index: %v", err)
	}
	if v == nil {
		exitWithError(ExitNotFound, "no indexed verse %s %d:%d", abbrev, chapter, verse)
	}

	printVerses(fmt.Sprintf("%s %d:%d", v.Book, chapter, verse), []bible.Verse{*v})
	return nil
}

var chapterCmd = &cobra.Command{
	Use:   "chapter <book> <chapter>",
	Short: "Print the verses of a chapter",
	Long: `Print the verses of a chapter, optionally starting at --from and
stopping after --max verses.

Examples:
  kjv chapter ex 20 --header
  kjv chapter jo 8 --max 12`,
	Args: cobra.ExactArgs(2),
	RunE: runChapter,
}

func runChapter(cmd *cobra.Command, args []string) error {
	chapter := mustParsePositive("chapter", args[1])
	if chapterFrom < 1 {
		exitWithError(ExitError, "--from must be at least 1, got %d", chapterFrom)
	}

	doc := mustLoadDocument()
	book := mustFindBook(doc, args[0])

	verses, err := book.VerseRange(chapter, chapterFrom, chapterMax)
	if msg, ok := rangeDiagnostic(err); ok {
		printDiagnostic(msg)
		return nil
	}
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if chapterHeader && !jsonOutput {
		fmt.Printf("%s %d (KJV)\n\n", book.Name, chapter)
	}
	printVerses(fmt.Sprintf("%s %d", book.Name, chapter), verses)
	return nil
}

var refCmd = &cobra.Command{
	Use:   "ref <reference>",
	Short: "Print the verses a reference points at",
	Long: `Parse a human reference and print the verses it names.

Accepted forms:
  John 3          whole chapter
  John 3:16       single verse
  John 3:16-18    verse range
  1 John 2:1      numbered books, also written 1John or 1jo

The reference may be quoted or given as separate words.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRef,
}

func runRef(cmd *cobra.Command, args []string) error {
	ref, err := reference.Parse(strings.Join(args, " "))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	doc := mustLoadDocument()
	verses, err := doc.Resolve(ref)
	if msg, ok := rangeDiagnostic(err); ok {
		printDiagnostic(msg)
		return nil
	}
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	printVerses(refLabel(ref), verses)
	return nil
}

// refLabel names what a reference resolved to. A backwards range resolves
// to its first verse only.
func refLabel(ref reference.Reference) string {
	if ref.Verse > 0 && !ref.IsRange() {
		return fmt.Sprintf("%s %d:%d", ref.Book, ref.Chapter, ref.Verse)
	}
	return ref.String()
}

// rangeDiagnostic reports whether err is a chapter or verse range miss,
// returning its message.
func rangeDiagnostic(err error) (string, bool) {
	var chErr *bible.ChapterRangeError
	if errors.As(err, &chErr) {
		return chErr.Error(), true
	}
	var vErr *bible.VerseRangeError
	if errors.As(err, &vErr) {
		return vErr.Error(), true
	}
	return "", false
}
