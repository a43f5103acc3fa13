package main

import (
	"fmt"

	"github.com/bos-app/kjv/internal/bible"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
}

var nextCmd = &cobra.Command{
	Use:   "next <book> <chapter>",
	Short: "Print the chapter that follows",
	Long: `Print the position of the chapter after the given one, moving into the
next book after a book's last chapter.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNav(args, true)
	},
}

var prevCmd = &cobra.Command{
	Use:   "prev <book> <chapter>",
	Short: "Print the chapter that precedes",
	Long: `Print the position of the chapter before the given one, moving to the
previous book's last chapter from a book's first chapter.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNav(args, false)
	},
}

// NavResponse is the response for next and prev.
type NavResponse struct {
	From     bible.Position  `json:"from"`
	Position *bible.Position `json:"position"`
	Verses   int             `json:"verses,omitempty"`
}

func runNav(args []string, forward bool) error {
	chapter := mustParsePositive("chapter", args[1])

	doc := mustLoadDocument()
	book := mustFindBook(doc, args[0])
	if _, err := book.Chapter(chapter); err != nil {
		if msg, ok := rangeDiagnostic(err); ok {
			printDiagnostic(msg)
			return nil
		}
		exitWithError(ExitError, "%v", err)
	}

	from := bible.Position{Book: book.Name, Chapter: chapter}
	var (
		pos bible.Position
		ok  bool
	)
	if forward {
		pos, ok = doc.Next(from)
	} else {
		pos, ok = doc.Previous(from)
	}

	if jsonOutput {
		resp := NavResponse{From: from}
		if ok {
			resp.Position = &pos
			if target, err := doc.Book(pos.Book); err == nil {
				resp.Verses = target.VerseCount(pos.Chapter)
			}
		}
		return outputJSON(resp)
	}
	if !ok {
		edge := "last"
		if !forward {
			edge = "first"
		}
		fmt.Printf("%s is the %s chapter\n", from, edge)
		return nil
	}
	fmt.Println(pos)
	return nil
}
