package main

import (
	"fmt"
	"os"

	"github.com/bos-app/kjv/internal/schema"
	"github.com/bos-app/kjv/internal/storage"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the document",
	Long: `Validate the document against its JSON Schema, then check that every
abbreviation is unique and every chapter has verses.

Exits with status 3 when any issue is found.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status string         `json:"status"`
	Path   string         `json:"path"`
	Books  int            `json:"books"`
	Verses int            `json:"verses"`
	Issues []schema.Issue `json:"issues"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := mustResolveDataPath()

	raw, err := storage.ReadRaw(path)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	issues, err := schema.Validate(raw)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	result := CheckResult{Status: "ok", Path: path, Issues: issues}

	// Structural checks only make sense on a document that decodes.
	if len(issues) == 0 {
		doc, err := storage.LoadDocument(path)
		if err != nil {
			exitWithError(exitCodeFor(err), "%v", err)
		}
		result.Books = len(doc)
		result.Verses = doc.VerseTotal()
		result.Issues = append(result.Issues, schema.Duplicates(doc)...)
		result.Issues = append(result.Issues, schema.EmptyChapters(doc)...)
	}
	if len(result.Issues) > 0 {
		result.Status = "issues"
	}

	if jsonOutput {
		outputJSON(result)
	} else {
		printCheckHuman(result)
	}

	if len(result.Issues) > 0 {
		os.Exit(ExitDataError)
	}
	return nil
}

func printCheckHuman(r CheckResult) {
	if len(r.Issues) == 0 {
		fmt.Printf("%s: %s books, %s verses, no issues\n",
			r.Path, humanize.Comma(int64(r.Books)), humanize.Comma(int64(r.Verses)))
		return
	}
	fmt.Printf("%s: %d issue(s)\n", r.Path, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.Field != "" {
			fmt.Printf("  [%s] %s: %s\n", issue.Type, issue.Field, issue.Message)
		} else {
			fmt.Printf("  [%s] %s\n", issue.Type, issue.Message)
		}
	}
}
