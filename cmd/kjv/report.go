package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bos-app/kjv/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [name]",
	Short: "Run a preset lookup",
	Long: `Run one of the preset lookups against the document.

With no name, list the presets.

Presets:
  books        count the books and list the first ten
  nt           look up mt mk lk jn ac rm rv by abbreviation
  find-john    find John by name, skipping 1-3 John
  deut-29-29   print Deuteronomy 29:29
  exodus-20    print Exodus 20 with a heading
  john-8       print the first twelve verses of John 8`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

// ReportInfo describes a preset in the listing.
type ReportInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ReportResult is the JSON response for a preset run.
type ReportResult struct {
	Report string   `json:"report"`
	Lines  []string `json:"lines"`
}

func runReport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		listReports()
		return nil
	}
	name := args[0]

	doc := mustLoadDocument()

	var buf bytes.Buffer
	err := report.Run(&buf, doc, name)
	switch {
	case errors.Is(err, report.ErrUnknownReport):
		exitWithError(ExitError, "unknown report %q (available: %s)", name, strings.Join(report.Names(), ", "))
	case errors.Is(err, report.ErrTargetMissing):
		exitWithError(ExitNotFound, "%v", err)
	case err != nil:
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if jsonOutput {
		return outputJSON(ReportResult{Report: name, Lines: splitLines(buf.String())})
	}
	_, err = buf.WriteTo(os.Stdout)
	return err
}

func listReports() {
	all := report.All()
	if jsonOutput {
		infos := make([]ReportInfo, len(all))
		for i, r := range all {
			infos[i] = ReportInfo{Name: r.Name, Description: r.Description}
		}
		outputJSON(infos)
		return
	}
	for _, r := range all {
		fmt.Printf("%-12s %s\n", r.Name, r.Description)
	}
}
