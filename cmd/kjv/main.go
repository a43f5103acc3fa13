// Package main provides the kjv CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bos-app/kjv/internal/bible"
	"github.com/bos-app/kjv/internal/config"
	"github.com/bos-app/kjv/internal/logging"
	"github.com/bos-app/kjv/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// dataFlag overrides the document path
	dataFlag string
	// jsonOutput switches results to JSON
	jsonOutput bool
	// logLevel overrides KJV_LOG_LEVEL
	logLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kjv",
	Short: "Look up books, chapters and verses in a KJV JSON document",
	Long: `kjv reads a scripture document (a JSON array of books, each with a
name, an abbreviation and chapters of verse strings) and prints lookups.

The document is read fresh on every run. Its path comes from --data,
then KJV_DATA (a .env file in the working directory is honoured), then
data_path in ~/.config/kjv/config.yml, then ./bos-app/src/data/kjv-bible.json.

Results are printed as plain lines; pass --json for machine output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv()
		opts := logging.FromEnv()
		if logLevel != "" {
			opts.Level = logLevel
		}
		logging.Init(opts, os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "Path to the scripture document (.json or .json.xz)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
	rootCmd.Version = Version
}

// mustResolveDataPath resolves the document path, exits on error.
func mustResolveDataPath() string {
	path, source, err := config.ResolveDataPath(dataFlag)
	if err != nil {
		exitWithError(ExitConfigError, "resolving document path: %v", err)
	}
	logging.L().Debug("resolved document path", "path", path, "source", string(source))
	return path
}

// mustLoadDocument reads the document for this run, exits on error.
func mustLoadDocument() bible.Document {
	path := mustResolveDataPath()
	doc, err := storage.LoadDocument(path)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	return doc
}

// mustFindBook looks a book up by name or abbreviation, exits if missing.
func mustFindBook(doc bible.Document, nameOrAbbrev string) *bible.Book {
	book, err := doc.Book(nameOrAbbrev)
	if err != nil {
		exitWithError(ExitNotFound, "%v", err)
	}
	return book
}

// mustResolveIndexPath resolves the search index path, exits on error.
func mustResolveIndexPath() string {
	path, err := config.ResolveIndexPath()
	if err != nil {
		exitWithError(ExitConfigError, "resolving index path: %v", err)
	}
	return path
}

// exitCodeFor maps an error to the exit code it should produce.
func exitCodeFor(err error) int {
	var chErr *bible.ChapterRangeError
	var vErr *bible.VerseRangeError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, storage.ErrMalformedDocument):
		return ExitDataError
	case errors.Is(err, bible.ErrBookNotFound),
		errors.As(err, &chErr),
		errors.As(err, &vErr):
		return ExitNotFound
	case errors.Is(err, storage.ErrIndexNotFound):
		return ExitIndexError
	default:
		return ExitError
	}
}
