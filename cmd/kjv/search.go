package main

import (
	"github.com/bos-app/kjv/internal/bible"
	"github.com/bos-app/kjv/internal/config"
	"github.com/bos-app/kjv/internal/logging"
	"github.com/bos-app/kjv/internal/storage"
	"github.com/spf13/cobra"
)

var (
	searchCaseSensitive bool
	searchWholeWord     bool
	searchLimit         int
	searchUseIndex      bool
)

func init() {
	searchCmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "Match case exactly")
	searchCmd.Flags().BoolVar(&searchWholeWord, "whole-word", false, "Match whole words only")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum results (default search_limit from config, else 100)")
	searchCmd.Flags().BoolVar(&searchUseIndex, "index", false, "Query the SQLite full-text index instead of scanning")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search verse text",
	Long: `Search verse text and print matches in document order.

By default every verse is scanned, case-insensitively, for the term as a
substring. --whole-word requires word boundaries around it.

With --index the prebuilt full-text index is queried instead (see
'kjv index build'). The index matches whole tokens without regard to case
and fails if it was built from a different document.

Examples:
  kjv search "living water"
  kjv search Lord --case-sensitive --whole-word --limit 20
  kjv search beginning --index`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := args[0]
	limit := mustSearchLimit()

	var (
		verses []bible.Verse
		err    error
	)
	if searchUseIndex {
		if searchCaseSensitive || searchWholeWord {
			exitWithError(ExitError, "--case-sensitive and --whole-word cannot be used with --index")
		}
		verses, err = searchIndex(term, limit)
	} else {
		doc := mustLoadDocument()
		verses, err = doc.Search(term, bible.SearchOptions{
			CaseSensitive: searchCaseSensitive,
			WholeWord:     searchWholeWord,
			Limit:         limit,
		})
	}
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	logging.L().Debug("search complete", "term", term, "results", len(verses), "index", searchUseIndex)
	printVerses("", verses)
	return nil
}

// mustSearchLimit picks the result limit: --limit, then search_limit from
// the global config, then the default.
func mustSearchLimit() int {
	if searchLimit < 0 {
		exitWithError(ExitError, "--limit must not be negative, got %d", searchLimit)
	}
	if searchLimit > 0 {
		return searchLimit
	}
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if cfg.SearchLimit > 0 {
		return cfg.SearchLimit
	}
	return bible.DefaultSearchLimit
}

// searchIndex queries the full-text index.
func searchIndex(term string, limit int) ([]bible.Verse, error) {
	db := mustOpenFreshIndex()
	defer db.Close()
	return db.Search(term, limit)
}

// mustOpenFreshIndex opens the search index and exits unless it was built
// from the current document.
func mustOpenFreshIndex() *storage.DB {
	db := mustOpenIndex()

	dataPath := mustResolveDataPath()
	fp, err := storage.Fingerprint(dataPath)
	if err != nil {
		db.Close()
		exitWithError(ExitError, "fingerprinting document: %v", err)
	}
	stale, err := db.IsStale(fp)
	if err != nil {
		db.Close()
		exitWithError(ExitError, "checking index: %v", err)
	}
	if stale {
		db.Close()
		exitWithError(ExitIndexError, "search index is stale for %s\n\nRun 'kjv index build' to rebuild it.", dataPath)
	}
	return db
}
