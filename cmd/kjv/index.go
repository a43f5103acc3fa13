package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bos-app/kjv/internal/storage"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexStatusCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the full-text search index",
	Long: `Commands for building and checking the SQLite full-text index used by
'kjv search --index'.

The index is a disposable cache of the document. It lives at KJV_INDEX,
index_path in the global config, or index.db in the kjv cache directory.`,
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build or rebuild the search index from the document",
	Args:  cobra.NoArgs,
	RunE:  runIndexBuild,
}

// IndexBuildResult is the response for index build.
type IndexBuildResult struct {
	Status          string  `json:"status"`
	Verses          int     `json:"verses"`
	Source          string  `json:"source"`
	Index           string  `json:"index"`
	Fingerprint     string  `json:"fingerprint"`
	DurationSeconds float64 `json:"duration_seconds"`
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()
	dataPath := mustResolveDataPath()
	doc := mustLoadDocument()

	fp, err := storage.Fingerprint(dataPath)
	if err != nil {
		exitWithError(ExitError, "fingerprinting document: %v", err)
	}

	indexPath := mustResolveIndexPath()
	if err := os.MkdirAll(filepath.Dir(indexPath), 0755); err != nil {
		exitWithError(ExitError, "creating index directory: %v", err)
	}

	db, err := storage.OpenDB(indexPath)
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	defer db.Close()

	count, err := db.RebuildFromDocument(doc, fp, dataPath)
	if err != nil {
		exitWithError(ExitError, "building index: %v", err)
	}

	if jsonOutput {
		return outputJSON(IndexBuildResult{
			Status:          "built",
			Verses:          count,
			Source:          dataPath,
			Index:           indexPath,
			Fingerprint:     fp,
			DurationSeconds: time.Since(start).Seconds(),
		})
	}
	fmt.Printf("Indexed %s verses from %s\n", humanize.Comma(int64(count)), dataPath)
	fmt.Printf("  Index: %s\n", indexPath)
	return nil
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the index matches the current document",
	Args:  cobra.NoArgs,
	RunE:  runIndexStatus,
}

// IndexStatusResult is the response for index status.
type IndexStatusResult struct {
	Status  string `json:"status"`
	Index   string `json:"index"`
	Source  string `json:"source"`
	Verses  int    `json:"verses"`
	BuiltAt string `json:"built_at,omitempty"`
}

// Index status values.
const (
	IndexFresh = "fresh"
	IndexStale = "stale"
)

func runIndexStatus(cmd *cobra.Command, args []string) error {
	indexPath := mustResolveIndexPath()
	db := mustOpenIndex()
	defer db.Close()

	dataPath := mustResolveDataPath()
	fp, err := storage.Fingerprint(dataPath)
	if err != nil {
		exitWithError(ExitError, "fingerprinting document: %v", err)
	}

	stale, err := db.IsStale(fp)
	if err != nil {
		exitWithError(ExitError, "checking index: %v", err)
	}
	count, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "counting indexed verses: %v", err)
	}
	builtAt, err := db.Meta(storage.MetaBuiltAt)
	if err != nil {
		exitWithError(ExitError, "reading index metadata: %v", err)
	}

	result := IndexStatusResult{
		Status:  IndexFresh,
		Index:   indexPath,
		Source:  dataPath,
		Verses:  count,
		BuiltAt: builtAt,
	}
	if stale {
		result.Status = IndexStale
	}

	if jsonOutput {
		return outputJSON(result)
	}
	fmt.Printf("Index %s: %s\n", result.Index, result.Status)
	fmt.Printf("  Verses: %s\n", humanize.Comma(int64(result.Verses)))
	if t, err := time.Parse(time.RFC3339, builtAt); err == nil {
		fmt.Printf("  Built:  %s\n", humanize.Time(t))
	}
	if stale {
		fmt.Printf("\nRun 'kjv index build' to rebuild it for %s.\n", dataPath)
	}
	return nil
}

// mustOpenIndex opens the existing search index, exits if it is missing.
func mustOpenIndex() *storage.DB {
	indexPath := mustResolveIndexPath()
	db, err := storage.OpenExistingDB(indexPath)
	if err != nil {
		if errors.Is(err, storage.ErrIndexNotFound) {
			exitWithError(ExitIndexError, "search index not found at %s\n\nRun 'kjv index build' to create it.", indexPath)
		}
		exitWithError(ExitError, "opening index: %v", err)
	}
	return db
}
