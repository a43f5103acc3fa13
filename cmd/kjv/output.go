package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bos-app/kjv/internal/bible"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (text or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if jsonOutput {
		outputJSON(ErrorResponse{Error: msg})
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DiagnosticResponse carries a lookup miss that is not an error, such as
// a chapter the book does not have.
type DiagnosticResponse struct {
	Diagnostic string `json:"diagnostic"`
}

// VersesResponse is the response for commands that print verses.
type VersesResponse struct {
	Reference string        `json:"reference,omitempty"`
	Count     int           `json:"count"`
	Verses    []bible.Verse `json:"verses"`
}

// printVerses prints verses one per line, or as a VersesResponse.
func printVerses(label string, verses []bible.Verse) {
	if jsonOutput {
		outputJSON(VersesResponse{Reference: label, Count: len(verses), Verses: verses})
		return
	}
	for _, v := range verses {
		fmt.Println(v.String())
	}
}

// printDiagnostic prints a lookup-miss message on stdout.
func printDiagnostic(msg string) {
	if jsonOutput {
		outputJSON(DiagnosticResponse{Diagnostic: msg})
		return
	}
	fmt.Println(msg)
}

// parsePositive parses a one-indexed number argument.
func parsePositive(name, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s must be at least 1, got %d", name, n)
	}
	return n, nil
}

// mustParsePositive parses a one-indexed number argument, exits on error.
func mustParsePositive(name, s string) int {
	n, err := parsePositive(name, s)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return n
}

// splitLines splits captured text output into lines, dropping the final
// newline.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
