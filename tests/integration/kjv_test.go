// Package integration provides integration tests for kjv commands.
package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	kjvBinary     string
	kjvBinaryOnce sync.Once
	kjvBinaryErr  error
)

// getKJVBinary builds the kjv binary once and returns its path.
func getKJVBinary(t *testing.T) string {
	t.Helper()
	kjvBinaryOnce.Do(func() {
		// Get module root directory
		_, filename, _, ok := runtime.Caller(0)
		if !ok {
			kjvBinaryErr = os.ErrInvalid
			return
		}
		moduleRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))

		tmpDir, err := os.MkdirTemp("", "kjv-test-*")
		if err != nil {
			kjvBinaryErr = err
			return
		}
		kjvBinary = filepath.Join(tmpDir, "kjv")

		cmd := exec.Command("go", "build", "-o", kjvBinary, "./cmd/kjv")
		cmd.Dir = moduleRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			kjvBinaryErr = &buildError{output: string(output), err: err}
			return
		}
	})
	if kjvBinaryErr != nil {
		t.Fatalf("failed to build kjv: %v", kjvBinaryErr)
	}
	return kjvBinary
}

type buildError struct {
	output string
	err    error
}

func (e *buildError) Error() string {
	return e.err.Error() + ": " + e.output
}

type fixtureBook struct {
	Abbrev   string     `json:"abbrev"`
	Name     string     `json:"name"`
	Chapters [][]string `json:"chapters"`
}

func fixtureChapters(abbrev string, chapters, verses int) [][]string {
	out := make([][]string, chapters)
	for c := range out {
		out[c] = make([]string, verses)
		for v := range out[c] {
			out[c][v] = fmt.Sprintf("%s %d:%d text", abbrev, c+1, v+1)
		}
	}
	return out
}

// fixtureBooks is a small document shaped like the real one: book order,
// abbreviations and enough chapters for every preset.
func fixtureBooks() []fixtureBook {
	return []fixtureBook{
		{Abbrev: "gn", Name: "Genesis", Chapters: [][]string{
			{"In the beginning God created the heaven and the earth.", "And the earth was without form, and void"},
			{"Thus the heavens and the earth were finished"},
		}},
		{Abbrev: "ex", Name: "Exodus", Chapters: fixtureChapters("ex", 20, 17)},
		{Abbrev: "dt", Name: "Deuteronomy", Chapters: fixtureChapters("dt", 34, 29)},
		{Abbrev: "mt", Name: "Matthew", Chapters: fixtureChapters("mt", 28, 2)},
		{Abbrev: "mk", Name: "Mark", Chapters: fixtureChapters("mk", 16, 2)},
		{Abbrev: "jo", Name: "John", Chapters: fixtureChapters("jo", 21, 20)},
		{Abbrev: "1jo", Name: "1 John", Chapters: fixtureChapters("1jo", 5, 2)},
		{Abbrev: "re", Name: "Revelation", Chapters: fixtureChapters("re", 22, 2)},
	}
}

// testEnv is an isolated working directory with its own config and cache.
type testEnv struct {
	dir      string
	dataPath string
}

// setupTestEnv writes the fixture document, with a byte order mark, to
// the default data path inside a fresh working directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	data, err := json.Marshal(fixtureBooks())
	if err != nil {
		t.Fatal(err)
	}
	dataPath := filepath.Join(dir, "bos-app", "src", "data", "kjv-bible.json")
	if err := os.MkdirAll(filepath.Dir(dataPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dataPath, append([]byte{0xEF, 0xBB, 0xBF}, data...), 0644); err != nil {
		t.Fatal(err)
	}

	return &testEnv{dir: dir, dataPath: dataPath}
}

// result is the outcome of one kjv invocation.
type result struct {
	stdout string
	stderr string
	code   int
}

// run executes kjv in the test environment.
func (e *testEnv) run(t *testing.T, extraEnv []string, args ...string) result {
	t.Helper()
	cmd := exec.Command(getKJVBinary(t), args...)
	cmd.Dir = e.dir

	env := os.Environ()
	for _, key := range []string{"KJV_DATA", "KJV_INDEX", "KJV_LOG_LEVEL", "KJV_LOG_FORMAT", "KJV_LOG_FILE"} {
		env = filterEnv(env, key)
	}
	env = append(env,
		"XDG_CONFIG_HOME="+filepath.Join(e.dir, "config"),
		"XDG_CACHE_HOME="+filepath.Join(e.dir, "cache"),
	)
	cmd.Env = append(env, extraEnv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	code := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("running kjv %v: %v", args, err)
		}
		code = exitErr.ExitCode()
	}
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// mustRun executes kjv and fails the test on a non-zero exit.
func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	res := e.run(t, nil, args...)
	if res.code != 0 {
		t.Fatalf("kjv %v exited %d\nstdout: %s\nstderr: %s", args, res.code, res.stdout, res.stderr)
	}
	return res.stdout
}

// filterEnv removes key from an environment list.
func filterEnv(env []string, key string) []string {
	prefix := key + "="
	out := make([]string, 0, len(env))
	for _, kv := range env {
		if !strings.HasPrefix(kv, prefix) {
			out = append(out, kv)
		}
	}
	return out
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
