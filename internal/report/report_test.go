package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bos-app/kjv/internal/bible"
)

// chapters builds n chapters of size verses each, reading "<abbrev> c:v".
func chapters(abbrev string, n, size int) []bible.Chapter {
	out := make([]bible.Chapter, n)
	for c := range out {
		out[c] = make(bible.Chapter, size)
		for v := range out[c] {
			out[c][v] = fmt.Sprintf("%s %d:%d", abbrev, c+1, v+1)
		}
	}
	return out
}

func book(name, abbrev string, n, size int) bible.Book {
	return bible.Book{Name: name, Abbrev: abbrev, Chapters: chapters(abbrev, n, size)}
}

func fullDocument() bible.Document {
	return bible.Document{
		book("Genesis", "gn", 50, 3),
		book("Exodus", "ex", 40, 26),
		book("Leviticus", "lv", 27, 2),
		book("Numbers", "nm", 36, 2),
		book("Deuteronomy", "dt", 34, 29),
		book("Joshua", "js", 24, 2),
		book("Judges", "jud", 21, 2),
		book("Ruth", "rt", 4, 2),
		book("1 Samuel", "1sm", 31, 2),
		book("2 Samuel", "2sm", 24, 2),
		book("1 Kings", "1kgs", 22, 2),
		book("Matthew", "mt", 28, 2),
		book("Mark", "mk", 16, 2),
		book("Luke", "lk", 24, 2),
		book("John", "jo", 21, 59),
		book("Acts", "act", 28, 2),
		book("Romans", "rm", 16, 2),
		book("1 John", "1jo", 5, 2),
		book("2 John", "2jo", 1, 2),
		book("3 John", "3jo", 1, 2),
		book("Revelation", "re", 22, 2),
	}
}

func run(t *testing.T, doc bible.Document, name string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Run(&buf, doc, name); err != nil {
		t.Fatalf("Run(%s) error = %v", name, err)
	}
	return buf.String()
}

func TestBooks(t *testing.T) {
	out := run(t, fullDocument(), "books")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if lines[0] != "Number of books in the Bible data: 21" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 1+ListLimit {
		t.Fatalf("got %d lines, want %d", len(lines), 1+ListLimit)
	}
	if lines[1] != "Genesis (gn): 50 chapters" {
		t.Errorf("first book line = %q", lines[1])
	}
	if lines[10] != "2 Samuel (2sm): 24 chapters" {
		t.Errorf("tenth book line = %q", lines[10])
	}
}

func TestBooks_ShortDocument(t *testing.T) {
	doc := bible.Document{book("Genesis", "gn", 2, 1), book("Exodus", "ex", 1, 1)}
	want := "Number of books in the Bible data: 2\nGenesis (gn): 2 chapters\nExodus (ex): 1 chapters\n"
	if got := run(t, doc, "books"); got != want {
		t.Errorf("books output = %q, want %q", got, want)
	}
}

func TestNewTestament(t *testing.T) {
	out := run(t, fullDocument(), "nt")
	want := strings.Join([]string{
		"Matthew (mt): 28 chapters",
		"Mark (mk): 16 chapters",
		"Luke (lk): 24 chapters",
		"Book with abbreviation 'jn' not found",
		"Book with abbreviation 'ac' not found",
		"Romans (rm): 16 chapters",
		"Book with abbreviation 'rv' not found",
	}, "\n") + "\n"
	if out != want {
		t.Errorf("nt output =\n%s\nwant\n%s", out, want)
	}
}

func TestFindJohn(t *testing.T) {
	if got, want := run(t, fullDocument(), "find-john"), "Found: John (jo): 21 chapters\n"; got != want {
		t.Errorf("find-john output = %q, want %q", got, want)
	}
}

func TestDeut2929(t *testing.T) {
	doc := fullDocument()
	if got, want := run(t, doc, "deut-29-29"), "Deuteronomy 29:29 dt 29:29\n"; got != want {
		t.Errorf("deut-29-29 output = %q, want %q", got, want)
	}
}

func TestDeut2929_Diagnostics(t *testing.T) {
	short := bible.Document{book("Deuteronomy", "dt", 3, 29)}
	if got, want := run(t, short, "deut-29-29"), "Deuteronomy only has 3 chapters\n"; got != want {
		t.Errorf("short book output = %q, want %q", got, want)
	}

	shortChapter := bible.Document{book("Deuteronomy", "dt", 34, 5)}
	if got, want := run(t, shortChapter, "deut-29-29"), "Deuteronomy 29 only has 5 verses\n"; got != want {
		t.Errorf("short chapter output = %q, want %q", got, want)
	}
}

func TestDeut2929_MissingBook(t *testing.T) {
	var buf bytes.Buffer
	err := Deut2929(&buf, bible.Document{book("Genesis", "gn", 1, 1)})
	if !errors.Is(err, ErrTargetMissing) {
		t.Errorf("Deut2929() error = %v, want ErrTargetMissing", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Deut2929() wrote %q before failing", buf.String())
	}
}

func TestExodus20(t *testing.T) {
	out := run(t, fullDocument(), "exodus-20")
	lines := strings.Split(out, "\n")

	if lines[0] != "Exodus 20 (KJV) - The Ten Commandments" || lines[1] != "" {
		t.Errorf("header lines = %q, %q", lines[0], lines[1])
	}
	if lines[2] != "Exodus 20:1 ex 20:1" {
		t.Errorf("first verse line = %q", lines[2])
	}
	// header, blank, 26 verses, trailing empty element
	if len(lines) != 2+26+1 {
		t.Errorf("got %d lines", len(lines))
	}
	if lines[27] != "Exodus 20:26 ex 20:26" {
		t.Errorf("last verse line = %q", lines[27])
	}
}

func TestExodus20_ShortBook(t *testing.T) {
	doc := bible.Document{book("Exodus", "ex", 12, 3)}
	if got, want := run(t, doc, "exodus-20"), "Exodus only has 12 chapters\n"; got != want {
		t.Errorf("exodus-20 output = %q, want %q", got, want)
	}
}

func TestJohn8_Capped(t *testing.T) {
	out := run(t, fullDocument(), "john-8")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != JohnVerseCap {
		t.Fatalf("john-8 printed %d lines, want %d", len(lines), JohnVerseCap)
	}
	if lines[0] != "John 8:1 jo 8:1" || lines[11] != "John 8:12 jo 8:12" {
		t.Errorf("first/last = %q / %q", lines[0], lines[11])
	}
}

func TestJohn8_FewerThanCap(t *testing.T) {
	doc := bible.Document{book("John", "jo", 8, 4)}
	out := run(t, doc, "john-8")
	if n := strings.Count(out, "\n"); n != 4 {
		t.Errorf("john-8 printed %d lines, want 4", n)
	}
}

func TestJohn8_MissingChapter(t *testing.T) {
	var buf bytes.Buffer
	err := John8(&buf, bible.Document{book("John", "jo", 7, 4)})
	if !errors.Is(err, ErrTargetMissing) {
		t.Errorf("John8() error = %v, want ErrTargetMissing", err)
	}
	var chErr *bible.ChapterRangeError
	if !errors.As(err, &chErr) {
		t.Errorf("John8() error = %v, want wrapped ChapterRangeError", err)
	}
}

func TestRun_Unknown(t *testing.T) {
	var buf bytes.Buffer
	if err := Run(&buf, fullDocument(), "psalm-23"); !errors.Is(err, ErrUnknownReport) {
		t.Errorf("Run(psalm-23) error = %v, want ErrUnknownReport", err)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	want := []string{"books", "nt", "find-john", "deut-29-29", "exodus-20", "john-8"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", names, want)
	}
	if len(All()) != len(want) {
		t.Errorf("All() returned %d reports", len(All()))
	}
}
