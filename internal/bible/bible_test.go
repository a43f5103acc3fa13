package bible

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// makeBook builds a book whose chapter i has versesPerChapter[i] verses,
// each reading "<abbrev> c:v".
func makeBook(name, abbrev string, versesPerChapter ...int) Book {
	b := Book{Name: name, Abbrev: abbrev}
	for ci, n := range versesPerChapter {
		ch := make(Chapter, n)
		for vi := range ch {
			ch[vi] = fmt.Sprintf("%s %d:%d", abbrev, ci+1, vi+1)
		}
		b.Chapters = append(b.Chapters, ch)
	}
	return b
}

func testDocument() Document {
	return Document{
		makeBook("Genesis", "gn", 3, 2),
		makeBook("Exodus", "ex", 4),
		makeBook("John", "jo", 2, 5),
		makeBook("1 John", "1jo", 3),
		makeBook("2 John", "2jo", 1),
		makeBook("3 John", "3jo", 1),
	}
}

func TestFirstN(t *testing.T) {
	doc := testDocument()

	tests := []struct {
		n    int
		want []string
	}{
		{0, []string{}},
		{-3, []string{}},
		{2, []string{"Genesis", "Exodus"}},
		{6, []string{"Genesis", "Exodus", "John", "1 John", "2 John", "3 John"}},
		{100, []string{"Genesis", "Exodus", "John", "1 John", "2 John", "3 John"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.n), func(t *testing.T) {
			got := []string{}
			for _, b := range doc.FirstN(tt.n) {
				got = append(got, b.Name)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FirstN(%d) mismatch (-want +got):\n%s", tt.n, diff)
			}
		})
	}
}

func TestFindByAbbrev(t *testing.T) {
	doc := testDocument()

	book, ok := doc.FindByAbbrev("ex")
	if !ok || book.Name != "Exodus" {
		t.Errorf("FindByAbbrev(ex) = %v, %v", book, ok)
	}

	for _, abbrev := range []string{"mt", "EX", "", "exo"} {
		if b, ok := doc.FindByAbbrev(abbrev); ok {
			t.Errorf("FindByAbbrev(%q) = %s, want not found", abbrev, b.Name)
		}
	}
}

func TestFindByNameSubstring(t *testing.T) {
	doc := testDocument()

	got := doc.FindByNameSubstring("john", []string{"1", "2", "3"})
	if len(got) != 1 || got[0].Name != "John" {
		t.Fatalf("FindByNameSubstring(john, 1/2/3) = %v, want [John]", Summaries(got))
	}

	all := doc.FindByNameSubstring("JOHN", nil)
	if len(all) != 4 {
		t.Errorf("FindByNameSubstring(JOHN, nil) returned %d books, want 4", len(all))
	}

	if none := doc.FindByNameSubstring("revelation", nil); len(none) != 0 {
		t.Errorf("FindByNameSubstring(revelation) = %v, want none", Summaries(none))
	}
}

func TestBook_NameOrAbbrev(t *testing.T) {
	doc := testDocument()

	tests := []struct {
		query string
		want  string
	}{
		{"Exodus", "Exodus"},
		{"exodus", "Exodus"},
		{"  EX ", "Exodus"},
		{"1 John", "1 John"},
		{"1john", "1 John"},
		{"1 jo", "1 John"},
		{"1jo", "1 John"},
		{"jo", "John"},
	}
	for _, tt := range tests {
		book, err := doc.Book(tt.query)
		if err != nil {
			t.Errorf("Book(%q) error = %v", tt.query, err)
			continue
		}
		if book.Name != tt.want {
			t.Errorf("Book(%q) = %s, want %s", tt.query, book.Name, tt.want)
		}
	}

	if _, err := doc.Book("Leviticus"); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("Book(Leviticus) error = %v, want ErrBookNotFound", err)
	}
	if _, err := doc.Book("  "); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("Book(blank) error = %v, want ErrBookNotFound", err)
	}
}

func TestBook_Verse(t *testing.T) {
	deut := makeBook("Deuteronomy", "dt", make([]int, 29)...)
	deut.Chapters[28] = make(Chapter, 29)
	deut.Chapters[28][28] = "The secret things belong unto the LORD our God"

	v, err := deut.Verse(29, 29)
	if err != nil {
		t.Fatalf("Verse(29, 29) error = %v", err)
	}
	if got, want := v.String(), "Deuteronomy 29:29 The secret things belong unto the LORD our God"; got != want {
		t.Errorf("Verse(29, 29) = %q, want %q", got, want)
	}
}

func TestBook_VerseRangeErrors(t *testing.T) {
	book := makeBook("Deuteronomy", "dt", 5, 3)

	_, err := book.Verse(29, 29)
	var chErr *ChapterRangeError
	if !errors.As(err, &chErr) {
		t.Fatalf("Verse(29, 29) error = %v, want ChapterRangeError", err)
	}
	if chErr.Available != 2 || chErr.Error() != "Deuteronomy only has 2 chapters" {
		t.Errorf("ChapterRangeError = %+v (%q)", chErr, chErr.Error())
	}

	_, err = book.Verse(2, 29)
	var vErr *VerseRangeError
	if !errors.As(err, &vErr) {
		t.Fatalf("Verse(2, 29) error = %v, want VerseRangeError", err)
	}
	if vErr.Available != 3 || vErr.Error() != "Deuteronomy 2 only has 3 verses" {
		t.Errorf("VerseRangeError = %+v (%q)", vErr, vErr.Error())
	}

	for _, c := range [][2]int{{0, 1}, {1, 0}, {-1, -1}} {
		if _, err := book.Verse(c[0], c[1]); err == nil {
			t.Errorf("Verse(%d, %d) expected error", c[0], c[1])
		}
	}
}

func TestBook_VerseRange(t *testing.T) {
	book := makeBook("John", "jo", 20, 5, 0)

	tests := []struct {
		name      string
		chapter   int
		from, max int
		wantFirst int
		wantCount int
	}{
		{"capped", 1, 1, 12, 1, 12},
		{"fewer than cap", 2, 1, 12, 1, 5},
		{"whole chapter", 1, 1, 0, 1, 20},
		{"from middle", 1, 15, 12, 15, 6},
		{"from clamped to 1", 2, -4, 2, 1, 2},
		{"empty chapter", 3, 1, 12, 0, 0},
		{"huge max", 1, 2, math.MaxInt, 2, 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verses, err := book.VerseRange(tt.chapter, tt.from, tt.max)
			if err != nil {
				t.Fatalf("VerseRange() error = %v", err)
			}
			if len(verses) != tt.wantCount {
				t.Fatalf("VerseRange() returned %d verses, want %d", len(verses), tt.wantCount)
			}
			if tt.wantCount > 0 && verses[0].Verse != tt.wantFirst {
				t.Errorf("first verse = %d, want %d", verses[0].Verse, tt.wantFirst)
			}
			for i := 1; i < len(verses); i++ {
				if verses[i].Verse != verses[i-1].Verse+1 {
					t.Errorf("verses not consecutive at %d", i)
				}
			}
		})
	}

	if _, err := book.VerseRange(2, 6, 1); err == nil {
		t.Error("VerseRange() starting past the chapter expected error")
	}
	if _, err := book.VerseRange(8, 1, 12); err == nil {
		t.Error("VerseRange() on a missing chapter expected error")
	}
}

func TestVerseString(t *testing.T) {
	v := Verse{Book: "John", Chapter: 8, Verse: 12, Text: "I am the light of the world"}
	if got, want := v.String(), "John 8:12 I am the light of the world"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCounts(t *testing.T) {
	doc := testDocument()
	gen := &doc[0]

	if gen.ChapterCount() != 2 {
		t.Errorf("ChapterCount() = %d, want 2", gen.ChapterCount())
	}
	if gen.VerseCount(1) != 3 || gen.VerseCount(2) != 2 || gen.VerseCount(3) != 0 {
		t.Errorf("VerseCount() = %d, %d, %d", gen.VerseCount(1), gen.VerseCount(2), gen.VerseCount(3))
	}
	if got := doc.VerseTotal(); got != 3+2+4+2+5+3+1+1 {
		t.Errorf("VerseTotal() = %d", got)
	}
}

func TestSummaryString(t *testing.T) {
	b := makeBook("Genesis", "gn", 1, 1, 1)
	if got, want := b.Summary().String(), "Genesis (gn): 3 chapters"; got != want {
		t.Errorf("Summary().String() = %q, want %q", got, want)
	}
}
