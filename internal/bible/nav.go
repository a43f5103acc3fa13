package bible

import (
	"fmt"

	"github.com/bos-app/kjv/internal/reference"
)

// Position addresses a chapter by book name and one-indexed chapter number.
type Position struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
}

func (p Position) String() string {
	return fmt.Sprintf("%s %d", p.Book, p.Chapter)
}

// Next returns the chapter after pos, moving into the following book at
// the end of a book. It reports false at the end of the document or when
// the book is unknown.
func (d Document) Next(pos Position) (Position, bool) {
	i := d.indexOf(pos.Book)
	if i < 0 {
		return Position{}, false
	}
	book := d[i]
	if pos.Chapter < len(book.Chapters) {
		return Position{Book: book.Name, Chapter: pos.Chapter + 1}, true
	}
	if i < len(d)-1 {
		return Position{Book: d[i+1].Name, Chapter: 1}, true
	}
	return Position{}, false
}

// Previous returns the chapter before pos, moving to the last chapter of
// the preceding book at the start of a book.
func (d Document) Previous(pos Position) (Position, bool) {
	i := d.indexOf(pos.Book)
	if i < 0 {
		return Position{}, false
	}
	book := d[i]
	if pos.Chapter > 1 {
		return Position{Book: book.Name, Chapter: pos.Chapter - 1}, true
	}
	if i > 0 {
		prev := d[i-1]
		return Position{Book: prev.Name, Chapter: len(prev.Chapters)}, true
	}
	return Position{}, false
}

// Resolve returns the verses a parsed reference points at: the whole
// chapter, a verse range, or a single verse.
func (d Document) Resolve(ref reference.Reference) ([]Verse, error) {
	book, err := d.Book(ref.Book)
	if err != nil {
		return nil, err
	}

	switch {
	case ref.Verse == 0:
		return book.VerseRange(ref.Chapter, 1, 0)
	case ref.EndVerse >= ref.Verse:
		return book.VerseRange(ref.Chapter, ref.Verse, ref.EndVerse-ref.Verse+1)
	default:
		v, err := book.Verse(ref.Chapter, ref.Verse)
		if err != nil {
			return nil, err
		}
		return []Verse{v}, nil
	}
}
