// Package storage loads scripture documents and maintains the SQLite search index built from them.
package storage

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bos-app/kjv/internal/bible"
	"github.com/bos-app/kjv/internal/logging"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMalformedDocument wraps decoding failures so callers can tell them apart from I/O errors.
var ErrMalformedDocument = errors.New("malformed document")

// ReadRaw returns the document's JSON bytes. Files ending in .xz are
// decompressed and a leading UTF-8 byte order mark is dropped. Bytes that
// are not valid UTF-8 are rejected as malformed.
func ReadRaw(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: xz reader: %w", ErrMalformedDocument, err)
		}
		r = xzr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return stripBOM(data)
}

// stripBOM validates data as UTF-8 and removes a leading byte order mark.
func stripBOM(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformedDocument)
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return out, nil
}

// LoadDocument reads and decodes the document at path.
func LoadDocument(path string) (bible.Document, error) {
	data, err := ReadRaw(path)
	if err != nil {
		return nil, err
	}

	doc, err := decodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	logging.L().Debug("loaded document",
		"path", path,
		"books", len(doc),
		"verses", doc.VerseTotal())
	return doc, nil
}

// DecodeDocument decodes a JSON array of books from r, accepting a leading
// UTF-8 byte order mark. The whole input must be a single JSON value.
func DecodeDocument(r io.Reader) (bible.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	data, err = stripBOM(data)
	if err != nil {
		return nil, err
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (bible.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedDocument)
	}

	var doc bible.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrMalformedDocument)
	}
	return doc, nil
}

// Fingerprint returns the hex BLAKE3 digest of the file at path.
func Fingerprint(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
