package chapters

import (
	"strings"
)

const DefaultPageSize = 50

// Chapter is the loaded text of one table-of-contents entry. ID and Content
// are only ever set together.
type Chapter struct {
	ID      int
	Name    string
	Content string

	runes []rune
}

func New(id int, name, content string) *Chapter {
	return &Chapter{
		ID:      id,
		Name:    name,
		Content: content,
		runes:   []rune(content),
	}
}

// Len is the content length in characters.
func (c *Chapter) Len() int {
	return len(c.runes)
}

// Page returns the n-th (1-based) slice of size characters. Pages past the
// end are empty; the last page may be short.
func (c *Chapter) Page(n, size int) string {
	if n < 1 || size < 1 {
		return ""
	}

	start := (n - 1) * size
	if start >= len(c.runes) {
		return ""
	}

	end := min(start+size, len(c.runes))

	return string(c.runes[start:end])
}

// PageSize applies the default for non-positive sizes and doubles the result
// for wide scripts, whose lines hold about twice as many characters.
func PageSize(base int, wideScript bool) int {
	if base < 1 {
		base = DefaultPageSize
	}
	if wideScript {
		return base * 2
	}

	return base
}

func PageCount(length, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	if length <= 0 {
		return 0
	}

	return (length + size - 1) / size
}

var normalizer = strings.NewReplacer(
	"\r", " ",
	"　　", " ",
	"　", " ",
)

// Normalize turns raw extracted text into page-ready content headed by the
// chapter name.
func Normalize(name, raw, lineBreak string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "\n", lineBreak)
	s = normalizer.Replace(s)

	return "[" + name + "]  " + s
}
