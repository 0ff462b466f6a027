package reader

import "errors"

var (
	// ErrBusy is returned when a fetch or page operation is already in
	// flight. The cursor is left untouched.
	ErrBusy = errors.New("reader: operation in progress")

	// ErrNoChapters means the table of contents is empty or was never loaded.
	ErrNoChapters = errors.New("reader: no chapters loaded")

	ErrNoChapterURL = errors.New("reader: no chapter_url configured")

	// ErrEndOfBook and ErrStartOfBook report that navigation hit either end
	// of the book. The cursor holds the matching sentinel page.
	ErrEndOfBook   = errors.New("reader: end of book")
	ErrStartOfBook = errors.New("reader: start of book")

	ErrChapterOutOfRange = errors.New("reader: chapter out of range")
	ErrMissingChapterURL = errors.New("reader: chapter has no url")

	// ErrSuperseded means the session was re-initialized while a fetch was
	// running and the fetched result was dropped.
	ErrSuperseded = errors.New("reader: result superseded")
)

// IsBoundary reports whether err is one of the end-of-book states, which
// are not failures.
func IsBoundary(err error) bool {
	return errors.Is(err, ErrEndOfBook) || errors.Is(err, ErrStartOfBook)
}
