package providers

import "context"

// ChapterInfo is one entry of a table of contents.
type ChapterInfo struct {
	Name string
	URL  string
}

type Source interface {
	Chapters(ctx context.Context, tocURL string) ([]ChapterInfo, error)
	Content(ctx context.Context, chapterURL string) (string, error)
}
