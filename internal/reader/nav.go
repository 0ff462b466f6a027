package reader

import (
	"context"
	"fmt"
)

// The navigation operations only move the cursor; PageContent resolves
// out-of-range values.

func (s *Session) PrevChapter(ctx context.Context) error {
	return s.run(ctx, func(c *Cursor) {
		c.Chapter--
		c.Page = 1
	})
}

func (s *Session) NextChapter(ctx context.Context) error {
	return s.run(ctx, func(c *Cursor) {
		c.Chapter++
		c.Page = 1
	})
}

func (s *Session) PrevPage(ctx context.Context) error {
	return s.run(ctx, func(c *Cursor) {
		c.Page--
	})
}

func (s *Session) NextPage(ctx context.Context) error {
	return s.run(ctx, func(c *Cursor) {
		c.Page++
	})
}

// GotoChapter jumps to the first page of chapter n, which must exist.
func (s *Session) GotoChapter(ctx context.Context, n int) error {
	s.mu.Lock()
	total := len(s.toc)
	s.mu.Unlock()

	if n < 1 || n > total {
		return fmt.Errorf("chapter %d of %d: %w", n, total, ErrChapterOutOfRange)
	}

	return s.run(ctx, func(c *Cursor) {
		c.Chapter = n
		c.Page = 1
	})
}
