// Package reader owns the reading cursor of one book: it loads the table of
// contents, keeps the current chapter in a single slot, slices it into pages
// and walks across page and chapter boundaries.
package reader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/CrazyPigHead/t-reader/internal/chapters"
	"github.com/CrazyPigHead/t-reader/internal/history"
	"github.com/CrazyPigHead/t-reader/internal/providers"
)

const (
	MsgLoading    = "loading…"
	MsgNoMore     = "no more content"
	MsgNoChapters = "no chapters"
	MsgDone       = "done"
)

// Settings is the persisted part of the reading state plus the display
// preferences that shape pagination.
type Settings struct {
	ChapterURL       string
	Chapter          int
	Page             int
	PageSize         int
	LineBreak        string
	WideScript       bool
	AutoDetectScript bool
}

type Store interface {
	Settings() (Settings, error)
	SaveChapter(n int) error
	SavePage(n int) error
}

type Display interface {
	Show(text string)
}

type ScriptDetector interface {
	IsWide(text string) bool
}

type Recorder interface {
	Record(ctx context.Context, e history.Entry) error
}

type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

type Cursor struct {
	Chapter int
	Page    int
}

type Options struct {
	Source   providers.Source
	Store    Store
	Display  Display
	Log      Logger
	Detector ScriptDetector
	History  Recorder
}

type Session struct {
	src      providers.Source
	store    Store
	display  Display
	log      Logger
	detector ScriptDetector
	history  Recorder

	mu        sync.Mutex
	settings  Settings
	bookURL   string
	toc       []providers.ChapterInfo
	chapter   *chapters.Chapter
	cursor    Cursor
	pageSize  int
	pageCount int
	gen       uint64

	listBusy    atomic.Bool
	chapterBusy atomic.Bool
	pageBusy    atomic.Bool
}

func NewSession(opts Options) *Session {
	return &Session{
		src:      opts.Source,
		store:    opts.Store,
		display:  opts.Display,
		log:      opts.Log,
		detector: opts.Detector,
		history:  opts.History,
		pageSize: chapters.DefaultPageSize,
	}
}

// State is a snapshot of the session.
type State struct {
	BookURL   string
	Cursor    Cursor
	Chapters  int
	Loaded    int // id of the loaded chapter, 0 if none
	PageSize  int
	PageCount int
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		BookURL:   s.bookURL,
		Cursor:    s.cursor,
		Chapters:  len(s.toc),
		PageSize:  s.pageSize,
		PageCount: s.pageCount,
	}
	if s.chapter != nil {
		st.Loaded = s.chapter.ID
	}

	return st
}

func (s *Session) Chapters() []providers.ChapterInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]providers.ChapterInfo, len(s.toc))
	copy(out, s.toc)

	return out
}

// Init syncs the session with the store. It is a no-op when the book URL
// and chapter number are unchanged and a table of contents is held.
// Otherwise the table of contents is refetched and, if the stored chapter
// is in range, that chapter is loaded.
func (s *Session) Init(ctx context.Context) error {
	st, err := s.store.Settings()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	s.mu.Lock()
	if st.ChapterURL != "" && st.ChapterURL == s.bookURL &&
		len(s.toc) > 0 && st.Chapter == s.cursor.Chapter {
		s.mu.Unlock()
		return nil
	}

	if !s.listBusy.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return ErrBusy
	}

	s.gen++
	s.settings = st
	s.bookURL = st.ChapterURL
	s.toc = nil
	s.chapter = nil
	s.pageCount = 0
	s.cursor = Cursor{Chapter: st.Chapter, Page: st.Page}
	s.mu.Unlock()

	err = s.loadChapterList(ctx)
	s.listBusy.Store(false)
	if err != nil {
		return err
	}

	s.mu.Lock()
	n := s.cursor.Chapter
	inRange := n >= 1 && n <= len(s.toc)
	s.mu.Unlock()

	if !inRange {
		s.log.Debugf("stored chapter %d is outside the table of contents, nothing loaded\n", n)
		return nil
	}

	_, err = s.loadChapter(ctx, n)
	return err
}

// Boss initializes the session and replaces whatever is shown with a
// neutral message.
func (s *Session) Boss(ctx context.Context) error {
	err := s.Init(ctx)
	s.display.Show(MsgDone)

	return err
}

// loadChapterList fetches the table of contents. The caller holds listBusy.
func (s *Session) loadChapterList(ctx context.Context) error {
	s.mu.Lock()
	bookURL, gen := s.bookURL, s.gen
	s.mu.Unlock()

	if bookURL == "" {
		return ErrNoChapterURL
	}

	toc, err := s.src.Chapters(ctx, bookURL)
	if err != nil {
		s.log.Errorf("GET chapter list %s: %v\n", bookURL, err)
		return fmt.Errorf("chapter list: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return ErrSuperseded
	}
	s.toc = toc
	s.log.Debugf("loaded %d chapters from %s\n", len(toc), bookURL)

	return nil
}

// loadChapter makes chapter n the live chapter. A chapter that is already
// live is never fetched again.
func (s *Session) loadChapter(ctx context.Context, n int) (*chapters.Chapter, error) {
	s.mu.Lock()
	if s.chapter != nil && s.chapter.ID == n {
		ch := s.chapter
		s.mu.Unlock()
		return ch, nil
	}
	if n < 1 || n > len(s.toc) {
		s.mu.Unlock()
		return nil, fmt.Errorf("chapter %d of %d: %w", n, len(s.toc), ErrChapterOutOfRange)
	}
	info, gen := s.toc[n-1], s.gen
	s.mu.Unlock()

	if info.URL == "" {
		s.log.Errorf("chapter %d (%s) has no url\n", n, info.Name)
		return nil, fmt.Errorf("chapter %d: %w", n, ErrMissingChapterURL)
	}

	if !s.chapterBusy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.chapterBusy.Store(false)

	st := s.currentSettings()

	raw, err := s.src.Content(ctx, info.URL)
	if err != nil {
		s.log.Errorf("GET chapter %d %s: %v\n", n, info.URL, err)
		return nil, fmt.Errorf("chapter %d: %w", n, err)
	}

	wide := st.WideScript
	if st.AutoDetectScript && s.detector != nil {
		wide = s.detector.IsWide(raw)
	}
	ch := chapters.New(n, info.Name, chapters.Normalize(info.Name, raw, st.LineBreak))

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.log.Debugf("dropping chapter %d fetched for a previous book\n", n)
		return nil, ErrSuperseded
	}
	s.chapter = ch
	s.pageSize = chapters.PageSize(st.PageSize, wide)
	s.pageCount = chapters.PageCount(ch.Len(), s.pageSize)
	s.mu.Unlock()

	s.log.Debugf("chapter %d loaded: %d chars, %d pages of %d\n", n, ch.Len(), s.pageCount, s.pageSize)
	s.persistChapter(n)

	return ch, nil
}

// currentSettings rereads the store so page size changes apply to the next
// chapter load. The last known settings are used if the store fails.
func (s *Session) currentSettings() Settings {
	st, err := s.store.Settings()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.log.Errorf("read settings: %v\n", err)
		return s.settings
	}
	s.settings.PageSize = st.PageSize
	s.settings.LineBreak = st.LineBreak
	s.settings.WideScript = st.WideScript
	s.settings.AutoDetectScript = st.AutoDetectScript

	return s.settings
}

func (s *Session) persistChapter(n int) {
	if err := s.store.SaveChapter(n); err != nil {
		s.log.Errorf("save chapter number: %v\n", err)
	}
}

func (s *Session) persistPage(n int) {
	if err := s.store.SavePage(n); err != nil {
		s.log.Errorf("save page number: %v\n", err)
	}
}

func (s *Session) persistCursor(c Cursor) {
	s.persistChapter(c.Chapter)
	s.persistPage(c.Page)
}

func (s *Session) fetching() bool {
	return s.listBusy.Load() || s.chapterBusy.Load()
}

func (s *Session) begin() bool {
	if s.fetching() {
		return false
	}

	return s.pageBusy.CompareAndSwap(false, true)
}

// PageContent shows the page under the cursor, first resolving a cursor
// that points past either end of the loaded chapter.
func (s *Session) PageContent(ctx context.Context) error {
	return s.run(ctx, nil)
}

func (s *Session) run(ctx context.Context, move func(*Cursor)) error {
	if !s.begin() {
		s.display.Show(MsgLoading)
		return ErrBusy
	}
	defer s.pageBusy.Store(false)

	s.mu.Lock()
	prev, gen := s.cursor, s.gen
	if move != nil {
		move(&s.cursor)
	}
	s.mu.Unlock()

	err := s.pageContent(ctx, prev)
	if err != nil && !IsBoundary(err) {
		s.mu.Lock()
		if gen == s.gen {
			s.cursor = prev
		}
		s.mu.Unlock()
	}

	return err
}

func (s *Session) pageContent(ctx context.Context, prev Cursor) error {
	s.mu.Lock()
	empty := len(s.toc) == 0
	needPreload := s.chapter == nil && prev.Chapter >= 1 && prev.Chapter <= len(s.toc)
	s.mu.Unlock()

	if empty {
		s.display.Show(MsgNoChapters)
		return ErrNoChapters
	}

	if needPreload {
		if _, err := s.loadChapter(ctx, prev.Chapter); err != nil {
			s.showError(err)
			return err
		}
	}

	s.mu.Lock()
	c, last, count := s.cursor, len(s.toc), s.pageCount

	switch {
	case c.Page > count || c.Chapter > last:
		if c.Page > count {
			c.Chapter++
		}
		if c.Chapter > last {
			c = Cursor{Chapter: last, Page: count + 1}
			s.cursor = c
			s.mu.Unlock()

			s.persistCursor(c)
			s.display.Show(MsgNoMore)
			return ErrEndOfBook
		}
		c.Page = 1
	case c.Page < 1 || c.Chapter < 1:
		if c.Page < 1 {
			c.Chapter--
		}
		if c.Chapter < 1 {
			c = Cursor{Chapter: 1, Page: 0}
			s.cursor = c
			s.mu.Unlock()

			s.persistCursor(c)
			s.display.Show(MsgNoMore)
			return ErrStartOfBook
		}
	}
	s.cursor = c
	s.mu.Unlock()

	ch, err := s.loadChapter(ctx, c.Chapter)
	if err != nil {
		s.showError(err)
		return err
	}

	s.mu.Lock()
	if s.cursor.Page < 1 {
		s.cursor.Page = s.pageCount
	}
	c, size := s.cursor, s.pageSize
	bookURL := s.bookURL
	s.mu.Unlock()

	s.persistPage(c.Page)
	s.display.Show(ch.Page(c.Page, size))
	s.record(ctx, bookURL, ch, c)

	return nil
}

func (s *Session) showError(err error) {
	if errors.Is(err, ErrBusy) {
		s.display.Show(MsgLoading)
		return
	}

	s.display.Show("load failed: " + err.Error())
}

func (s *Session) record(ctx context.Context, bookURL string, ch *chapters.Chapter, c Cursor) {
	if s.history == nil {
		return
	}

	err := s.history.Record(ctx, history.Entry{
		BookURL:     bookURL,
		Chapter:     c.Chapter,
		ChapterName: ch.Name,
		Page:        c.Page,
	})
	if err != nil {
		s.log.Debugf("history: %v\n", err)
	}
}
