package reader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/CrazyPigHead/t-reader/internal/history"
	"github.com/CrazyPigHead/t-reader/internal/providers"
)

type fakeSource struct {
	mu           sync.Mutex
	toc          []providers.ChapterInfo
	bodies       map[string]string
	fail         map[string]error
	gate         map[string]chan struct{}
	started      chan string
	listGate     chan struct{}
	listErr      error
	listCalls    int
	contentCalls map[string]int
}

func (f *fakeSource) Chapters(_ context.Context, _ string) ([]providers.ChapterInfo, error) {
	f.mu.Lock()
	gate := f.listGate
	f.mu.Unlock()

	if gate != nil {
		f.started <- "toc"
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]providers.ChapterInfo, len(f.toc))
	copy(out, f.toc)

	return out, nil
}

func (f *fakeSource) Content(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	f.contentCalls[url]++
	gate, err, body := f.gate[url], f.fail[url], f.bodies[url]
	f.mu.Unlock()

	if gate != nil {
		f.started <- url
		<-gate
	}
	if err != nil {
		return "", err
	}

	return body, nil
}

func (f *fakeSource) calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.contentCalls[url]
}

func (f *fakeSource) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, c := range f.contentCalls {
		n += c
	}

	return n
}

type memStore struct {
	mu sync.Mutex
	st Settings
}

func (m *memStore) Settings() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.st, nil
}

func (m *memStore) SaveChapter(n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.st.Chapter = n
	return nil
}

func (m *memStore) SavePage(n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.st.Page = n
	return nil
}

func (m *memStore) update(fn func(*Settings)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn(&m.st)
}

func (m *memStore) cursor() Cursor {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Cursor{Chapter: m.st.Chapter, Page: m.st.Page}
}

type screen struct {
	mu    sync.Mutex
	shown []string
}

func (s *screen) Show(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shown = append(s.shown, text)
}

func (s *screen) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.shown) == 0 {
		return ""
	}

	return s.shown[len(s.shown)-1]
}

type nopLog struct{}

func (nopLog) Debugf(string, ...any) {}
func (nopLog) Errorf(string, ...any) {}

type historyLog struct {
	mu      sync.Mutex
	entries []history.Entry
}

func (h *historyLog) Record(_ context.Context, e history.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, e)
	return nil
}

const chapterLen = 120

// body returns raw text for chapter k so that its normalized content
// ("[ck]  " + body) is exactly chapterLen characters.
func body(k int) string {
	header := len(fmt.Sprintf("[c%d]  ", k))
	return strings.Repeat(string(rune('a'+k-1)), chapterLen-header)
}

func content(k int) []rune {
	return []rune(fmt.Sprintf("[c%d]  ", k) + body(k))
}

func newFakeSource(n int) *fakeSource {
	f := &fakeSource{
		bodies:       map[string]string{},
		fail:         map[string]error{},
		gate:         map[string]chan struct{}{},
		started:      make(chan string, 1),
		contentCalls: map[string]int{},
	}
	for k := 1; k <= n; k++ {
		url := fmt.Sprintf("u%d", k)
		f.toc = append(f.toc, providers.ChapterInfo{Name: fmt.Sprintf("c%d", k), URL: url})
		f.bodies[url] = body(k)
	}

	return f
}

type fixture struct {
	s       *Session
	src     *fakeSource
	store   *memStore
	screen  *screen
	history *historyLog
}

func newFixture(t *testing.T, chapter, page int) *fixture {
	t.Helper()

	fx := &fixture{
		src: newFakeSource(3),
		store: &memStore{st: Settings{
			ChapterURL: "toc",
			Chapter:    chapter,
			Page:       page,
			PageSize:   50,
		}},
		screen:  &screen{},
		history: &historyLog{},
	}
	fx.s = NewSession(Options{
		Source:  fx.src,
		Store:   fx.store,
		Display: fx.screen,
		Log:     nopLog{},
		History: fx.history,
	})

	return fx
}

func (fx *fixture) init(t *testing.T) {
	t.Helper()

	if err := fx.s.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
}

func (fx *fixture) wantCursor(t *testing.T, chapter, page int) {
	t.Helper()

	want := Cursor{Chapter: chapter, Page: page}
	if got := fx.s.State().Cursor; got != want {
		t.Errorf("cursor = %+v, want %+v", got, want)
	}
}

func TestInitLoadsStoredChapter(t *testing.T) {
	fx := newFixture(t, 2, 1)
	fx.init(t)

	st := fx.s.State()
	if st.Chapters != 3 || st.Loaded != 2 || st.PageCount != 3 || st.PageSize != 50 {
		t.Errorf("state = %+v", st)
	}
	if fx.src.listCalls != 1 {
		t.Errorf("list fetches = %d, want 1", fx.src.listCalls)
	}
	if got := fx.src.calls("u2"); got != 1 {
		t.Errorf("chapter 2 fetches = %d, want 1", got)
	}
}

func TestInitIsNoopWhenUnchanged(t *testing.T) {
	fx := newFixture(t, 1, 1)
	fx.init(t)
	fx.init(t)

	if fx.src.listCalls != 1 {
		t.Errorf("list fetches = %d, want 1", fx.src.listCalls)
	}

	fx.store.update(func(st *Settings) { st.Chapter = 3 })
	fx.init(t)

	if fx.src.listCalls != 2 {
		t.Errorf("list fetches after chapter change = %d, want 2", fx.src.listCalls)
	}
	if got := fx.s.State().Loaded; got != 3 {
		t.Errorf("loaded chapter = %d, want 3", got)
	}
}

func TestInitOutOfRangeChapterLoadsNothing(t *testing.T) {
	fx := newFixture(t, 9, 1)
	fx.init(t)

	if got := fx.s.State().Loaded; got != 0 {
		t.Errorf("loaded chapter = %d, want 0", got)
	}
	if got := fx.src.totalCalls(); got != 0 {
		t.Errorf("content fetches = %d, want 0", got)
	}
	fx.wantCursor(t, 9, 1)
}

func TestInitListFailure(t *testing.T) {
	fx := newFixture(t, 1, 1)
	boom := errors.New("connection refused")
	fx.src.listErr = boom

	err := fx.s.Init(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Init() error = %v, want %v", err, boom)
	}

	if err := fx.s.PageContent(context.Background()); !errors.Is(err, ErrNoChapters) {
		t.Errorf("PageContent() error = %v, want ErrNoChapters", err)
	}
	if got := fx.screen.last(); got != MsgNoChapters {
		t.Errorf("shown = %q, want %q", got, MsgNoChapters)
	}
}

func TestInitWithoutURL(t *testing.T) {
	fx := newFixture(t, 1, 1)
	fx.store.update(func(st *Settings) { st.ChapterURL = "" })

	if err := fx.s.Init(context.Background()); !errors.Is(err, ErrNoChapterURL) {
		t.Errorf("Init() error = %v, want ErrNoChapterURL", err)
	}
}

func TestPageContentSlices(t *testing.T) {
	fx := newFixture(t, 1, 2)
	fx.init(t)

	if err := fx.s.PageContent(context.Background()); err != nil {
		t.Fatalf("PageContent() error = %v", err)
	}

	if got, want := fx.screen.last(), string(content(1)[50:100]); got != want {
		t.Errorf("shown = %q, want %q", got, want)
	}
	if len(fx.history.entries) != 1 {
		t.Fatalf("history entries = %d, want 1", len(fx.history.entries))
	}
	if e := fx.history.entries[0]; e.BookURL != "toc" || e.Chapter != 1 || e.Page != 2 || e.ChapterName != "c1" {
		t.Errorf("history entry = %+v", e)
	}
}

func TestSameChapterIsNotRefetched(t *testing.T) {
	fx := newFixture(t, 1, 1)
	fx.init(t)
	ctx := context.Background()

	if err := fx.s.PageContent(ctx); err != nil {
		t.Fatal(err)
	}
	first := fx.screen.last()

	if err := fx.s.PageContent(ctx); err != nil {
		t.Fatal(err)
	}
	if fx.screen.last() != first {
		t.Errorf("second display = %q, want %q", fx.screen.last(), first)
	}

	if err := fx.s.NextPage(ctx); err != nil {
		t.Fatal(err)
	}
	if err := fx.s.PrevPage(ctx); err != nil {
		t.Fatal(err)
	}

	if got := fx.src.calls("u1"); got != 1 {
		t.Errorf("chapter 1 fetches = %d, want 1", got)
	}
}

func TestPageTurnAcrossChapters(t *testing.T) {
	fx := newFixture(t, 1, 3)
	fx.init(t)
	ctx := context.Background()

	if err := fx.s.NextPage(ctx); err != nil {
		t.Fatalf("NextPage() error = %v", err)
	}
	fx.wantCursor(t, 2, 1)
	if got, want := fx.screen.last(), string(content(2)[0:50]); got != want {
		t.Errorf("shown = %q, want %q", got, want)
	}
	if got := fx.store.cursor(); got != (Cursor{Chapter: 2, Page: 1}) {
		t.Errorf("persisted cursor = %+v", got)
	}

	if err := fx.s.PrevPage(ctx); err != nil {
		t.Fatalf("PrevPage() error = %v", err)
	}
	fx.wantCursor(t, 1, 3)

	got := fx.screen.last()
	if want := string(content(1)[100:120]); got != want {
		t.Errorf("shown = %q, want %q", got, want)
	}
	if n := len([]rune(got)); n != 20 {
		t.Errorf("last page length = %d, want 20", n)
	}
	if got := fx.store.cursor(); got != (Cursor{Chapter: 1, Page: 3}) {
		t.Errorf("persisted cursor = %+v", got)
	}
}

func TestNextPageAtEndOfBook(t *testing.T) {
	fx := newFixture(t, 3, 3)
	fx.init(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := fx.s.NextPage(ctx); !errors.Is(err, ErrEndOfBook) {
			t.Fatalf("NextPage() #%d error = %v, want ErrEndOfBook", i+1, err)
		}
		fx.wantCursor(t, 3, 4)
		if got := fx.screen.last(); got != MsgNoMore {
			t.Errorf("shown = %q, want %q", got, MsgNoMore)
		}
	}

	if got := fx.store.cursor(); got != (Cursor{Chapter: 3, Page: 4}) {
		t.Errorf("persisted cursor = %+v", got)
	}
	if got := fx.src.calls("u3"); got != 1 {
		t.Errorf("chapter 3 fetches = %d, want 1", got)
	}

	if err := fx.s.PrevPage(ctx); err != nil {
		t.Fatalf("PrevPage() from end error = %v", err)
	}
	fx.wantCursor(t, 3, 3)
}

func TestPrevPageAtStartOfBook(t *testing.T) {
	fx := newFixture(t, 1, 1)
	fx.init(t)
	ctx := context.Background()

	if err := fx.s.PrevPage(ctx); !errors.Is(err, ErrStartOfBook) {
		t.Fatalf("PrevPage() error = %v, want ErrStartOfBook", err)
	}
	fx.wantCursor(t, 1, 0)
	if got := fx.screen.last(); got != MsgNoMore {
		t.Errorf("shown = %q, want %q", got, MsgNoMore)
	}

	if err := fx.s.NextPage(ctx); err != nil {
		t.Fatalf("NextPage() error = %v", err)
	}
	fx.wantCursor(t, 1, 1)
}

func TestChapterNavigation(t *testing.T) {
	tests := []struct {
		name          string
		chapter, page int
		next          bool
		wantErr       error
		wantChapter   int
		wantPage      int
	}{
		{"next from middle", 2, 2, true, nil, 3, 1},
		{"prev from middle", 2, 2, false, nil, 1, 1},
		{"next from last", 3, 2, true, ErrEndOfBook, 3, 4},
		{"prev from first", 1, 2, false, ErrStartOfBook, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, tt.chapter, tt.page)
			fx.init(t)

			var err error
			if tt.next {
				err = fx.s.NextChapter(context.Background())
			} else {
				err = fx.s.PrevChapter(context.Background())
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			fx.wantCursor(t, tt.wantChapter, tt.wantPage)
		})
	}
}

func TestGotoChapter(t *testing.T) {
	fx := newFixture(t, 1, 2)
	fx.init(t)
	ctx := context.Background()

	if err := fx.s.GotoChapter(ctx, 3); err != nil {
		t.Fatalf("GotoChapter(3) error = %v", err)
	}
	fx.wantCursor(t, 3, 1)

	if err := fx.s.GotoChapter(ctx, 9); !errors.Is(err, ErrChapterOutOfRange) {
		t.Fatalf("GotoChapter(9) error = %v, want ErrChapterOutOfRange", err)
	}
	fx.wantCursor(t, 3, 1)
}

func TestWideScriptDoublesPageSize(t *testing.T) {
	fx := newFixture(t, 1, 1)
	fx.store.update(func(st *Settings) { st.WideScript = true })
	fx.init(t)

	if st := fx.s.State(); st.PageSize != 100 || st.PageCount != 2 {
		t.Errorf("page size/count = %d/%d, want 100/2", st.PageSize, st.PageCount)
	}

	fx.store.update(func(st *Settings) { st.WideScript = false })
	if err := fx.s.NextChapter(context.Background()); err != nil {
		t.Fatal(err)
	}

	if st := fx.s.State(); st.PageSize != 50 || st.PageCount != 3 {
		t.Errorf("page size/count after reload = %d/%d, want 50/3", st.PageSize, st.PageCount)
	}
}

type prefixDetector string

func (p prefixDetector) IsWide(text string) bool {
	return strings.HasPrefix(text, string(p))
}

func TestAutoDetectScriptPerChapter(t *testing.T) {
	fx := newFixture(t, 1, 1)
	fx.s.detector = prefixDetector("a")
	fx.store.update(func(st *Settings) { st.AutoDetectScript = true })
	fx.init(t)

	if got := fx.s.State().PageSize; got != 100 {
		t.Errorf("chapter 1 page size = %d, want 100", got)
	}

	if err := fx.s.NextChapter(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := fx.s.State().PageSize; got != 50 {
		t.Errorf("chapter 2 page size = %d, want 50", got)
	}
}

func TestFailedLoadKeepsCursor(t *testing.T) {
	fx := newFixture(t, 1, 3)
	boom := errors.New("HTTP 502")
	fx.src.fail["u2"] = boom
	fx.init(t)

	err := fx.s.NextPage(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("NextPage() error = %v, want %v", err, boom)
	}

	fx.wantCursor(t, 1, 3)
	if got := fx.s.State().Loaded; got != 1 {
		t.Errorf("loaded chapter = %d, want 1", got)
	}
	if got := fx.store.cursor(); got != (Cursor{Chapter: 1, Page: 3}) {
		t.Errorf("persisted cursor = %+v", got)
	}
	if got := fx.screen.last(); !strings.HasPrefix(got, "load failed") {
		t.Errorf("shown = %q, want a load failure", got)
	}
}

func TestMissingChapterURL(t *testing.T) {
	fx := newFixture(t, 1, 1)
	fx.src.toc[1].URL = ""
	fx.init(t)

	if err := fx.s.NextChapter(context.Background()); !errors.Is(err, ErrMissingChapterURL) {
		t.Fatalf("NextChapter() error = %v, want ErrMissingChapterURL", err)
	}
	fx.wantCursor(t, 1, 1)
}

func TestPageContentLoadsPendingChapter(t *testing.T) {
	fx := newFixture(t, 2, 2)
	fx.src.fail["u2"] = errors.New("timeout")

	if err := fx.s.Init(context.Background()); err == nil {
		t.Fatal("Init() error = nil, want failure")
	}
	if got := fx.s.State().Loaded; got != 0 {
		t.Fatalf("loaded chapter = %d, want 0", got)
	}

	delete(fx.src.fail, "u2")
	if err := fx.s.PageContent(context.Background()); err != nil {
		t.Fatalf("PageContent() error = %v", err)
	}
	fx.wantCursor(t, 2, 2)
	if got, want := fx.screen.last(), string(content(2)[50:100]); got != want {
		t.Errorf("shown = %q, want %q", got, want)
	}
}

func TestBusySessionRejectsNavigation(t *testing.T) {
	fx := newFixture(t, 1, 1)
	fx.init(t)
	ctx := context.Background()

	release := make(chan struct{})
	fx.src.gate["u2"] = release

	done := make(chan error, 1)
	go func() {
		done <- fx.s.NextChapter(ctx)
	}()
	<-fx.src.started

	before := fx.s.State().Cursor
	if err := fx.s.NextPage(ctx); !errors.Is(err, ErrBusy) {
		t.Errorf("NextPage() during fetch error = %v, want ErrBusy", err)
	}
	if err := fx.s.PageContent(ctx); !errors.Is(err, ErrBusy) {
		t.Errorf("PageContent() during fetch error = %v, want ErrBusy", err)
	}
	if got := fx.screen.last(); got != MsgLoading {
		t.Errorf("shown = %q, want %q", got, MsgLoading)
	}
	if after := fx.s.State().Cursor; after != before {
		t.Errorf("cursor moved while busy: %+v -> %+v", before, after)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("NextChapter() error = %v", err)
	}
	fx.wantCursor(t, 2, 1)
	if got := fx.src.calls("u2"); got != 1 {
		t.Errorf("chapter 2 fetches = %d, want 1", got)
	}
}

func TestReinitSupersedesInFlightFetch(t *testing.T) {
	fx := newFixture(t, 1, 1)
	fx.init(t)
	ctx := context.Background()

	release := make(chan struct{})
	fx.src.gate["u2"] = release

	done := make(chan error, 1)
	go func() {
		done <- fx.s.NextChapter(ctx)
	}()
	<-fx.src.started

	fx.store.update(func(st *Settings) { st.ChapterURL = "other-toc" })
	if err := fx.s.Init(ctx); !errors.Is(err, ErrBusy) {
		t.Errorf("Init() during fetch error = %v, want ErrBusy", err)
	}

	close(release)
	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("NextChapter() error = %v, want ErrSuperseded", err)
	}

	st := fx.s.State()
	if st.Loaded != 0 {
		t.Errorf("stale chapter %d was installed", st.Loaded)
	}
	if st.BookURL != "other-toc" {
		t.Errorf("book url = %q, want other-toc", st.BookURL)
	}
	fx.wantCursor(t, 1, 1)
}

func TestBoss(t *testing.T) {
	fx := newFixture(t, 1, 1)

	if err := fx.s.Boss(context.Background()); err != nil {
		t.Fatalf("Boss() error = %v", err)
	}
	if got := fx.screen.last(); got != MsgDone {
		t.Errorf("shown = %q, want %q", got, MsgDone)
	}
}

func TestOverlappingInitIsRejected(t *testing.T) {
	fx := newFixture(t, 1, 1)
	ctx := context.Background()

	release := make(chan struct{})
	fx.src.listGate = release

	done := make(chan error, 1)
	go func() {
		done <- fx.s.Init(ctx)
	}()
	<-fx.src.started

	if err := fx.s.Init(ctx); !errors.Is(err, ErrBusy) {
		t.Errorf("second Init() error = %v, want ErrBusy", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Init() error = %v", err)
	}

	st := fx.s.State()
	if st.Chapters != 3 || st.Loaded != 1 {
		t.Errorf("state after overlapping Init = %+v", st)
	}
	if fx.src.listCalls != 1 {
		t.Errorf("list fetches = %d, want 1", fx.src.listCalls)
	}
}
