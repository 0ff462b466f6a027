package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// StatusLine shows one short string at a time, overwriting the previous one.
type StatusLine struct {
	mu   sync.Mutex
	out  io.Writer
	last string
}

func NewStatusLine(out io.Writer) *StatusLine {
	if out == nil {
		out = os.Stdout
	}

	return &StatusLine{out: out}
}

func (s *StatusLine) Show(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = text
	_, _ = fmt.Fprintf(s.out, "\r\033[2K%s", flatten(text))
}

// Last returns the most recently shown text.
func (s *StatusLine) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.last
}

// Done terminates the line so the shell prompt starts on a fresh one.
func (s *StatusLine) Done() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintln(s.out)
}

func flatten(s string) string {
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}
