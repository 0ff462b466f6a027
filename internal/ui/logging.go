package ui

import (
	"fmt"
	"io"
	"os"
)

type Logger struct {
	Debug bool
	Out   io.Writer
}

// NewLogger logs to stderr so stdout stays free for the status line.
func NewLogger(debug bool) *Logger {
	return &Logger{Debug: debug, Out: os.Stderr}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		_, _ = fmt.Fprintf(l.Out, "[DEBUG] "+format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	_, _ = fmt.Fprintf(l.Out, "[INFO] "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(l.Out, "[ERROR] "+format, args...)
}
