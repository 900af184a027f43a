package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"
)

type Logger struct {
	Debug bool
	Out   io.Writer
}

func NewLogger(debug bool) *Logger {
	return &Logger{Debug: debug, Out: os.Stdout}
}

func (l *Logger) printf(prefix, format string, args ...any) {
	out := l.Out
	if out == nil {
		out = os.Stdout
	}
	_, _ = fmt.Fprintf(out, prefix+format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		l.printf("[DEBUG] ", format, args...)
	}
}

// Dump pretty-prints v in debug mode.
func (l *Logger) Dump(label string, v any) {
	if l.Debug {
		l.printf("[DEBUG] ", "%s: %# v\n", label, pretty.Formatter(v))
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.printf("[INFO] ", format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.printf("[ERROR] ", format, args...)
}
