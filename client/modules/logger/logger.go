package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

type Logger interface {
	Log(format string, args ...interface{})
}

// logger prefixes every line with the owner name.
type logger struct {
	mu       sync.Mutex
	out      io.Writer
	userName string
	prefix   func(a ...interface{}) string
}

func NewLogger(username string) Logger {
	return NewLoggerWithWriter(username, os.Stdout)
}

func NewLoggerWithWriter(username string, out io.Writer) Logger {
	return &logger{
		out:      out,
		userName: username,
		prefix:   color.New(color.FgCyan).SprintFunc(),
	}
}

func (l *logger) Log(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] %s\n", l.prefix(l.userName), fmt.Sprintf(format, args...))
}

// WithName returns a logger whose prefix also carries the registration name.
func WithName(l Logger, name string) Logger {
	return &namedLogger{parent: l, name: name}
}

type namedLogger struct {
	parent Logger
	name   string
}

func (l *namedLogger) Log(format string, args ...interface{}) {
	l.parent.Log("%s: %s", l.name, fmt.Sprintf(format, args...))
}

type nopLogger struct{}

func (nopLogger) Log(string, ...interface{}) {}

func NewNopLogger() Logger {
	return nopLogger{}
}
