// Package applog provides the diagnostic logger used by the spawner and
// teardown sequencer to trace spawn and signal delivery events. It is adapted from the teacher repository's logger
// package: same colorized, leveled, prefix-stacking design, trimmed to the
// levels this library actually needs.
package applog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

func colorize(colorToUse color.Attribute, fstring string, args ...any) []string {
	var msg string

	if len(args) == 0 {
		msg = fstring
	} else {
		msg = fmt.Sprintf(fstring, args...)
	}

	lines := strings.Split(msg, "\n")
	colorizedLines := make([]string, len(lines))

	for i, line := range lines {
		colorizedLines[i] = color.New(colorToUse).SprintFunc()(line)
	}

	return colorizedLines
}

func debugColorize(fstring string, args ...any) []string {
	return colorize(color.FgCyan, fstring, args...)
}

func errorColorize(fstring string, args ...any) []string {
	return colorize(color.FgHiRed, fstring, args...)
}

func yellowColorize(fstring string, args ...any) []string {
	return colorize(color.FgYellow, fstring, args...)
}

// syncWriter serializes writes from concurrently Clone()-d loggers sharing
// one underlying writer, e.g. a driver, a capturer and the orchestrator
// logging about the same spawn from different goroutines.
type syncWriter struct {
	mu     sync.Mutex
	writer io.Writer
}

func (s *syncWriter) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writer.Write(p)
}

// Logger is a thin, colorized wrapper around log.Logger. A nil *Logger is
// valid and every method on it is a no-op: callers in this library pass
// around an optional logger rather than threading a present/absent flag
// through every function signature.
type Logger struct {
	// IsDebug enables Debugf output.
	IsDebug bool

	prefix            string
	secondaryPrefixes []string
	logger            log.Logger
	outputWriter      *syncWriter
}

// New returns a Logger writing to stderr with the given prefix.
// Diagnostic tracing belongs on stderr, not stdout, since a captured
// stdout sink must see only the child's own output.
func New(isDebug bool, prefix string) *Logger {
	color.NoColor = false
	sharedWriter := &syncWriter{writer: os.Stderr}
	coloredPrefix := yellowColorize("%s", prefix)[0]
	return &Logger{
		logger:       *log.New(sharedWriter, coloredPrefix, 0),
		IsDebug:      isDebug,
		prefix:       prefix,
		outputWriter: sharedWriter,
	}
}

// Clone returns a copy that shares the underlying writer (so output stays
// serialized) but has its own secondary-prefix stack, for use by a single
// spawn's orchestrator without mutating a shared parent logger.
func (l *Logger) Clone() *Logger {
	if l == nil {
		return nil
	}

	secondaryPrefixesCopy := make([]string, len(l.secondaryPrefixes))
	copy(secondaryPrefixesCopy, l.secondaryPrefixes)

	cloned := &Logger{
		IsDebug:           l.IsDebug,
		prefix:            l.prefix,
		secondaryPrefixes: secondaryPrefixesCopy,
		outputWriter:      l.outputWriter,
	}
	cloned.logger = *log.New(cloned.outputWriter, "", 0)
	cloned.updateLoggerPrefix()
	return cloned
}

// WithSecondaryPrefix returns a clone scoped with an additional prefix
// segment, e.g. a pid, so every log line from one spawn's lifecycle is
// visually grouped without requiring the caller to format it into every
// message.
func (l *Logger) WithSecondaryPrefix(prefix string) *Logger {
	if l == nil {
		return nil
	}
	clone := l.Clone()
	clone.secondaryPrefixes = append(clone.secondaryPrefixes, prefix)
	clone.updateLoggerPrefix()
	return clone
}

func (l *Logger) updateLoggerPrefix() {
	if len(l.secondaryPrefixes) == 0 {
		l.logger.SetPrefix(yellowColorize("%s", l.prefix)[0])
		return
	}

	fullPrefix := l.prefix
	for _, secondaryPrefix := range l.secondaryPrefixes {
		fullPrefix += fmt.Sprintf("[%s] ", secondaryPrefix)
	}
	l.logger.SetPrefix(yellowColorize("%s", fullPrefix)[0])
}

func (l *Logger) Debugf(fstring string, args ...any) {
	if l == nil || !l.IsDebug {
		return
	}
	for _, line := range debugColorize(fstring, args...) {
		l.logger.Println(line)
	}
}

func (l *Logger) Errorf(fstring string, args ...any) {
	if l == nil {
		return
	}
	for _, line := range errorColorize(fstring, args...) {
		l.logger.Println(line)
	}
}
