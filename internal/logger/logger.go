// Package logger provides verbose logging for ocrhl.
// Messages are only written when verbose mode is enabled with the
// --verbose flag, so the search pipeline can be traced without cluttering
// normal output.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type level string

const (
	levelDebug level = "DEBUG"
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the writer for verbose logs. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Writers hold the exclusive lock so concurrent messages never interleave.
func logf(l level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, "[%s] %s\n", l, fmt.Sprintf(format, args...))
}

// Debug logs pipeline details such as request parameters.
func Debug(format string, args ...any) {
	logf(levelDebug, format, args...)
}

// Info logs pipeline milestones.
func Info(format string, args ...any) {
	logf(levelInfo, format, args...)
}

// Warn logs recoverable problems, like documents that were skipped.
func Warn(format string, args ...any) {
	logf(levelWarn, format, args...)
}

// Section prints a header separating pipeline stages.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Timed logs the duration of a stage when the returned function is called:
//
//	defer logger.Timed("solr select")()
func Timed(name string) func() {
	start := time.Now()
	return func() {
		Debug("%s took %s", name, time.Since(start).Round(time.Microsecond))
	}
}
