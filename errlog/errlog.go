// Package errlog appends validation failures to a plain text log.
//
// Writes are best effort: a failure to open or write the log is swallowed so
// that logging never replaces or masks the error being reported.
package errlog

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/afero"
)

// DefaultPath is used when no log path is configured.
const DefaultPath = "logs.txt"

// Sink receives errors raised by the store.
type Sink interface {
	Report(err error)
}

// FileLog appends one "ERROR: <message>" line per reported error.
type FileLog struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
}

// compile-time assertion
var _ Sink = (*FileLog)(nil)

// NewFileLog writes to path on fs. An empty path falls back to DefaultPath.
func NewFileLog(fs afero.Fs, path string) *FileLog {
	if path == "" {
		path = DefaultPath
	}
	return &FileLog{fs: fs, path: path}
}

// Path returns the log file location.
func (l *FileLog) Path() string { return l.path }

// Report appends err to the log. Nil errors are ignored.
func (l *FileLog) Report(err error) {
	if err == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	f, ferr := l.fs.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if ferr != nil {
		slog.Debug("error log unavailable", "path", l.path, "error", ferr)
		return
	}
	defer f.Close()
	if _, werr := fmt.Fprintf(f, "ERROR: %s\n", err.Error()); werr != nil {
		slog.Debug("error log write failed", "path", l.path, "error", werr)
	}
}

type discard struct{}

func (discard) Report(error) {}

// Discard drops every report.
var Discard Sink = discard{}

// Raise reports err to sink and hands the same error back, so call sites can
// write `return errlog.Raise(sink, err)`.
func Raise(sink Sink, err error) error {
	if err != nil && sink != nil {
		sink.Report(err)
	}
	return err
}
