package errlog

import (
	"fmt"

	"github.com/spf13/afero"
)

// NewSink constructs a Sink by kind: "file", "memory" or "none".
// For the file sink, path names the log on the OS filesystem. The memory
// sink keeps the log in an in-process filesystem.
func NewSink(kind, path string) (Sink, error) {
	switch kind {
	case "file":
		if path == "" {
			return nil, fmt.Errorf("log path required for file error log")
		}
		return NewFileLog(afero.NewOsFs(), path), nil
	case "memory", "mem":
		return NewFileLog(afero.NewMemMapFs(), path), nil
	case "none", "":
		return Discard, nil
	default:
		return nil, fmt.Errorf("unknown error log kind: %s", kind)
	}
}
