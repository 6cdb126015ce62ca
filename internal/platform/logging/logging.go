// Package logging builds the process logger. The terminal belongs to the UI,
// so records go to a file under the state directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// New opens (appending) the log file at path and returns a logger writing to
// it together with the file so callers can share the writer and close it.
func New(path, level string) (hclog.Logger, io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(f, level), f, nil
}

// NewWriter returns a logger named "airtime" writing to w.
func NewWriter(w io.Writer, level string) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "airtime",
		Level:      lvl,
		Output:     w,
		JSONFormat: false,
	})
}
