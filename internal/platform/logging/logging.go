package logging

import (
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"
)

// New returns the application logger, writing to <workspace>/.senscal/senscal.log.
// Logging must never break the tool: if the log file cannot be opened the
// logger silently discards output.
func New(workspacePath string) hclog.Logger {
	var sink io.Writer = io.Discard
	dir := filepath.Join(workspacePath, ".senscal")
	if err := os.MkdirAll(dir, 0o755); err == nil {
		if f, err := os.OpenFile(filepath.Join(dir, "senscal.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			sink = f
		}
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "senscal",
		Level:  hclog.Info,
		Output: sink,
	})
}

// Nop returns a logger that discards everything, for tests.
func Nop() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel})
}
