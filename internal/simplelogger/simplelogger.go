package simplelogger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// EnvVar names the log file.
const EnvVar = "MERGEDIFF_LOG_FILE"

var mu sync.Mutex

// New returns a Debug-level text logger that appends to the file named by MERGEDIFF_LOG_FILE. If the variable is unset or empty, the logger discards everything.
//
// The file is opened for each record, so a path that can't be opened as a file drops records rather than failing.
func New() *slog.Logger {
	path := os.Getenv(EnvVar)
	if path == "" {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(appender{path: path}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// appender appends each Write to a file.
type appender struct {
	path string
}

var _ io.Writer = appender{}

func (a appender) Write(p []byte) (int, error) {
	// Serialize open/write/close to reduce interleaving within a single process.
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return len(p), nil
	}
	defer f.Close()
	_, _ = f.Write(p)
	return len(p), nil
}
