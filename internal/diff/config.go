package diff

import (
	"log/slog"
	"time"
)

// DefaultScanLimit is the scan limit interactive callers should use. Diff itself treats a zero ScanLimit as unlimited.
const DefaultScanLimit = 500

// Config bounds the work done by Diff and PresentableDiff. The zero value means "no limits".
type Config struct {
	// ScanLimit bounds the Myers search depth. Regions whose shorter side exceeds 16*ScanLimit, or whose search goes deeper than ScanLimit, are diffed with a cheaper
	// approximate search. Regions whose shorter side exceeds 64*ScanLimit are reported as one span. 0 means unlimited.
	ScanLimit int

	// Timeout is the wall-clock budget for one call. Once it has passed, remaining regions use the approximate search. 0 means no timeout.
	Timeout time.Duration

	// Logger, if set, receives Debug records when the engine degrades.
	Logger *slog.Logger
}
