// Package slog provides logging decorators for chatwatch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/chatwatch"
)

// Ensure LoggingSource implements chatwatch.SnapshotSource.
var _ chatwatch.SnapshotSource = (*LoggingSource)(nil)

// LoggingSource wraps a SnapshotSource with debug logging.
type LoggingSource struct {
	next   chatwatch.SnapshotSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next chatwatch.SnapshotSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// CurrentSnapshot logs the size and fingerprint of each snapshot at debug
// level and delegates to the wrapped source. Nothing is hashed when debug
// logging is disabled.
func (s *LoggingSource) CurrentSnapshot(ctx context.Context) (snap chatwatch.Snapshot, err error) {
	if !s.logger.Enabled(ctx, slog.LevelDebug) {
		return s.next.CurrentSnapshot(ctx)
	}
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "snapshot",
			"messages", len(snap),
			"fingerprint", snap.Fingerprint(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CurrentSnapshot(ctx)
}
