package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/chatwatch"
)

// Ensure LoggingSender implements chatwatch.Sender.
var _ chatwatch.Sender = (*LoggingSender)(nil)

// LoggingSender wraps a Sender with logging.
type LoggingSender struct {
	next   chatwatch.Sender
	logger *slog.Logger
}

// NewLoggingSender creates a new LoggingSender.
func NewLoggingSender(next chatwatch.Sender, logger *slog.Logger) *LoggingSender {
	return &LoggingSender{next: next, logger: logger}
}

// Send logs the plain send and delegates to the wrapped sender.
func (s *LoggingSender) Send(ctx context.Context, text string) (err error) {
	defer s.log("plain", len(text), time.Now(), &err)
	return s.next.Send(ctx, text)
}

// SendRich logs the clipboard send and delegates to the wrapped sender.
func (s *LoggingSender) SendRich(ctx context.Context, text string) (err error) {
	defer s.log("rich", len(text), time.Now(), &err)
	return s.next.SendRich(ctx, text)
}

// SendAttachment logs the upload and delegates to the wrapped sender.
func (s *LoggingSender) SendAttachment(ctx context.Context, path string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("send",
			"kind", "attachment",
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SendAttachment(ctx, path)
}

func (s *LoggingSender) log(kind string, bytes int, begin time.Time, err *error) {
	s.logger.Info("send",
		"kind", kind,
		"bytes", bytes,
		"duration", time.Since(begin),
		"err", *err,
	)
}
