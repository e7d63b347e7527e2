package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/chatwatch"
)

// Ensure LoggingSession implements chatwatch.Session.
var _ chatwatch.Session = (*LoggingSession)(nil)

// LoggingSession wraps a Session and logs navigation and login attempts.
type LoggingSession struct {
	next   chatwatch.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next chatwatch.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// GoToChat logs the navigation and delegates to the wrapped session.
func (s *LoggingSession) GoToChat(ctx context.Context) (err error) {
	defer s.log("goto_chat", time.Now(), &err)
	return s.next.GoToChat(ctx)
}

// Login logs the login attempt and delegates to the wrapped session.
func (s *LoggingSession) Login(ctx context.Context) (err error) {
	defer s.log("login", time.Now(), &err)
	return s.next.Login(ctx)
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() error {
	return s.next.Close()
}

func (s *LoggingSession) log(op string, begin time.Time, err *error) {
	s.logger.Info("session",
		"op", op,
		"duration", time.Since(begin),
		"err", *err,
	)
}
