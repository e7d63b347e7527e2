package rod

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/chatwatch"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/time/rate"
)

// DefaultSendTimeout bounds a single send, including waiting for the send
// button to become clickable.
const DefaultSendTimeout = 10 * time.Second

// Selectors used by the Messenger composer.
const (
	messageFieldSelector = `[aria-label="Message"]`
	sendButtonSelector   = `[aria-label="Press Enter to send"]`
	fileInputSelector    = `input[type="file"]`
)

// Ensure Sender implements chatwatch.Sender at compile time.
var _ chatwatch.Sender = (*Sender)(nil)

// Sender posts messages through the chat composer of a Session.
type Sender struct {
	session   *Session
	clipboard chatwatch.Clipboard
	limiter   *rate.Limiter
	timeout   time.Duration
}

// SenderOption configures a Sender.
type SenderOption func(*Sender)

// WithClipboard sets the clipboard used by SendRich.
func WithClipboard(cb chatwatch.Clipboard) SenderOption {
	return func(s *Sender) {
		s.clipboard = cb
	}
}

// WithSendRate limits outgoing messages to rps per second with no bursting.
// A rate of zero or less leaves sending unthrottled.
func WithSendRate(rps float64) SenderOption {
	return func(s *Sender) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithSendTimeout overrides DefaultSendTimeout.
func WithSendTimeout(d time.Duration) SenderOption {
	return func(s *Sender) {
		s.timeout = d
	}
}

// NewSender creates a Sender for session.
func NewSender(session *Session, opts ...SenderOption) *Sender {
	s := &Sender{
		session: session,
		timeout: DefaultSendTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send types text into the composer and sends it. Newlines are entered as
// Shift+Enter so the message is not sent early.
func (s *Sender) Send(ctx context.Context, text string) error {
	page, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	field, err := page.Element(messageFieldSelector)
	if err != nil {
		return fmt.Errorf("finding message field: %w", err)
	}

	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			if err := page.KeyActions().Press(input.ShiftLeft).Type(input.Enter).Do(); err != nil {
				return fmt.Errorf("entering line break: %w", err)
			}
		}
		if line == "" {
			continue
		}
		if err := field.Input(line); err != nil {
			return fmt.Errorf("typing message: %w", err)
		}
	}

	return clickSend(page)
}

// SendRich pastes text into the composer through the system clipboard and
// sends it. The operator's clipboard is restored even if pasting fails.
func (s *Sender) SendRich(ctx context.Context, text string) error {
	page, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	field, err := page.Element(messageFieldSelector)
	if err != nil {
		return fmt.Errorf("finding message field: %w", err)
	}
	if err := field.Focus(); err != nil {
		return fmt.Errorf("focusing message field: %w", err)
	}

	if err := chatwatch.WithClipboard(s.clipboard, text, func() error {
		return page.KeyActions().Press(input.ShiftLeft).Type(input.Insert).Do()
	}); err != nil {
		return fmt.Errorf("pasting message: %w", err)
	}

	return clickSend(page)
}

// SendAttachment uploads the file at path and sends it.
func (s *Sender) SendAttachment(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return chatwatch.Errorf(chatwatch.ENOTFOUND, "attachment %q not found", path)
	}

	page, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	upload, err := page.Element(fileInputSelector)
	if err != nil {
		return fmt.Errorf("finding file input: %w", err)
	}
	if err := upload.SetFiles([]string{path}); err != nil {
		return fmt.Errorf("attaching file: %w", err)
	}

	return clickSend(page)
}

// begin waits for the rate limiter and returns the tab bound to a
// timeout context.
func (s *Sender) begin(ctx context.Context) (*rod.Page, context.CancelFunc, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	page, err := s.session.tab(ctx)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return page, cancel, nil
}

// clickSend waits for the send button and clicks it, falling back to a
// DOM click when another element intercepts the pointer.
func clickSend(page *rod.Page) error {
	btn, err := page.Element(sendButtonSelector)
	if err != nil {
		return fmt.Errorf("finding send button: %w", err)
	}
	if err := btn.WaitVisible(); err != nil {
		return fmt.Errorf("waiting for send button: %w", err)
	}
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		if _, jsErr := btn.Eval(`() => this.click()`); jsErr != nil {
			return fmt.Errorf("clicking send button: %w", err)
		}
	}
	return nil
}
