package mock

import (
	"context"

	"github.com/fwojciec/chatwatch"
)

var _ chatwatch.Sender = (*Sender)(nil)

// Sender is a mock implementation of chatwatch.Sender.
type Sender struct {
	SendFn           func(ctx context.Context, text string) error
	SendRichFn       func(ctx context.Context, text string) error
	SendAttachmentFn func(ctx context.Context, path string) error
}

func (s *Sender) Send(ctx context.Context, text string) error {
	return s.SendFn(ctx, text)
}

func (s *Sender) SendRich(ctx context.Context, text string) error {
	return s.SendRichFn(ctx, text)
}

func (s *Sender) SendAttachment(ctx context.Context, path string) error {
	return s.SendAttachmentFn(ctx, path)
}

var _ chatwatch.Session = (*Session)(nil)

// Session is a mock implementation of chatwatch.Session.
type Session struct {
	GoToChatFn func(ctx context.Context) error
	LoginFn    func(ctx context.Context) error
	CloseFn    func() error
}

func (s *Session) GoToChat(ctx context.Context) error {
	return s.GoToChatFn(ctx)
}

func (s *Session) Login(ctx context.Context) error {
	return s.LoginFn(ctx)
}

func (s *Session) Close() error {
	return s.CloseFn()
}

var _ chatwatch.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of chatwatch.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url, dest string) (string, error)
}

func (d *Downloader) Download(ctx context.Context, url, dest string) (string, error) {
	return d.DownloadFn(ctx, url, dest)
}
