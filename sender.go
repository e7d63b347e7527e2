package chatwatch

import "context"

// Sender delivers outgoing messages to the chat.
type Sender interface {
	// Send types the text key by key. Only ordinary characters survive
	// this path; newlines become soft line breaks.
	Send(ctx context.Context, text string) error

	// SendRich pastes the text through the system clipboard so any
	// unicode survives. The previous clipboard contents are restored.
	SendRich(ctx context.Context, text string) error

	// SendAttachment uploads the file at path and sends it.
	SendAttachment(ctx context.Context, path string) error
}

// Session is an authenticated browser session bound to one chat.
type Session interface {
	// GoToChat opens the chat, logging in first if the site asks for it.
	GoToChat(ctx context.Context) error

	// Login submits the configured credentials.
	Login(ctx context.Context) error

	// Close releases browser resources.
	Close() error
}

// Downloader saves remote files locally.
type Downloader interface {
	// Download fetches url and writes it to dest plus an extension derived
	// from the URL. It returns the name of the written file.
	Download(ctx context.Context, url, dest string) (string, error)
}
