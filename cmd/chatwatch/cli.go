package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/chatwatch"
	"github.com/fwojciec/chatwatch/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	DB         *sqlite.DB
	Chats      chatwatch.ChatService
	Downloader chatwatch.Downloader

	// OpenChat starts a browser session for chat. The caller closes it.
	OpenChat func(chat *chatwatch.Chat) (*Conn, error)

	// Sleep overrides the watch loop's wait between polls.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Conn bundles the browser-backed services for a single chat.
type Conn struct {
	Session chatwatch.Session
	Source  chatwatch.SnapshotSource
	Sender  chatwatch.Sender
}

// Close closes the underlying session.
func (c *Conn) Close() error {
	return c.Session.Close()
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose  bool          `short:"v" help:"Enable debug logging"`
	SendRate float64       `default:"1" help:"Maximum messages sent per second"`
	Timeout  time.Duration `default:"30s" help:"Browser navigation and login timeout"`

	Add      AddCmd      `cmd:"" help:"Register a chat"`
	List     ListCmd     `cmd:"" help:"List registered chats"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a registered chat"`
	Watch    WatchCmd    `cmd:"" help:"Print new messages as they arrive"`
	Send     SendCmd     `cmd:"" help:"Send a message to a chat"`
	Attach   AttachCmd   `cmd:"" help:"Send a file to a chat"`
	Download DownloadCmd `cmd:"" help:"Download a URL to a file"`
}

// Validate rejects global flag values that would stall the browser commands.
func (c *CLI) Validate() error {
	if c.SendRate <= 0 {
		return chatwatch.Errorf(chatwatch.EINVALID, "--send-rate must be greater than zero")
	}
	if c.Timeout <= 0 {
		return chatwatch.Errorf(chatwatch.EINVALID, "--timeout must be greater than zero")
	}
	return nil
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name     string `arg:"" help:"Chat name"`
	URL      string `arg:"" help:"Chat URL"`
	Email    string `short:"e" help:"Login email"`
	Profile  string `short:"p" help:"Browser profile directory"`
	Headless bool   `help:"Run the browser without a window"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Chat name"`
	Force bool   `help:"Confirm deletion"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Name     string        `arg:"" help:"Chat name"`
	Interval time.Duration `short:"i" default:"100ms" help:"Wait between polls"`
	MaxNew   int           `name:"max-new" default:"5" help:"Largest batch treated as new messages"`
}

// SendCmd is the "send" subcommand.
type SendCmd struct {
	Name string `arg:"" help:"Chat name"`
	Text string `arg:"" help:"Message text"`
	Rich bool   `short:"r" help:"Paste through the clipboard to keep emoji and formatting"`
}

// AttachCmd is the "attach" subcommand.
type AttachCmd struct {
	Name string `arg:"" help:"Chat name"`
	File string `arg:"" type:"existingfile" help:"File to send"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	URL string `arg:"" help:"URL to download"`
	Out string `short:"o" help:"Output path without extension"`
}
