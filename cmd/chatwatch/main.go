package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/chatwatch"
	"github.com/fwojciec/chatwatch/clipboard"
	"github.com/fwojciec/chatwatch/goquery"
	"github.com/fwojciec/chatwatch/html"
	cwhttp "github.com/fwojciec/chatwatch/http"
	"github.com/fwojciec/chatwatch/rod"
	cwslog "github.com/fwojciec/chatwatch/slog"
	"github.com/fwojciec/chatwatch/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Password used when the chat site asks for a login.
	Password string

	// Stdin is read by the interactive login prompt.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ChatService chatwatch.ChatService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:   defaultDBPath(),
		Password: os.Getenv("CHATWATCH_PASSWORD"),
		Stdin:    os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("chatwatch"),
		kong.Description("Watch a web chat for new messages and reply to it."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'chatwatch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CHATWATCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ChatService = sqlite.NewChatService(m.DB)
	deps.DB = m.DB
	deps.Chats = m.ChatService
	deps.Downloader = cwhttp.NewDownloader(cwhttp.WithLogger(func(format string, args ...any) {
		deps.Logger.Warn(fmt.Sprintf(format, args...))
	}))
	deps.OpenChat = func(chat *chatwatch.Chat) (*Conn, error) {
		return m.openChat(chat, deps.Logger, cli)
	}

	return kongCtx.Run(deps)
}

// openChat launches a browser for chat and wires the snapshot source and
// sender on top of it.
func (m *Main) openChat(chat *chatwatch.Chat, logger *slog.Logger, cli *CLI) (*Conn, error) {
	session, err := rod.NewSession(chat,
		rod.WithPassword(m.Password),
		rod.WithNavigationTimeout(cli.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	parser := goquery.NewFeedParser(html.NewExtractor(), goquery.DefaultSelectors())

	senderOpts := []rod.SenderOption{rod.WithSendRate(cli.SendRate)}
	if cb, err := clipboard.New(); err == nil {
		senderOpts = append(senderOpts, rod.WithClipboard(cb))
	} else {
		logger.Debug("clipboard unavailable", "err", err)
	}

	return &Conn{
		Session: cwslog.NewLoggingSession(session, logger),
		Source:  cwslog.NewLoggingSource(rod.NewSource(session, parser), logger),
		Sender:  cwslog.NewLoggingSender(rod.NewSender(session, senderOpts...), logger),
	}, nil
}

func defaultDBPath() string {
	if path := os.Getenv("CHATWATCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "chatwatch.db"
	}
	dir := filepath.Join(home, ".chatwatch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "chatwatch.db")
}
