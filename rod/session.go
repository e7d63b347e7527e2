// Package rod drives the chat web client through Chrome using go-rod.
package rod

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/chatwatch"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultLoginURL is the prefix of the page the chat site redirects to when
// the session is not authenticated.
const DefaultLoginURL = "https://www.messenger.com/login.php"

// DefaultNavigationTimeout bounds navigation and login.
const DefaultNavigationTimeout = 30 * time.Second

// userAgent is sent instead of the headless default, which some chat
// sites refuse to serve.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/87.0.4280.88 Safari/537.36"

// Ensure Session implements chatwatch.Session at compile time.
var _ chatwatch.Session = (*Session)(nil)

// Session is a Chrome instance with a single tab bound to one chat.
// Session is not safe for concurrent navigation; Source and Sender share
// its tab and are expected to be driven from one goroutine.
type Session struct {
	chat       *chatwatch.Chat
	password   string
	loginURL   string
	navTimeout time.Duration

	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	closed   atomic.Bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPassword sets the password used by Login.
func WithPassword(password string) SessionOption {
	return func(s *Session) {
		s.password = password
	}
}

// WithLoginURL overrides DefaultLoginURL.
func WithLoginURL(prefix string) SessionOption {
	return func(s *Session) {
		s.loginURL = prefix
	}
}

// WithNavigationTimeout overrides DefaultNavigationTimeout.
func WithNavigationTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.navTimeout = d
	}
}

// NewSession launches Chrome for chat and opens a blank tab.
// The chat's ProfilePath, if set, is used as the Chrome user data
// directory so logins persist between runs.
// Close must be called when the Session is no longer needed.
func NewSession(chat *chatwatch.Chat, opts ...SessionOption) (*Session, error) {
	if err := chat.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		chat:       chat,
		loginURL:   DefaultLoginURL,
		navTimeout: DefaultNavigationTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.launch(); err != nil {
		return nil, err
	}
	return s, nil
}

// launch starts the browser with stability flags and opens the tab.
func (s *Session) launch() error {
	lnchr := launcher.New().
		Set("user-agent", userAgent).
		Set("no-first-run").
		Set("no-service-autorun").
		Set("password-store", "basic").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(s.chat.Headless)
	if s.chat.ProfilePath != "" {
		lnchr = lnchr.UserDataDir(s.chat.ProfilePath)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		lnchr.Kill()
		return fmt.Errorf("opening tab: %w", err)
	}

	s.browser = browser
	s.launcher = lnchr
	s.page = page
	return nil
}

// GoToChat navigates to the chat and logs in if the site redirects to its
// login page.
func (s *Session) GoToChat(ctx context.Context) error {
	if s.closed.Load() {
		return chatwatch.Errorf(chatwatch.EINVALID, "session closed")
	}

	ctx, cancel := context.WithTimeout(ctx, s.navTimeout)
	defer cancel()
	page := s.page.Context(ctx)

	if err := page.Navigate(s.chat.URL); err != nil {
		return fmt.Errorf("navigating to chat: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("loading chat: %w", err)
	}

	current, err := currentURL(page)
	if err != nil {
		return err
	}
	if strings.HasPrefix(current, s.loginURL) {
		return s.Login(ctx)
	}
	return nil
}

// Login fills in the login form with the chat's email and the configured
// password, ticks "keep me signed in" when present and submits.
// Every failure to log in, including missing credentials, a page without
// the expected form and a submit that does not land on the chat, returns
// EUNAUTHORIZED.
func (s *Session) Login(ctx context.Context) error {
	if s.closed.Load() {
		return chatwatch.Errorf(chatwatch.EINVALID, "session closed")
	}
	if s.chat.Email == "" || s.password == "" {
		return chatwatch.Errorf(chatwatch.EUNAUTHORIZED, "login requires an email and a password")
	}

	ctx, cancel := context.WithTimeout(ctx, s.navTimeout)
	defer cancel()
	page := s.page.Context(ctx)

	email, err := page.Element("#email")
	if err != nil {
		return loginFailed("finding email field", err)
	}
	if err := replaceText(email, s.chat.Email); err != nil {
		return loginFailed("entering email", err)
	}

	pass, err := page.Element("#pass")
	if err != nil {
		return loginFailed("finding password field", err)
	}
	if err := replaceText(pass, s.password); err != nil {
		return loginFailed("entering password", err)
	}

	if ok, persistent, err := page.Has(`input[name="persistent"] + span`); err == nil && ok {
		if err := persistent.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return loginFailed("ticking keep me signed in", err)
		}
	}

	wait := page.WaitNavigation(proto.PageLifecycleEventNameLoad)
	if err := pass.Type(input.Enter); err != nil {
		return loginFailed("submitting login", err)
	}
	wait()

	current, err := currentURL(page)
	if err != nil {
		return loginFailed("checking login result", err)
	}
	if current != s.chat.URL {
		return chatwatch.Errorf(chatwatch.EUNAUTHORIZED, "login did not reach the chat (now at %s)", current)
	}
	return nil
}

// loginFailed reports a browser failure during login as EUNAUTHORIZED.
func loginFailed(step string, err error) error {
	return chatwatch.Errorf(chatwatch.EUNAUTHORIZED, "%s: %v", step, err)
}

// Close releases browser resources. Close is safe to call multiple times.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}

// tab returns the session's tab bound to ctx.
func (s *Session) tab(ctx context.Context) (*rod.Page, error) {
	if s.closed.Load() {
		return nil, chatwatch.Errorf(chatwatch.EINVALID, "session closed")
	}
	return s.page.Context(ctx), nil
}

func currentURL(page *rod.Page) (string, error) {
	info, err := page.Info()
	if err != nil {
		return "", fmt.Errorf("reading page URL: %w", err)
	}
	return info.URL, nil
}

// replaceText clears a form field and types text into it.
func replaceText(el *rod.Element, text string) error {
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(text)
}
