package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/chatwatch"
	"github.com/fwojciec/chatwatch/poll"
)

// Run executes the watch command.
func (c *WatchCmd) Run(deps *Dependencies) error {
	chat, err := findChat(deps, c.Name)
	if err != nil {
		return err
	}

	conn, err := deps.OpenChat(chat)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return err
	}
	defer conn.Close()

	if err := enterChat(deps, conn.Session); err != nil {
		return err
	}

	loop := &poll.Loop{
		Source:         conn.Source,
		Handlers:       poll.DefaultHandlers(deps.Stdout),
		Logger:         deps.Logger,
		PollInterval:   c.Interval,
		MaxNewMessages: c.MaxNew,
		Sleep:          deps.Sleep,
	}
	if err := loop.Run(deps.Ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatwatch.ErrorMessage(err))
		return err
	}
	return nil
}

// enterChat opens the chat page. When the automatic login cannot get there
// the user is asked to log in by hand in the browser window.
func enterChat(deps *Dependencies, session chatwatch.Session) error {
	err := session.GoToChat(deps.Ctx)
	if err == nil {
		return nil
	}
	if chatwatch.ErrorCode(err) != chatwatch.EUNAUTHORIZED {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stderr, "Automatic login failed: %s\n", chatwatch.ErrorMessage(err))
	fmt.Fprint(deps.Stderr, "Log in using the browser window, then press Enter to continue...")
	if _, err := bufio.NewReader(deps.Stdin).ReadString('\n'); err != nil {
		return fmt.Errorf("waiting for manual login: %w", err)
	}

	if err := session.GoToChat(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
