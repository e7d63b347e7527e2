package main

import (
	"fmt"

	"github.com/fwojciec/chatwatch"
)

// Run executes the send command.
func (c *SendCmd) Run(deps *Dependencies) error {
	return withChat(deps, c.Name, func(conn *Conn) error {
		send := conn.Sender.Send
		if c.Rich {
			send = conn.Sender.SendRich
		}
		if err := send(deps.Ctx, c.Text); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", chatwatch.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Sent message to %q\n", c.Name)
		return nil
	})
}

// Run executes the attach command.
func (c *AttachCmd) Run(deps *Dependencies) error {
	return withChat(deps, c.Name, func(conn *Conn) error {
		if err := conn.Sender.SendAttachment(deps.Ctx, c.File); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", chatwatch.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Sent %s to %q\n", c.File, c.Name)
		return nil
	})
}

// withChat opens the named chat, runs fn and closes the browser.
func withChat(deps *Dependencies, name string, fn func(conn *Conn) error) error {
	chat, err := findChat(deps, name)
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
	return fn(conn)
}
