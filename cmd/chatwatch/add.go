package main

import (
	"fmt"

	"github.com/fwojciec/chatwatch"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	chat := &chatwatch.Chat{
		Name:        c.Name,
		URL:         c.URL,
		Email:       c.Email,
		ProfilePath: c.Profile,
		Headless:    c.Headless,
	}

	if err := deps.Chats.CreateChat(deps.Ctx, chat); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatwatch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added chat %q (%s)\n", chat.Name, chat.ID)
	return nil
}
