package main

import (
	"fmt"

	"github.com/fwojciec/chatwatch"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	chats, err := deps.Chats.FindChats(deps.Ctx, chatwatch.ChatFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatwatch.ErrorMessage(err))
		return err
	}

	if len(chats) == 0 {
		fmt.Fprintln(deps.Stdout, "No chats found. Use 'chatwatch add' to register one.")
		return nil
	}

	for _, chat := range chats {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", chat.ID, chat.Name, chat.URL)
	}

	return nil
}
