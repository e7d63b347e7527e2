package main

import (
	"fmt"

	"github.com/fwojciec/chatwatch"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return chatwatch.Errorf(chatwatch.EINVALID, "use --force to confirm deletion")
	}

	chat, err := findChat(deps, c.Name)
	if err != nil {
		return err
	}

	if err := deps.Chats.DeleteChat(deps.Ctx, chat.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatwatch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted chat %q\n", chat.Name)
	return nil
}

// findChat looks up a chat by name and reports a hint when it is missing.
func findChat(deps *Dependencies, name string) (*chatwatch.Chat, error) {
	chats, err := deps.Chats.FindChats(deps.Ctx, chatwatch.ChatFilter{Name: &name, Limit: 1})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatwatch.ErrorMessage(err))
		return nil, err
	}
	if len(chats) == 0 {
		fmt.Fprintf(deps.Stderr, "error: chat %q not found. Use 'chatwatch list' to see registered chats.\n", name)
		return nil, chatwatch.Errorf(chatwatch.ENOTFOUND, "chat %q not found", name)
	}
	return chats[0], nil
}
