package main

import (
	"fmt"

	"github.com/fwojciec/chatwatch"
)

// Run executes the download command.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	filename, err := deps.Downloader.Download(deps.Ctx, c.URL, c.Out)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatwatch.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, filename)
	return nil
}
