package mock

import "github.com/fwojciec/chatwatch"

var _ chatwatch.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of chatwatch.Clipboard.
type Clipboard struct {
	ReadAllFn  func() (string, error)
	WriteAllFn func(text string) error
}

func (c *Clipboard) ReadAll() (string, error) {
	return c.ReadAllFn()
}

func (c *Clipboard) WriteAll(text string) error {
	return c.WriteAllFn(text)
}

// MemoryClipboard is an in-memory chatwatch.Clipboard that records writes.
type MemoryClipboard struct {
	Contents string
	Writes   []string
}

func (c *MemoryClipboard) ReadAll() (string, error) {
	return c.Contents, nil
}

func (c *MemoryClipboard) WriteAll(text string) error {
	c.Contents = text
	c.Writes = append(c.Writes, text)
	return nil
}
