package chatwatch

// Clipboard is the process-wide system clipboard. It is shared with the
// operator, so every write must be paired with a restore.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// WithClipboard places text on the clipboard, runs fn and restores the
// previous clipboard contents on every exit path, including a panic in fn.
// A restore failure is only returned when fn itself succeeded.
func WithClipboard(cb Clipboard, text string, fn func() error) (err error) {
	if cb == nil {
		return Errorf(EINVALID, "clipboard required")
	}

	previous, err := cb.ReadAll()
	if err != nil {
		return err
	}

	defer func() {
		if restoreErr := cb.WriteAll(previous); restoreErr != nil && err == nil {
			err = restoreErr
		}
	}()

	if err := cb.WriteAll(text); err != nil {
		return err
	}

	return fn()
}
