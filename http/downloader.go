// Package http downloads files referenced from chat messages over HTTP.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/chatwatch"
)

// DefaultFetchTimeout is the default timeout for a single download attempt.
const DefaultFetchTimeout = 30 * time.Second

// tempNameLayout formats the default file name when no destination is given.
const tempNameLayout = "2006-01-02_15.04.05"

// Ensure Downloader implements chatwatch.Downloader at compile time.
var _ chatwatch.Downloader = (*Downloader)(nil)

// Downloader saves remote files to disk.
type Downloader struct {
	client  *http.Client
	timeout time.Duration
	delays  []time.Duration
	logger  LogFunc
	now     func() time.Time
	dir     func() (string, error)
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithTimeout sets the timeout for each download attempt.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(dl *Downloader) {
		dl.timeout = d
	}
}

// WithRetryDelays sets the waits between attempts.
// Defaults to DefaultRetryDelays. An empty slice disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(dl *Downloader) {
		dl.delays = delays
	}
}

// WithLogger reports retries through fn.
func WithLogger(fn LogFunc) Option {
	return func(dl *Downloader) {
		dl.logger = fn
	}
}

// WithClock overrides the clock used to name files without a destination.
func WithClock(now func() time.Time) Option {
	return func(dl *Downloader) {
		dl.now = now
	}
}

// WithDir sets the directory used for files without a destination.
// Defaults to the working directory.
func WithDir(dir string) Option {
	return func(dl *Downloader) {
		dl.dir = func() (string, error) { return dir, nil }
	}
}

// NewDownloader creates a new Downloader.
func NewDownloader(opts ...Option) *Downloader {
	dl := &Downloader{
		timeout: DefaultFetchTimeout,
		delays:  DefaultRetryDelays(),
		now:     time.Now,
		dir:     os.Getwd,
	}
	for _, opt := range opts {
		opt(dl)
	}

	dl.client = &http.Client{
		Timeout: dl.timeout,
	}

	return dl
}

// Download fetches rawURL and writes it to dest with an extension taken
// from the URL appended. When dest is empty the file is written to
// tempfile_<timestamp> in the download directory.
// Returns the name of the written file.
func (dl *Downloader) Download(ctx context.Context, rawURL, dest string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", chatwatch.Errorf(chatwatch.EINVALID, "invalid download URL %q", rawURL)
	}

	if dest == "" {
		dir, err := dl.dir()
		if err != nil {
			return "", fmt.Errorf("resolving download directory: %w", err)
		}
		dest = filepath.Join(dir, "tempfile_"+dl.now().Format(tempNameLayout))
	}
	filename := dest + Extension(rawURL)

	err = withRetry(ctx, dl.delays, dl.logger, func(ctx context.Context) error {
		return dl.fetch(ctx, rawURL, filename)
	})
	if err != nil {
		return "", err
	}
	return filename, nil
}

// StatusError reports a response other than 200 OK.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// Temporary reports whether the request may succeed if repeated.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// fetch streams rawURL into filename. The file is only created once the
// server answers 200 and is removed again if the body cannot be copied.
func (dl *Downloader) fetch(ctx context.Context, rawURL, filename string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return permanent(err)
	}

	resp, err := dl.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{StatusCode: resp.StatusCode, URL: rawURL}
		if !statusErr.Temporary() {
			return permanent(statusErr)
		}
		return statusErr
	}

	f, err := os.Create(filename)
	if err != nil {
		return permanent(fmt.Errorf("creating %s: %w", filename, err))
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(filename)
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(filename)
		return permanent(fmt.Errorf("writing %s: %w", filename, err))
	}
	return nil
}

// Extension returns the file extension for a download URL. Image CDNs put
// ".jpg" in the middle of the path or query, so any URL containing it is
// treated as a JPEG; otherwise the extension of the URL path is used.
func Extension(rawURL string) string {
	if strings.Contains(rawURL, ".jpg") {
		return ".jpg"
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return path.Ext(u.Path)
}
