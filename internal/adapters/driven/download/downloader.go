// Package download streams remote archives to disk with rate-limited
// progress reporting. Failed downloads never leave a partial file behind:
// the destination existing means the payload arrived whole.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/gfarchive/guidevault/internal/core/ports/driven"
	"github.com/gfarchive/guidevault/internal/logger"
)

// progressInterval bounds how often the progress callback fires. The
// final callback after the last byte always fires.
const progressInterval = 500 * time.Millisecond

const copyBufferSize = 32 * 1024

// Ensure Client implements the driven port.
var _ driven.Downloader = (*Client)(nil)

// Client downloads archives over HTTP.
type Client struct {
	http *http.Client
}

// New creates a download client. A nil httpClient selects a default with
// no overall timeout; archive downloads run long and are cancelled
// through the context instead.
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{http: httpClient}
}

// Download streams url to dest. Progress callbacks are throttled to one
// per progressInterval plus a final call when the stream ends. On any
// failure the partial file is removed before returning.
func (c *Client) Download(ctx context.Context, url, dest string, onProgress driven.DownloadProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building download request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}
	logger.Debug("download: %s, %s expected", url, sizeLabel(total))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}

	written, copyErr := c.copy(out, resp.Body, total, onProgress)
	closeErr := out.Close()

	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr == nil && total > 0 && written != total {
		copyErr = fmt.Errorf("short read: got %d of %d bytes", written, total)
	}
	if copyErr != nil {
		if rmErr := os.Remove(dest); rmErr != nil {
			logger.Warn("download: removing partial file %s: %v", dest, rmErr)
		}
		return fmt.Errorf("downloading %s: %w", url, copyErr)
	}

	logger.Info("download: wrote %s to %s", humanize.Bytes(uint64(written)), dest)
	if onProgress != nil {
		onProgress(progress(written, total))
	}
	return nil
}

func (c *Client) copy(out *os.File, body io.Reader, total int64, onProgress driven.DownloadProgressFunc) (int64, error) {
	throttle := rate.Sometimes{Interval: progressInterval}
	buf := make([]byte, copyBufferSize)
	var written int64

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := out.Write(buf[:n]); err != nil {
				return written, err
			}
			written += int64(n)
			if onProgress != nil {
				throttle.Do(func() { onProgress(progress(written, total)) })
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}

func progress(written, total int64) driven.DownloadProgress {
	p := driven.DownloadProgress{Bytes: written, Total: total}
	if total > 0 {
		p.Percent = float64(written) / float64(total) * 100
	}
	return p
}

func sizeLabel(total int64) string {
	if total == 0 {
		return "unknown size"
	}
	return humanize.Bytes(uint64(total))
}
