package driven

import "context"

// DownloadProgress reports bytes streamed to disk so far.
type DownloadProgress struct {
	// Bytes is the number of bytes written so far.
	Bytes int64

	// Total is the expected payload size, or zero when the remote server
	// does not report one.
	Total int64

	// Percent is Bytes/Total as 0-100, or zero when Total is unknown.
	Percent float64
}

// DownloadProgressFunc receives rate-limited progress updates plus one
// final call when the download finishes.
type DownloadProgressFunc func(p DownloadProgress)

// Downloader streams a remote resource to a local file.
type Downloader interface {
	// Download streams url to dest. On any failure the partial file is
	// removed before the error is returned; a file at dest implies a
	// complete download.
	Download(ctx context.Context, url, dest string, onProgress DownloadProgressFunc) error
}
