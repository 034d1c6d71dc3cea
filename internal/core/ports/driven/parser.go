package driven

import "github.com/gfarchive/guidevault/internal/core/domain"

// ParsedGuide is the output of parsing one guide file.
type ParsedGuide struct {
	// Title is the inferred guide title. Never empty.
	Title string

	// Content is the extracted text content. Never empty; unreadable or
	// blank inputs yield a placeholder.
	Content string

	// Format is the detected source format.
	Format domain.GuideFormat

	// Metadata holds extracted author, version, platform, and tags.
	Metadata map[string]any
}

// GuideParser turns guide files into structured records. Parsing is
// deterministic for identical byte content.
type GuideParser interface {
	// Supported reports whether the file's extension is in the importable
	// set.
	Supported(path string) bool

	// ParseFile reads and parses the file at path. The format is decided
	// solely by extension; unrecognised extensions parse as plain text.
	ParseFile(path string) (*ParsedGuide, error)
}
