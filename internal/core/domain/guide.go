package domain

import "time"

// GuideFormat identifies the source format of an imported guide.
type GuideFormat string

const (
	// FormatText is a plain text guide, the archive's dominant format.
	FormatText GuideFormat = "txt"

	// FormatHTML is a guide imported from an HTML page.
	FormatHTML GuideFormat = "html"

	// FormatMarkdown is a guide written in Markdown.
	FormatMarkdown GuideFormat = "markdown"

	// FormatPDF is a PDF guide. Text extraction is not implemented;
	// PDF guides carry a placeholder body naming the source file.
	FormatPDF GuideFormat = "pdf"
)

// Valid reports whether the format is one of the enumerated tags.
func (f GuideFormat) Valid() bool {
	switch f {
	case FormatText, FormatHTML, FormatMarkdown, FormatPDF:
		return true
	}
	return false
}

// Guide represents a single imported guide document.
type Guide struct {
	// ID is the unique identifier for the guide.
	ID string

	// GameID links to the owning Game, if one was resolved during import.
	GameID *string

	// Title is the human-readable title, inferred at import time.
	Title string

	// Content is the full text content. Immutable after import except
	// through explicit update operations.
	Content string

	// Format is the source format tag.
	Format GuideFormat

	// SourcePath is the originating file path. Retained for traceability;
	// the file itself is deleted once the guide is committed.
	SourcePath string

	// LastReadPosition is the client's read cursor into Content.
	LastReadPosition int

	// Metadata is an opaque blob: platform, author, version, tags, and
	// any enrichment fields written by external consumers.
	Metadata map[string]any

	// CreatedAt is when the guide was imported.
	CreatedAt time.Time

	// UpdatedAt is when the guide was last updated.
	UpdatedAt time.Time
}

// Tags returns the tag list from the metadata blob. Both []string and
// []any element types are accepted because JSON round-trips produce the
// latter.
func (g *Guide) Tags() []string {
	if g.Metadata == nil {
		return nil
	}
	switch v := g.Metadata["tags"].(type) {
	case []string:
		return v
	case []any:
		tags := make([]string, 0, len(v))
		for _, t := range v {
			if s, ok := t.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	}
	return nil
}
