package parsers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gfarchive/guidevault/internal/core/ports/driven"
	"github.com/gfarchive/guidevault/internal/parsers/html"
	"github.com/gfarchive/guidevault/internal/parsers/markdown"
	"github.com/gfarchive/guidevault/internal/parsers/pdf"
	"github.com/gfarchive/guidevault/internal/parsers/plaintext"
)

// FormatParser parses one source format into a guide record.
type FormatParser interface {
	// Parse extracts title, content, format, and metadata from the raw
	// file bytes.
	Parse(path string, content []byte) (*driven.ParsedGuide, error)
}

// Ensure Registry implements the driven port.
var _ driven.GuideParser = (*Registry)(nil)

// Registry dispatches guide files to format parsers by extension.
type Registry struct {
	byExt    map[string]FormatParser
	fallback FormatParser
}

// NewRegistry creates a registry wired with all format parsers.
func NewRegistry() *Registry {
	text := plaintext.New()
	page := html.New()
	md := markdown.New()

	return &Registry{
		byExt: map[string]FormatParser{
			".txt":      text,
			".text":     text,
			".html":     page,
			".htm":      page,
			".md":       md,
			".markdown": md,
			".pdf":      pdf.New(),
		},
		fallback: text,
	}
}

// Supported reports whether the file's extension is in the importable set.
func (r *Registry) Supported(path string) bool {
	_, ok := r.byExt[normalisedExt(path)]
	return ok
}

// ParseFile reads and parses the file at path.
func (r *Registry) ParseFile(path string) (*driven.ParsedGuide, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading guide file: %w", err)
	}
	return r.Parse(path, content)
}

// Parse dispatches raw bytes by the path's extension. Unrecognised
// extensions parse as plain text.
func (r *Registry) Parse(path string, content []byte) (*driven.ParsedGuide, error) {
	parser, ok := r.byExt[normalisedExt(path)]
	if !ok {
		parser = r.fallback
	}
	return parser.Parse(path, content)
}

func normalisedExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
