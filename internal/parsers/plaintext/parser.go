package plaintext

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
	"github.com/gfarchive/guidevault/internal/parsers/heuristics"
)

// Parser handles plain text guides, the archive's dominant format. It is
// also the fallback for unrecognised extensions.
type Parser struct{}

// New creates a new plain text parser.
func New() *Parser {
	return &Parser{}
}

// Parse extracts a guide from raw text. Blank files produce a placeholder
// title and content rather than an error.
func (p *Parser) Parse(path string, content []byte) (*driven.ParsedGuide, error) {
	text := string(content)
	base := filepath.Base(path)

	if strings.TrimSpace(text) == "" {
		return Placeholder(path, domain.FormatText), nil
	}

	return &driven.ParsedGuide{
		Title:    heuristics.InferTitle(text, base),
		Content:  text,
		Format:   domain.FormatText,
		Metadata: heuristics.Extract(text, base),
	}, nil
}

// Placeholder builds the guide record used for empty or unparseable
// inputs: a filename-derived title and a body naming the file.
func Placeholder(path string, format domain.GuideFormat) *driven.ParsedGuide {
	base := filepath.Base(path)
	return &driven.ParsedGuide{
		Title:    heuristics.FromFilename(base),
		Content:  fmt.Sprintf("(empty guide file: %s)", base),
		Format:   format,
		Metadata: map[string]any{},
	}
}
