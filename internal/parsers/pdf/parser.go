package pdf

import (
	"fmt"
	"path/filepath"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
	"github.com/gfarchive/guidevault/internal/parsers/heuristics"
)

// Parser registers PDF guides without extracting their text. The record
// carries a filename-derived title and a body pointing at the source
// file; text extraction is a separate concern.
type Parser struct{}

// New creates a new PDF parser.
func New() *Parser {
	return &Parser{}
}

// Parse builds a placeholder guide for a PDF file.
func (p *Parser) Parse(path string, _ []byte) (*driven.ParsedGuide, error) {
	base := filepath.Base(path)
	return &driven.ParsedGuide{
		Title:    heuristics.FromFilename(base),
		Content:  fmt.Sprintf("(PDF guide: %s, open the original file to read)", base),
		Format:   domain.FormatPDF,
		Metadata: heuristics.Extract("", base),
	}, nil
}
