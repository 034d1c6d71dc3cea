package markdown

import (
	"path/filepath"
	"strings"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
	"github.com/gfarchive/guidevault/internal/parsers/heuristics"
	"github.com/gfarchive/guidevault/internal/parsers/plaintext"
)

// Parser handles markdown guides. Content is kept verbatim; only the
// title is lifted from the first top-level heading.
type Parser struct{}

// New creates a new markdown parser.
func New() *Parser {
	return &Parser{}
}

const headingScanLines = 30

// Parse extracts a guide from markdown source. The title is the first
// `# ` heading near the top of the file, falling back to the filename.
func (p *Parser) Parse(path string, content []byte) (*driven.ParsedGuide, error) {
	text := string(content)
	base := filepath.Base(path)

	if strings.TrimSpace(text) == "" {
		return plaintext.Placeholder(path, domain.FormatMarkdown), nil
	}

	title := firstHeading(text)
	if title == "" {
		title = heuristics.FromFilename(base)
	}

	return &driven.ParsedGuide{
		Title:    title,
		Content:  text,
		Format:   domain.FormatMarkdown,
		Metadata: heuristics.Extract(text, base),
	}, nil
}

// firstHeading returns the text of the first `# ` heading within the
// opening lines, or "" when none is present.
func firstHeading(text string) string {
	for i, line := range strings.SplitN(text, "\n", headingScanLines+1) {
		if i >= headingScanLines {
			break
		}
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "# "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}
