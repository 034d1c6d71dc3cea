package html

import (
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
	"github.com/gfarchive/guidevault/internal/parsers/heuristics"
	"github.com/gfarchive/guidevault/internal/parsers/plaintext"
)

// Parser handles HTML guides: tags are stripped down to readable text.
type Parser struct{}

// New creates a new HTML parser.
func New() *Parser {
	return &Parser{}
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	titleTag      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	h1Tag         = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	brTags        = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// Parse extracts a guide from an HTML page. The title comes from the
// <title> tag or the first <h1>; the content is the page text with
// markup stripped.
func (p *Parser) Parse(path string, content []byte) (*driven.ParsedGuide, error) {
	raw := string(content)
	base := filepath.Base(path)

	text := stripHTML(raw)
	if strings.TrimSpace(text) == "" {
		return plaintext.Placeholder(path, domain.FormatHTML), nil
	}

	title := extractTitle(raw)
	if title == "" {
		title = heuristics.InferTitle(text, base)
	}

	return &driven.ParsedGuide{
		Title:    title,
		Content:  text,
		Format:   domain.FormatHTML,
		Metadata: heuristics.Extract(text, base),
	}, nil
}

// extractTitle pulls a title from the <title> tag or the first <h1>.
func extractTitle(raw string) string {
	for _, pattern := range []*regexp.Regexp{titleTag, h1Tag} {
		matches := pattern.FindStringSubmatch(raw)
		if len(matches) < 2 {
			continue
		}
		title := allTags.ReplaceAllString(matches[1], "")
		title = html.UnescapeString(title)
		title = strings.Join(strings.Fields(title), " ")
		if title != "" {
			return title
		}
	}
	return ""
}

// stripHTML removes markup and extracts readable text content.
func stripHTML(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	// Closing block elements and explicit breaks become line breaks.
	content = blockElements.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")

	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	content = multiSpaces.ReplaceAllString(content, " ")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			// Collapse blank-line runs to a single separator.
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}
