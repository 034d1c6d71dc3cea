package heuristics

import (
	"regexp"
	"strings"
	"unicode"
)

// artScanLines is how many leading lines the ASCII-art detector inspects.
const artScanLines = 100

// artLineThreshold is how many art-dense lines mark the guide as
// containing ASCII art.
const artLineThreshold = 6

// artDensity is the fraction of non-alphanumeric characters above which a
// line counts as art.
const artDensity = 0.30

// tagVocabulary maps content keywords to tags: genre terms, content-type
// terms, and difficulty terms. Hardcoded by design; order is the emitted
// tag order.
var tagVocabulary = []struct {
	keyword string
	tag     string
}{
	// Genres.
	{"rpg", "rpg"},
	{"platformer", "platformer"},
	{"puzzle", "puzzle"},
	{"racing", "racing"},
	{"fighting", "fighting"},
	{"shooter", "shooter"},
	{"strategy", "strategy"},
	{"adventure", "adventure"},
	{"horror", "horror"},
	{"stealth", "stealth"},
	{"sports", "sports"},
	{"simulation", "simulation"},
	// Content types.
	{"walkthrough", "walkthrough"},
	{"faq", "faq"},
	{"cheats", "cheats"},
	{"secrets", "secrets"},
	{"collectibles", "collectibles"},
	{"achievements", "achievements"},
	{"trophies", "trophies"},
	{"speedrun", "speedrun"},
	{"bestiary", "bestiary"},
	{"boss", "bosses"},
	// Difficulty.
	{"beginner", "beginner"},
	{"advanced", "advanced"},
	{"expert", "expert"},
}

var tagPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(tagVocabulary))
	for i, entry := range tagVocabulary {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(entry.keyword) + `\b`)
	}
	return patterns
}()

// filenameSeparators collapses underscores, dashes and dots so the
// word-boundary patterns see snake_case filenames as separate words.
var filenameSeparators = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// AutoTags scans the head of the content plus the filename for vocabulary
// hits and runs the ASCII-art detector. Tags come back in vocabulary
// order, each at most once.
func AutoTags(content, filename string) []string {
	haystack := head(content, ScanWindow) + "\n" + filenameSeparators.ReplaceAllString(filename, " ")

	var tags []string
	for i, pattern := range tagPatterns {
		if pattern.MatchString(haystack) {
			tags = append(tags, tagVocabulary[i].tag)
		}
	}

	if ASCIIArtHeavy(content) {
		tags = append(tags, "ascii-art")
	}
	return tags
}

// ASCIIArtHeavy reports whether the leading lines of the content look
// like ASCII art: enough lines whose non-alphanumeric density crosses the
// threshold.
func ASCIIArtHeavy(content string) bool {
	lines := strings.SplitN(content, "\n", artScanLines+1)
	if len(lines) > artScanLines {
		lines = lines[:artScanLines]
	}

	artLines := 0
	for _, line := range lines {
		if len(line) < 5 {
			continue
		}
		symbols := 0
		total := 0
		for _, r := range line {
			total++
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
				symbols++
			}
		}
		if total > 0 && float64(symbols)/float64(total) > artDensity {
			artLines++
			if artLines >= artLineThreshold {
				return true
			}
		}
	}
	return false
}
