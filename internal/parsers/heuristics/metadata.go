package heuristics

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ScanWindow bounds how much of a guide's content the metadata and tag
// heuristics inspect. Guides run to megabytes; everything useful sits in
// the header.
const ScanWindow = 8000

// platformWindow bounds the platform search: platform names appear in the
// banner or not at all.
const platformWindow = 1000

var (
	// "Written by: X", "Author: X", "by - X" header lines.
	authorLabelled = regexp.MustCompile(`(?im)^[\s*]*(?:written\s+by|authou?r|by)\s*[:\-]\s*(.{2,60})$`)

	// "by Some Author" without a separator.
	authorBare = regexp.MustCompile(`(?im)^\s*(?:written\s+)?by\s+([A-Za-z][\w .'@-]{1,40})\s*$`)

	// A lone line of exactly two capitalised words, the classic
	// unlabelled byline.
	authorName = regexp.MustCompile(`(?m)^\s*([A-Z][a-z]+ [A-Z][a-z]+)\s*$`)

	versionToken = regexp.MustCompile(`(?i)\bv(?:ersion)?[\s.:]*(\d+(?:\.\d+)*[a-z]?)\b`)
)

// platformVocabulary lists recognised platform names, most specific
// first so "xbox 360" wins over "xbox". Kept hardcoded; extending it is a
// rebuild, not configuration.
var platformVocabulary = []string{
	"playstation 4", "playstation 3", "playstation 2", "playstation",
	"xbox 360", "xbox one", "xbox",
	"game boy advance", "game boy color", "game boy",
	"nintendo 64", "nintendo ds", "gamecube", "wii u", "wii", "switch",
	"dreamcast", "saturn", "genesis", "game gear",
	"snes", "nes", "n64", "gba", "3ds",
	"psp", "vita", "ps4", "ps3", "ps2", "ps1",
	"pc",
}

var platformPatterns = compileVocabulary(platformVocabulary)

func compileVocabulary(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return patterns
}

// Extract pulls author, version, platform, and tags from the head of a
// guide's content. Only keys that were actually found are present.
func Extract(content, filename string) map[string]any {
	window := head(content, ScanWindow)
	md := make(map[string]any)

	if author := Author(window); author != "" {
		md["author"] = author
	}
	if version := Version(window); version != "" {
		md["version"] = version
	}
	if platform := Platform(head(content, platformWindow)); platform != "" {
		md["platform"] = platform
	}
	if tags := AutoTags(content, filename); len(tags) > 0 {
		md["tags"] = tags
	}
	return md
}

// Author finds a byline within the scan window.
func Author(window string) string {
	if m := authorLabelled.FindStringSubmatch(window); m != nil {
		return cleanAuthor(m[1])
	}
	if m := authorBare.FindStringSubmatch(window); m != nil {
		return cleanAuthor(m[1])
	}
	if m := authorName.FindStringSubmatch(window); m != nil {
		return m[1]
	}
	return ""
}

// Version finds a version token within the scan window.
func Version(window string) string {
	if m := versionToken.FindStringSubmatch(window); m != nil {
		return m[1]
	}
	return ""
}

// Platform matches the window against the platform vocabulary and returns
// the first (most specific) hit, normalised to lower case.
func Platform(window string) string {
	for i, pattern := range platformPatterns {
		if pattern.MatchString(window) {
			return platformVocabulary[i]
		}
	}
	return ""
}

func cleanAuthor(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, decoratorCutset)
	return strings.TrimSpace(s)
}

// head returns at most n bytes of s without splitting a rune.
func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
