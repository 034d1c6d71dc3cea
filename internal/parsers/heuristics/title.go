// Package heuristics implements the deterministic rules used to infer
// guide titles, authorship, platforms, and tags from raw guide text. The
// rules are ordered and first-match-wins; every rule is independently
// testable. Given identical byte content the output is always identical.
package heuristics

import (
	"regexp"
	"strings"
	"unicode"
)

// titleScanLines is how many non-blank lines the keyword rule inspects.
const titleScanLines = 30

// fallbackScanLines is how many raw lines the length-based rule inspects.
const fallbackScanLines = 10

// TitleRule is one named heuristic in the title inference cascade.
type TitleRule struct {
	// Name identifies the rule in tests and logs.
	Name string

	// Apply attempts to produce a title. ok is false when the rule does
	// not fire for this input.
	Apply func(lines []string, filename string) (title string, ok bool)
}

var (
	titleKeyword = regexp.MustCompile(`(?i)\b(guide|walkthrough|faq|strategy|solution)\b`)

	// Trailing "v1.0", "version 2", "(v0.3b)" style suffixes.
	trailingVersion = regexp.MustCompile(`(?i)[\s\-–/,]*\(?v(?:ersion)?[\s.]*\d[\w.]*\)?\s*$`)

	// Trailing "by Some Author" style suffixes.
	trailingAuthor = regexp.MustCompile(`(?i)[\s\-–,]*\bby\s+[\w .'-]+$`)
)

// decoratorCutset holds the banner characters stripped from line ends.
const decoratorCutset = " \t=-~*_#+<>|[]{}:.!/\\"

// titleRules is the ordered cascade. First match wins.
var titleRules = []TitleRule{
	{Name: "keyword-line", Apply: keywordLine},
	{Name: "plausible-length", Apply: plausibleLength},
	{Name: "filename", Apply: filenameTitle},
}

// TitleRules returns the cascade in evaluation order.
func TitleRules() []TitleRule {
	return titleRules
}

// InferTitle runs the cascade over the content and filename. The final
// filename rule always fires, so the result is never empty.
func InferTitle(content, filename string) string {
	lines := strings.Split(content, "\n")
	for _, rule := range titleRules {
		if title, ok := rule.Apply(lines, filename); ok {
			return title
		}
	}
	return FromFilename(filename)
}

// keywordLine scans the first non-blank lines for one that names a guide
// type or is indented the way hand-centred guide titles are.
func keywordLine(lines []string, _ string) (string, bool) {
	seen := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		seen++
		if seen > titleScanLines {
			break
		}
		if titleKeyword.MatchString(trimmed) || centredIndent(line) {
			if title, ok := CleanTitleLine(trimmed); ok {
				return title, true
			}
		}
	}
	return "", false
}

// plausibleLength falls back to any early line of title-like length.
func plausibleLength(lines []string, _ string) (string, bool) {
	limit := fallbackScanLines
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) < 10 || len(trimmed) > 99 {
			continue
		}
		if title, ok := CleanTitleLine(trimmed); ok {
			return title, true
		}
	}
	return "", false
}

// filenameTitle derives a title from the filename. Always fires.
func filenameTitle(_ []string, filename string) (string, bool) {
	return FromFilename(filename), true
}

// CleanTitleLine strips banner decoration and trailing version/author
// suffixes from a candidate title line. ok is false when nothing
// title-like survives cleaning.
func CleanTitleLine(line string) (string, bool) {
	title := strings.Trim(line, decoratorCutset)
	title = trailingAuthor.ReplaceAllString(title, "")
	title = trailingVersion.ReplaceAllString(title, "")
	title = strings.Trim(title, decoratorCutset)
	title = strings.Join(strings.Fields(title), " ")

	if len(title) < 4 || !hasLetters(title) {
		return "", false
	}
	return title, true
}

// centredIndent reports whether the line looks like a hand-centred title:
// deep leading whitespace in front of real text.
func centredIndent(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 8 {
		return false
	}
	indent := 0
	for _, r := range line {
		if r != ' ' && r != '\t' {
			break
		}
		indent++
	}
	return indent >= 10
}

// FromFilename builds a title-cased, punctuation-stripped title out of a
// file name.
func FromFilename(filename string) string {
	name := filename
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	title := strings.Join(words, " ")
	if title == "" {
		return "Untitled Guide"
	}
	return title
}

// hasLetters reports whether the string contains at least one letter.
func hasLetters(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
