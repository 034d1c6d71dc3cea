// Package parsers turns heterogeneous guide files into structured guide
// records. Each format lives in its own subpackage; the Registry selects
// one by file extension, defaulting to plain text for anything it does
// not recognise. The shared inference rules live in the heuristics
// subpackage.
package parsers
