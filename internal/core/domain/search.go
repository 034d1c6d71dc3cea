package domain

// SearchHit is a single full-text match against one of the two indexes.
type SearchHit struct {
	// GuideID is the matched guide.
	GuideID string

	// Title is the guide title at match time.
	Title string

	// Score is the relevance score; higher is more relevant.
	Score float64

	// Snippet is a short excerpt around the matched terms.
	Snippet string
}

// SearchResults holds the outcome of querying both indexes. A guide that
// matches on metadata never appears in ContentMatches: the content list is
// "matched on content only".
type SearchResults struct {
	// MetaMatches are hits against the title+tags index.
	MetaMatches []SearchHit

	// ContentMatches are hits against the body-text index whose guides
	// did not already match on metadata.
	ContentMatches []SearchHit
}

// Empty reports whether neither index produced a hit.
func (r *SearchResults) Empty() bool {
	return len(r.MetaMatches) == 0 && len(r.ContentMatches) == 0
}
