package domain

// Source identifies which listing source produced a PageResult.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
)

// PageResult is one page of filtered, ordered listings plus pagination metadata.
// TotalCount covers every matching listing, not just this page.
type PageResult struct {
	Items      []Listing `json:"items"`
	TotalCount int       `json:"total_count"`
	HasMore    bool      `json:"has_more"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	Source     Source    `json:"source"`
}

// Empty reports whether no listing matched the query at all.
func (r *PageResult) Empty() bool {
	return r == nil || r.TotalCount == 0
}
