package listing

import (
	"github.com/simp-lee/rentsearch/internal/domain"
	"github.com/simp-lee/rentsearch/internal/search"
)

// ListingResponse is a listing as the API renders it, with the image used on
// listing cards.
type ListingResponse struct {
	domain.Listing
	PrimaryImage string `json:"primary_image"`
}

func newListingResponse(l *domain.Listing) ListingResponse {
	return ListingResponse{Listing: *l, PrimaryImage: l.PrimaryImage()}
}

// SearchResponse is one page of search results plus a readable description
// of the criteria that produced it.
type SearchResponse struct {
	Items      []ListingResponse `json:"items"`
	TotalCount int               `json:"total_count"`
	HasMore    bool              `json:"has_more"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Source     domain.Source     `json:"source"`
	Summary    string            `json:"summary"`
}

func newSearchResponse(res *domain.PageResult, c domain.Criteria) SearchResponse {
	items := make([]ListingResponse, len(res.Items))
	for i := range res.Items {
		items[i] = newListingResponse(&res.Items[i])
	}
	return SearchResponse{
		Items:      items,
		TotalCount: res.TotalCount,
		HasMore:    res.HasMore,
		Page:       res.Page,
		PageSize:   res.PageSize,
		Source:     res.Source,
		Summary:    search.Summarize(c),
	}
}
