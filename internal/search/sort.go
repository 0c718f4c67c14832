package search

import (
	"cmp"
	"slices"

	"github.com/simp-lee/rentsearch/internal/domain"
)

// Sort returns a copy of listings ordered by key. Every key ends in an id
// comparison, so the order is total and repeatable for any input.
func Sort(listings []domain.Listing, key domain.SortKey) []domain.Listing {
	out := slices.Clone(listings)
	slices.SortStableFunc(out, comparator(key))
	return out
}

func comparator(key domain.SortKey) func(a, b domain.Listing) int {
	switch key {
	case domain.SortPriceAsc:
		return func(a, b domain.Listing) int {
			return cmp.Or(cmp.Compare(a.Price, b.Price), newestFirst(a, b))
		}
	case domain.SortPriceDesc:
		return func(a, b domain.Listing) int {
			return cmp.Or(cmp.Compare(b.Price, a.Price), newestFirst(a, b))
		}
	case domain.SortBedroomsDesc:
		return func(a, b domain.Listing) int {
			return cmp.Or(cmp.Compare(b.Bedrooms, a.Bedrooms), newestFirst(a, b))
		}
	default:
		return newestFirst
	}
}

// newestFirst orders by CreatedAt descending, then id ascending.
func newestFirst(a, b domain.Listing) int {
	return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
}
