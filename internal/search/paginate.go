package search

import "github.com/simp-lee/rentsearch/internal/domain"

// DefaultPageSize is the number of listings per page when none is requested.
const DefaultPageSize = 9

// Paginate slices one 1-based page out of an ordered sequence. A page past the
// end yields no items and HasMore=false. TotalCount is always len(ordered).
// Paginate keeps no state between calls; callers that "load more" concatenate
// successive pages themselves.
func Paginate(ordered []domain.Listing, page, pageSize int) *domain.PageResult {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(ordered)
	start, end := total, total
	// Compare in page units; (page-1)*pageSize is only formed when it is
	// below total, so neither huge pages nor huge page sizes overflow.
	if total > 0 && page-1 <= (total-1)/pageSize {
		start = (page - 1) * pageSize
		end = start + min(pageSize, total-start)
	}

	items := make([]domain.Listing, end-start)
	copy(items, ordered[start:end])

	return &domain.PageResult{
		Items:      items,
		TotalCount: total,
		HasMore:    end < total,
		Page:       page,
		PageSize:   pageSize,
	}
}

// Run is the full in-memory pipeline: drop unpublished listings, compose the
// criteria, sort, then paginate. It is deterministic for a fixed input.
func Run(c domain.Criteria, candidates []domain.Listing, page, pageSize int) *domain.PageResult {
	visible := make([]domain.Listing, 0, len(candidates))
	for i := range candidates {
		if candidates[i].Published {
			visible = append(visible, candidates[i])
		}
	}
	return Paginate(Sort(Compose(c, visible), c.SortBy), page, pageSize)
}
