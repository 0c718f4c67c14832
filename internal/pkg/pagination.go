package pkg

// PageParams holds 1-based paging parameters bound from the query string.
// Zero values mean "not supplied".
type PageParams struct {
	Page     int `form:"page" json:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" json:"page_size" binding:"omitempty,min=1"`
}

// Resolve applies defaults and caps the page size at maxSize. A maxSize below
// defaultSize is raised to defaultSize.
func (p PageParams) Resolve(defaultSize, maxSize int) (page, size int) {
	page = max(p.Page, 1)
	maxSize = max(maxSize, defaultSize)

	size = p.PageSize
	if size < 1 {
		size = defaultSize
	}
	return page, min(size, maxSize)
}
