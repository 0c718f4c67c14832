package listing

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/rentsearch/internal/domain"
	"github.com/simp-lee/rentsearch/internal/pkg"
	"github.com/simp-lee/rentsearch/internal/search"
)

// ListingHandler handles REST API requests for the listing resource.
type ListingHandler struct {
	svc         domain.ListingService
	pageSize    int
	maxPageSize int
}

// NewListingHandler creates a new ListingHandler. pageSize is used when the
// request does not name one; larger requested sizes are capped at maxPageSize.
func NewListingHandler(svc domain.ListingService, pageSize, maxPageSize int) *ListingHandler {
	if pageSize < 1 {
		pageSize = search.DefaultPageSize
	}
	return &ListingHandler{svc: svc, pageSize: pageSize, maxPageSize: max(maxPageSize, pageSize)}
}

// Search handles GET /api/v1/listings.
func (h *ListingHandler) Search(c *gin.Context) {
	var params pkg.PageParams
	if !pkg.BindAndValidate(c, &params) {
		return
	}
	page, size := params.Resolve(h.pageSize, h.maxPageSize)

	criteria := search.TranslateValues(c.Request.URL.Query())
	result, err := h.svc.Search(c.Request.Context(), criteria, page, size)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, newSearchResponse(result, criteria))
}

// Get handles GET /api/v1/listings/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.svc.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, newListingResponse(l))
}
