package listing

import "github.com/gin-gonic/gin"

// ListingModule implements the app.Module interface for the listing domain.
type ListingModule struct {
	handler *ListingHandler
}

// NewModule creates a new ListingModule. Panics if h is nil.
func NewModule(h *ListingHandler) *ListingModule {
	if h == nil {
		panic("listing.NewModule: handler must not be nil")
	}
	return &ListingModule{handler: h}
}

// RegisterRoutes registers the listing API routes.
func (m *ListingModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/listings", m.handler.Search)
	api.GET("/listings/:id", m.handler.Get)
}
