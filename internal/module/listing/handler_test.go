package listing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/rentsearch/internal/domain"
	"github.com/simp-lee/rentsearch/internal/pkg"
)

// mockService records the last search call and returns canned results.
type mockService struct {
	result   *domain.PageResult
	err      error
	criteria domain.Criteria
	page     int
	pageSize int
	listing  *domain.Listing
}

func (m *mockService) Search(_ context.Context, c domain.Criteria, page, pageSize int) (*domain.PageResult, error) {
	m.criteria, m.page, m.pageSize = c, page, pageSize
	return m.result, m.err
}

func (m *mockService) GetListing(_ context.Context, id string) (*domain.Listing, error) {
	if m.listing != nil && m.listing.ID == id {
		return m.listing, nil
	}
	if m.err != nil {
		return nil, m.err
	}
	return nil, domain.NewAppError(domain.CodeNotFound, "listing not found", nil)
}

// setupAPIRouter creates a gin engine with the listing routes mounted under /api/v1.
func setupAPIRouter(svc domain.ListingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewModule(NewListingHandler(svc, 9, 48)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doGet(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

type searchEnvelope struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    SearchResponse `json:"data"`
}

func TestListingHandler_Search(t *testing.T) {
	svc := &mockService{result: &domain.PageResult{
		Items:      []domain.Listing{{ID: "prop-1", Images: []string{"front.jpg", "kitchen.jpg"}}},
		TotalCount: 12,
		HasMore:    true,
		Page:       2,
		PageSize:   5,
		Source:     domain.SourcePrimary,
	}}
	r := setupAPIRouter(svc)

	w := doGet(r, "/api/v1/listings?location=Kathmandu&type=apartment&beds=2&maxPrice=50000&page=2&page_size=5")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	if svc.page != 2 || svc.pageSize != 5 {
		t.Errorf("page/size = %d/%d, want 2/5", svc.page, svc.pageSize)
	}
	if svc.criteria.LocationText != "Kathmandu" || svc.criteria.PropertyType != "apartment" {
		t.Errorf("unexpected criteria %+v", svc.criteria)
	}
	if svc.criteria.BedroomsMin == nil || *svc.criteria.BedroomsMin != 2 {
		t.Errorf("bedrooms = %v, want 2", svc.criteria.BedroomsMin)
	}

	var resp searchEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.TotalCount != 12 || !resp.Data.HasMore || resp.Data.Source != domain.SourcePrimary {
		t.Errorf("unexpected data %+v", resp.Data)
	}
	if want := "Apartments in Kathmandu · 2+ beds · price up to 50,000"; resp.Data.Summary != want {
		t.Errorf("summary = %q, want %q", resp.Data.Summary, want)
	}
	if len(resp.Data.Items) != 1 || resp.Data.Items[0].ID != "prop-1" || resp.Data.Items[0].PrimaryImage != "front.jpg" {
		t.Errorf("unexpected items %+v", resp.Data.Items)
	}
}

func TestListingHandler_Search_EmptyItemsIsArray(t *testing.T) {
	r := setupAPIRouter(&mockService{result: &domain.PageResult{}})

	w := doGet(r, "/api/v1/listings")
	if !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Errorf("expected empty items array, got %s", w.Body.String())
	}
}

func TestListingHandler_Search_DefaultsAndCap(t *testing.T) {
	svc := &mockService{result: &domain.PageResult{}}
	r := setupAPIRouter(svc)

	doGet(r, "/api/v1/listings")
	if svc.page != 1 || svc.pageSize != 9 {
		t.Errorf("defaults = %d/%d, want 1/9", svc.page, svc.pageSize)
	}

	doGet(r, "/api/v1/listings?page_size=1000")
	if svc.pageSize != 48 {
		t.Errorf("page size = %d, want capped 48", svc.pageSize)
	}
}

func TestListingHandler_Search_EmptyIsSuccess(t *testing.T) {
	svc := &mockService{result: &domain.PageResult{Page: 1, PageSize: 9, Source: domain.SourceFallback}}
	r := setupAPIRouter(svc)

	w := doGet(r, "/api/v1/listings?minPrice=50000&maxPrice=10000")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var raw struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if got := string(raw.Data["items"]); got != "[]" {
		t.Errorf("items = %s, want []", got)
	}
}

func TestListingHandler_Search_InvalidPage(t *testing.T) {
	svc := &mockService{result: &domain.PageResult{}}
	r := setupAPIRouter(svc)

	w := doGet(r, "/api/v1/listings?page=-1")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	var resp pkg.ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if _, ok := resp.Errors["page"]; !ok {
		t.Errorf("expected error for field 'page', got %v", resp.Errors)
	}
}

func TestListingHandler_Search_Unavailable(t *testing.T) {
	svc := &mockService{err: domain.NewAppError(domain.CodeUnavailable, "listing search unavailable", errors.New("down"))}
	r := setupAPIRouter(svc)

	w := doGet(r, "/api/v1/listings")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
	var resp pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Message != "listing search unavailable" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestListingHandler_Get(t *testing.T) {
	svc := &mockService{listing: &domain.Listing{ID: "prop-1", Title: "Modern Apartment"}}
	r := setupAPIRouter(svc)

	w := doGet(r, "/api/v1/listings/prop-1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data["title"] != "Modern Apartment" {
		t.Errorf("title = %v", resp.Data["title"])
	}
	if v, ok := resp.Data["primary_image"]; !ok || v != "" {
		t.Errorf("primary_image = %v (present %v), want empty string", v, ok)
	}

	if w := doGet(r, "/api/v1/listings/missing"); w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for missing listing, got %d", w.Code)
	}
}

func TestNewModule_PanicsOnNilHandler(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewModule(nil)
}
