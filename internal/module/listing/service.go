package listing

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/simp-lee/rentsearch/internal/domain"
	"github.com/simp-lee/rentsearch/internal/search"
)

// listingService implements domain.ListingService.
type listingService struct {
	repo        domain.ListingRepository
	coordinator *search.Coordinator
	dataset     search.Dataset
	fallback    bool
	logger      *slog.Logger
}

// NewListingService creates a ListingService that queries repo and falls back
// to dataset according to cfg. dataset may be nil.
func NewListingService(repo domain.ListingRepository, dataset search.Dataset, cfg search.CoordinatorConfig) domain.ListingService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg.Logger = logger
	return &listingService{
		repo:        repo,
		coordinator: search.NewCoordinator(repo, dataset, cfg),
		dataset:     dataset,
		fallback:    cfg.Fallback && dataset != nil,
		logger:      logger,
	}
}

// Search runs c against the repository with fallback to the secondary dataset.
func (s *listingService) Search(ctx context.Context, c domain.Criteria, page, pageSize int) (*domain.PageResult, error) {
	return s.coordinator.Search(ctx, c, page, pageSize)
}

// GetListing returns the published listing with the given id. Only internal
// repository failures consult the secondary dataset; not-found and other
// classified errors are returned as is.
func (s *listingService) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "id is required", nil)
	}

	l, err := s.repo.GetByID(ctx, id)
	if err == nil || !domain.IsInternal(err) || !s.fallback {
		return l, err
	}

	s.logger.WarnContext(ctx, "listing lookup falling back to secondary listings",
		slog.String("id", id),
		slog.Any("error", err),
	)
	listings, dsErr := s.dataset.Listings(ctx)
	if dsErr != nil {
		return nil, domain.NewAppError(domain.CodeUnavailable, "listing lookup unavailable", errors.Join(err, dsErr))
	}
	for i := range listings {
		if listings[i].ID == id && listings[i].Published {
			return &listings[i], nil
		}
	}
	return nil, domain.NewAppError(domain.CodeNotFound, "listing not found", nil)
}
