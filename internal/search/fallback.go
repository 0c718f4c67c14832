package search

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/simp-lee/rentsearch/internal/domain"
)

// Dataset is the secondary listing set used when the primary source fails or is empty.
type Dataset interface {
	Listings(ctx context.Context) ([]domain.Listing, error)
}

// StaticDataset is an in-memory Dataset. It is never mutated.
type StaticDataset []domain.Listing

// Listings returns a copy of the dataset.
func (d StaticDataset) Listings(context.Context) ([]domain.Listing, error) {
	return slices.Clone(d), nil
}

// DatasetFunc adapts a function to Dataset.
type DatasetFunc func(ctx context.Context) ([]domain.Listing, error)

// Listings calls f.
func (f DatasetFunc) Listings(ctx context.Context) ([]domain.Listing, error) {
	return f(ctx)
}

// CoordinatorConfig controls when the Coordinator falls back.
type CoordinatorConfig struct {
	// Fallback enables the secondary dataset. When false, primary errors are
	// surfaced and empty primary results are returned as-is.
	Fallback bool

	// FallbackOnEmpty also falls back when the primary source succeeds with
	// zero matches. When false only primary errors trigger fallback.
	FallbackOnEmpty bool

	// QueryTimeout bounds the primary query. Zero means no extra deadline.
	QueryTimeout time.Duration

	Logger *slog.Logger
}

// Coordinator runs a query against the primary source and, per its config,
// re-runs the same criteria against the secondary dataset. A result always
// comes from exactly one source.
type Coordinator struct {
	primary domain.ListingQuerier
	dataset Dataset
	cfg     CoordinatorConfig
	logger  *slog.Logger
}

// NewCoordinator creates a Coordinator. dataset may be nil, which disables fallback.
// Panics if primary is nil.
func NewCoordinator(primary domain.ListingQuerier, dataset Dataset, cfg CoordinatorConfig) *Coordinator {
	if primary == nil {
		panic("search.NewCoordinator: primary must not be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{primary: primary, dataset: dataset, cfg: cfg, logger: logger}
}

// Search returns one page for c. An empty page is a successful result. A
// *domain.AppError with CodeUnavailable is returned only when no stage
// could produce an answer.
func (co *Coordinator) Search(ctx context.Context, c domain.Criteria, page, pageSize int) (*domain.PageResult, error) {
	res, err := co.queryPrimary(ctx, c, page, pageSize)
	if err == nil && (!res.Empty() || !co.cfg.FallbackOnEmpty) {
		res.Source = domain.SourcePrimary
		return res, nil
	}

	if !co.cfg.Fallback || co.dataset == nil {
		if err != nil {
			co.logger.ErrorContext(ctx, "listing query failed", slog.Any("error", err))
			return nil, domain.NewAppError(domain.CodeUnavailable, "listing search unavailable", err)
		}
		res.Source = domain.SourcePrimary
		return res, nil
	}

	reason := "empty"
	if err != nil {
		reason = "error"
	}
	co.logger.WarnContext(ctx, "falling back to secondary listings",
		slog.String("reason", reason),
		slog.Any("error", err),
	)

	listings, dsErr := co.dataset.Listings(ctx)
	if dsErr != nil {
		co.logger.ErrorContext(ctx, "fallback listing query failed", slog.Any("error", dsErr))
		return nil, domain.NewAppError(domain.CodeUnavailable, "listing search unavailable", errors.Join(err, dsErr))
	}

	out := Run(c, listings, page, pageSize)
	out.Source = domain.SourceFallback
	return out, nil
}

func (co *Coordinator) queryPrimary(ctx context.Context, c domain.Criteria, page, pageSize int) (*domain.PageResult, error) {
	if co.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, co.cfg.QueryTimeout)
		defer cancel()
	}

	res, err := co.primary.Query(ctx, c, page, pageSize)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = Paginate(nil, page, pageSize)
	}
	return res, nil
}
