package listing

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simp-lee/rentsearch/internal/domain"
	"github.com/simp-lee/rentsearch/internal/pkg"
	"github.com/simp-lee/rentsearch/internal/search"
)

// listingRepository implements domain.ListingRepository using GORM.
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new ListingRepository backed by the given GORM database.
func NewListingRepository(db *gorm.DB) domain.ListingRepository {
	return &listingRepository{db: db}
}

// Query returns one page of published listings matching c.
//
// Scalar criteria are narrowed in SQL when no location criterion is set; the
// location rule needs the full published set, so in that case only
// published=true is applied. The final filter, order and page always come
// from search.Run so results match the fallback path exactly.
func (r *listingRepository) Query(ctx context.Context, c domain.Criteria, page, pageSize int) (*domain.PageResult, error) {
	var candidates []domain.Listing
	err := r.db.WithContext(ctx).
		Scopes(published, narrow(c)).
		Find(&candidates).Error
	if err != nil {
		return nil, mapError(err)
	}
	return search.Run(c, candidates, page, pageSize), nil
}

// GetByID retrieves a published listing by its id.
func (r *listingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	var l domain.Listing
	if err := r.db.WithContext(ctx).Scopes(published).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, mapError(err)
	}
	return &l, nil
}

// Seed upserts listings in a single transaction. Existing rows with the same
// id are overwritten.
func Seed(ctx context.Context, db *gorm.DB, listings []domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	err := pkg.WithTx(ctx, db, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(listings, 100).Error
	})
	return mapError(err)
}

func published(db *gorm.DB) *gorm.DB {
	return db.Where("published = ?", true)
}

// narrow returns a scope that pre-filters by the scalar criteria. The scope
// only ever removes rows that search.Run would also reject.
func narrow(c domain.Criteria) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if c.LocationText != "" {
			return db
		}
		if c.HasPropertyType() {
			db = db.Where("LOWER(type) = ?", strings.ToLower(c.PropertyType))
		}
		if c.PriceMin != nil {
			db = db.Where("price >= ?", *c.PriceMin)
		}
		if c.PriceMax != nil {
			db = db.Where("price <= ?", *c.PriceMax)
		}
		if c.BedroomsMin != nil {
			db = db.Where("bedrooms >= ?", *c.BedroomsMin)
		}
		if c.BathroomsMin != nil {
			db = db.Where("bathrooms >= ?", *c.BathroomsMin)
		}
		if c.AreaMin != nil {
			db = db.Where("area >= ?", *c.AreaMin)
		}
		if c.AreaMax != nil {
			db = db.Where("area <= ?", *c.AreaMax)
		}
		if c.Availability != "" {
			db = db.Where("availability = ?", c.Availability)
		}
		return db
	}
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewAppError(domain.CodeNotFound, "listing not found", err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "listing already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by message, since
// the pure-Go SQLite driver does not translate them to gorm.ErrDuplicatedKey.
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
