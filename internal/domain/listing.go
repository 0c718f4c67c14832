package domain

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyType is the kind of property a listing offers.
type PropertyType string

const (
	TypeApartment PropertyType = "apartment"
	TypeHouse     PropertyType = "house"
	TypeCondo     PropertyType = "condo"
	TypeVilla     PropertyType = "villa"
	TypeOffice    PropertyType = "office"
)

// PropertyTypes lists every supported property type.
var PropertyTypes = []PropertyType{TypeApartment, TypeHouse, TypeCondo, TypeVilla, TypeOffice}

// Valid reports whether t is one of PropertyTypes.
func (t PropertyType) Valid() bool {
	return slices.Contains(PropertyTypes, t)
}

// Agent is the person who posted a listing.
type Agent struct {
	ID    string `gorm:"size:64" json:"id" yaml:"id"`
	Name  string `gorm:"size:100" json:"name" yaml:"name"`
	Email string `gorm:"size:255" json:"email" yaml:"email"`
	Phone string `gorm:"size:32" json:"phone" yaml:"phone"`
	Image string `gorm:"size:512" json:"image,omitempty" yaml:"image,omitempty"`
}

// Listing is a single rentable property.
type Listing struct {
	ID           string       `gorm:"primaryKey;size:64" json:"id" yaml:"id"`
	Title        string       `gorm:"size:200;not null" json:"title" yaml:"title"`
	Description  string       `gorm:"type:text" json:"description" yaml:"description"`
	Type         PropertyType `gorm:"size:20;index;not null" json:"type" yaml:"type"`
	Address      string       `gorm:"size:255" json:"address" yaml:"address"`
	City         string       `gorm:"size:100;index" json:"city" yaml:"city"`
	ZipCode      string       `gorm:"size:20" json:"zip_code" yaml:"zip_code"`
	Country      string       `gorm:"size:100" json:"country" yaml:"country"`
	Price        float64      `gorm:"not null;index" json:"price" yaml:"price"`
	Currency     string       `gorm:"size:8" json:"currency" yaml:"currency"`
	Bedrooms     int          `gorm:"not null" json:"bedrooms" yaml:"bedrooms"`
	Bathrooms    int          `gorm:"not null" json:"bathrooms" yaml:"bathrooms"`
	Area         float64      `gorm:"not null" json:"area" yaml:"area"`
	AreaUnit     string       `gorm:"size:20" json:"area_unit" yaml:"area_unit"`
	Features     []string     `gorm:"serializer:json" json:"features" yaml:"features"`
	Images       []string     `gorm:"serializer:json" json:"images" yaml:"images"`
	Agent        Agent        `gorm:"embedded;embeddedPrefix:agent_" json:"agent" yaml:"agent"`
	Availability string       `gorm:"size:32;index" json:"availability,omitempty" yaml:"availability,omitempty"`
	Published    bool         `gorm:"index;not null" json:"published" yaml:"published"`
	CreatedAt    time.Time    `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" yaml:"updated_at"`
}

// BeforeCreate assigns a random id to listings created without one.
func (l *Listing) BeforeCreate(*gorm.DB) error {
	if strings.TrimSpace(l.ID) == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// PrimaryImage returns the first image, or "" when the listing has none.
func (l *Listing) PrimaryImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// Validate checks the numeric and enum invariants of a listing.
func (l *Listing) Validate() error {
	switch {
	case strings.TrimSpace(l.Title) == "":
		return NewAppError(CodeValidation, "title is required", nil)
	case !l.Type.Valid():
		return NewAppError(CodeValidation, fmt.Sprintf("unsupported property type %q", l.Type), nil)
	case l.Price < 0:
		return NewAppError(CodeValidation, "price must not be negative", nil)
	case l.Bedrooms < 0:
		return NewAppError(CodeValidation, "bedrooms must not be negative", nil)
	case l.Bathrooms < 0:
		return NewAppError(CodeValidation, "bathrooms must not be negative", nil)
	case l.Area <= 0:
		return NewAppError(CodeValidation, "area must be positive", nil)
	}
	return nil
}

// ListingQuerier runs a criteria query and returns one page of published listings.
type ListingQuerier interface {
	Query(ctx context.Context, c Criteria, page, pageSize int) (*PageResult, error)
}

// ListingRepository defines the data access interface for listings.
type ListingRepository interface {
	ListingQuerier
	GetByID(ctx context.Context, id string) (*Listing, error)
}

// ListingService defines the business logic interface for listings.
type ListingService interface {
	Search(ctx context.Context, c Criteria, page, pageSize int) (*PageResult, error)
	GetListing(ctx context.Context, id string) (*Listing, error)
}
