package search

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/simp-lee/rentsearch/internal/domain"
)

var baseTime = time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)

// listing builds a published listing; created is a day offset from baseTime.
func listing(id string, typ domain.PropertyType, price float64, beds, created int) domain.Listing {
	return domain.Listing{
		ID:        id,
		Title:     fmt.Sprintf("Listing %s", id),
		Type:      typ,
		City:      "Kathmandu",
		Address:   "1 Main Street",
		Price:     price,
		Bedrooms:  beds,
		Bathrooms: 1,
		Area:      1000,
		Images:    []string{id + ".jpg"},
		Published: true,
		CreatedAt: baseTime.AddDate(0, 0, created),
		UpdatedAt: baseTime.AddDate(0, 0, created),
	}
}

func ids(listings []domain.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

// wantIDs fails the test unless listings carry exactly the ids want, in order.
func wantIDs(t *testing.T, listings []domain.Listing, want ...string) {
	t.Helper()
	if got := ids(listings); !slices.Equal(got, want) {
		t.Errorf("ids = %v; want %v", got, want)
	}
}

func ptr[T any](v T) *T { return &v }

// manyListings returns n published apartments with distinct creation days.
func manyListings(n int) []domain.Listing {
	out := make([]domain.Listing, n)
	for i := range out {
		out[i] = listing(fmt.Sprintf("l-%02d", i), domain.TypeApartment, float64(10000+i*1000), i%4, i)
	}
	return out
}
