// Package search implements the listing search pipeline: query parameter
// translation, criteria predicates, composition, ordering, pagination and the
// primary/fallback coordinator.
//
// Everything except Coordinator is pure and safe for concurrent use.
package search

import (
	"strings"

	"github.com/simp-lee/rentsearch/internal/domain"
)

// Predicate reports whether a listing satisfies one criterion.
type Predicate func(l *domain.Listing) bool

// MatchType matches the property type case-insensitively. "" and "any" match everything.
func MatchType(want string) Predicate {
	if want == "" || strings.EqualFold(want, "any") {
		return func(*domain.Listing) bool { return true }
	}
	return func(l *domain.Listing) bool {
		return strings.EqualFold(string(l.Type), want)
	}
}

// MatchCity is phase (a) of the location rule: exact, case-insensitive city match.
func MatchCity(location string) Predicate {
	return func(l *domain.Listing) bool {
		return strings.EqualFold(l.City, location)
	}
}

// MatchAddress is phase (b) of the location rule: case-insensitive substring of the address.
func MatchAddress(location string) Predicate {
	needle := strings.ToLower(location)
	return func(l *domain.Listing) bool {
		return strings.Contains(strings.ToLower(l.Address), needle)
	}
}

// MatchKeyword matches a case-insensitive substring of the title.
func MatchKeyword(keyword string) Predicate {
	needle := strings.ToLower(keyword)
	return func(l *domain.Listing) bool {
		return strings.Contains(strings.ToLower(l.Title), needle)
	}
}

func PriceAtLeast(bound float64) Predicate {
	return func(l *domain.Listing) bool { return l.Price >= bound }
}

func PriceAtMost(bound float64) Predicate {
	return func(l *domain.Listing) bool { return l.Price <= bound }
}

func BedroomsAtLeast(n int) Predicate {
	return func(l *domain.Listing) bool { return l.Bedrooms >= n }
}

func BathroomsAtLeast(n int) Predicate {
	return func(l *domain.Listing) bool { return l.Bathrooms >= n }
}

func AreaAtLeast(bound float64) Predicate {
	return func(l *domain.Listing) bool { return l.Area >= bound }
}

func AreaAtMost(bound float64) Predicate {
	return func(l *domain.Listing) bool { return l.Area <= bound }
}

// HasFeatures matches listings whose feature set contains every required label.
// Labels compare exactly; order is irrelevant.
func HasFeatures(required []string) Predicate {
	return func(l *domain.Listing) bool {
		if len(required) == 0 {
			return true
		}
		have := make(map[string]struct{}, len(l.Features))
		for _, f := range l.Features {
			have[f] = struct{}{}
		}
		for _, f := range required {
			if _, ok := have[f]; !ok {
				return false
			}
		}
		return true
	}
}

// MatchAvailability compares the availability tag for exact equality.
func MatchAvailability(tag string) Predicate {
	return func(l *domain.Listing) bool { return l.Availability == tag }
}
