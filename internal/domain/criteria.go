package domain

import "strings"

// SortKey selects the ordering of a result set.
type SortKey string

const (
	SortNewest       SortKey = "newest"
	SortPriceAsc     SortKey = "price_asc"
	SortPriceDesc    SortKey = "price_desc"
	SortBedroomsDesc SortKey = "bedrooms_desc"
)

// ParseSortKey maps a raw sort value to a SortKey. Unknown and empty values
// fall back to SortNewest.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortBedroomsDesc:
		return k
	default:
		return SortNewest
	}
}

// Criteria is the structured search request. Every field is optional: a zero
// string, nil pointer or empty slice places no constraint on that dimension.
//
// PriceMin > PriceMax is allowed and simply matches nothing.
type Criteria struct {
	Keyword          string
	LocationText     string
	PropertyType     string
	PriceMin         *float64
	PriceMax         *float64
	BedroomsMin      *int
	BathroomsMin     *int
	AreaMin          *float64
	AreaMax          *float64
	RequiredFeatures []string
	Availability     string
	SortBy           SortKey
}

// HasPropertyType reports whether the type criterion is active.
func (c Criteria) HasPropertyType() bool {
	return c.PropertyType != "" && !strings.EqualFold(c.PropertyType, "any")
}

// IsEmpty reports whether no filtering criterion is active. SortBy is not a
// filter and is ignored.
func (c Criteria) IsEmpty() bool {
	return c.Keyword == "" &&
		c.LocationText == "" &&
		!c.HasPropertyType() &&
		c.PriceMin == nil &&
		c.PriceMax == nil &&
		c.BedroomsMin == nil &&
		c.BathroomsMin == nil &&
		c.AreaMin == nil &&
		c.AreaMax == nil &&
		len(c.RequiredFeatures) == 0 &&
		c.Availability == ""
}
