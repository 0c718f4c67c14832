package search

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/simp-lee/rentsearch/internal/domain"
)

var sortLabels = map[domain.SortKey]string{
	domain.SortPriceAsc:     "lowest price first",
	domain.SortPriceDesc:    "highest price first",
	domain.SortBedroomsDesc: "most bedrooms first",
}

// Summarize renders the active criteria as a short human-readable line for
// display, e.g. "Apartments in Kathmandu · 2+ beds · price 10,000 - 50,000".
// It is presentational only.
func Summarize(c domain.Criteria) string {
	head := "All properties"
	if c.HasPropertyType() {
		head = plural(c.PropertyType)
	} else if !c.IsEmpty() {
		head = "Properties"
	}
	if c.LocationText != "" {
		head += " in " + c.LocationText
	}

	parts := []string{head}
	if c.Keyword != "" {
		parts = append(parts, fmt.Sprintf("matching %q", c.Keyword))
	}
	if c.BedroomsMin != nil {
		parts = append(parts, fmt.Sprintf("%d+ beds", *c.BedroomsMin))
	}
	if c.BathroomsMin != nil {
		parts = append(parts, fmt.Sprintf("%d+ baths", *c.BathroomsMin))
	}
	if r := describeRange("price", c.PriceMin, c.PriceMax); r != "" {
		parts = append(parts, r)
	}
	if r := describeRange("area", c.AreaMin, c.AreaMax); r != "" {
		parts = append(parts, r)
	}
	if len(c.RequiredFeatures) > 0 {
		parts = append(parts, "with "+strings.Join(c.RequiredFeatures, ", "))
	}
	if c.Availability != "" {
		parts = append(parts, c.Availability)
	}
	if label, ok := sortLabels[c.SortBy]; ok {
		parts = append(parts, label)
	}
	return strings.Join(parts, " · ")
}

func describeRange(name string, lo, hi *float64) string {
	switch {
	case lo != nil && hi != nil:
		return fmt.Sprintf("%s %s - %s", name, humanize.Commaf(*lo), humanize.Commaf(*hi))
	case lo != nil:
		return fmt.Sprintf("%s from %s", name, humanize.Commaf(*lo))
	case hi != nil:
		return fmt.Sprintf("%s up to %s", name, humanize.Commaf(*hi))
	default:
		return ""
	}
}

func plural(propertyType string) string {
	if propertyType == "" {
		return "Properties"
	}
	r, size := utf8.DecodeRuneInString(propertyType)
	return string(unicode.ToUpper(r)) + propertyType[size:] + "s"
}
