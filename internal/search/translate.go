package search

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/simp-lee/rentsearch/internal/domain"
)

// Query parameter keys understood by Translate.
const (
	ParamLocation     = "location"
	ParamType         = "type"
	ParamBeds         = "beds"
	ParamBaths        = "baths"
	ParamMinPrice     = "minPrice"
	ParamMaxPrice     = "maxPrice"
	ParamPrice        = "price" // "min-max" range token
	ParamMinArea      = "minArea"
	ParamMaxArea      = "maxArea"
	ParamFeatures     = "features"
	ParamAvailability = "availability"
	ParamSort         = "sort"
	ParamKeyword      = "q"
)

// anyValue is the UI sentinel for an unconstrained select.
const anyValue = "any"

// Translate converts flat request parameters into Criteria. Malformed numbers
// leave their field unset, "any" means unconstrained, and unknown keys are
// ignored. Explicit minPrice/maxPrice override the matching half of a price
// range token.
func Translate(params map[string]string) domain.Criteria {
	c := domain.Criteria{
		Keyword:      text(params[ParamKeyword]),
		LocationText: text(params[ParamLocation]),
		PropertyType: strings.ToLower(text(params[ParamType])),
		Availability: text(params[ParamAvailability]),
		SortBy:       domain.ParseSortKey(params[ParamSort]),
	}

	if raw, ok := params[ParamPrice]; ok {
		c.PriceMin, c.PriceMax = parseRange(raw)
	}
	if v := parseFloat(params[ParamMinPrice]); v != nil {
		c.PriceMin = v
	}
	if v := parseUpperBound(params[ParamMaxPrice]); v != nil {
		c.PriceMax = v
	}

	c.BedroomsMin = parseInt(params[ParamBeds])
	c.BathroomsMin = parseInt(params[ParamBaths])
	c.AreaMin = parseFloat(params[ParamMinArea])
	c.AreaMax = parseUpperBound(params[ParamMaxArea])
	c.RequiredFeatures = SplitFeatures(params[ParamFeatures])

	return c
}

// TranslateValues is Translate over url.Values, using the first value of each key.
func TranslateValues(values url.Values) domain.Criteria {
	params := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return Translate(params)
}

// SplitFeatures splits a comma-joined feature list, trimming each element and
// dropping empty and repeated ones. First-seen order is kept.
func SplitFeatures(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		f := strings.TrimSpace(part)
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// parseRange splits "min-max" on the first hyphen. A max of "0" means no upper bound.
func parseRange(raw string) (lo, hi *float64) {
	minPart, maxPart, found := strings.Cut(strings.TrimSpace(raw), "-")
	lo = parseFloat(minPart)
	if found {
		hi = parseUpperBound(maxPart)
	}
	return lo, hi
}

// parseUpperBound treats "0" as "no upper bound".
func parseUpperBound(raw string) *float64 {
	v := parseFloat(raw)
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

func parseFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, anyValue) {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// text trims raw and maps the "any" sentinel to "".
func text(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, anyValue) {
		return ""
	}
	return raw
}
