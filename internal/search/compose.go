package search

import "github.com/simp-lee/rentsearch/internal/domain"

// Predicates returns the active predicates of c other than location, which
// depends on the whole candidate set and is applied separately by Compose.
func Predicates(c domain.Criteria) []Predicate {
	var preds []Predicate
	if c.Keyword != "" {
		preds = append(preds, MatchKeyword(c.Keyword))
	}
	if c.HasPropertyType() {
		preds = append(preds, MatchType(c.PropertyType))
	}
	if c.PriceMin != nil {
		preds = append(preds, PriceAtLeast(*c.PriceMin))
	}
	if c.PriceMax != nil {
		preds = append(preds, PriceAtMost(*c.PriceMax))
	}
	if c.BedroomsMin != nil {
		preds = append(preds, BedroomsAtLeast(*c.BedroomsMin))
	}
	if c.BathroomsMin != nil {
		preds = append(preds, BathroomsAtLeast(*c.BathroomsMin))
	}
	if c.AreaMin != nil {
		preds = append(preds, AreaAtLeast(*c.AreaMin))
	}
	if c.AreaMax != nil {
		preds = append(preds, AreaAtMost(*c.AreaMax))
	}
	if len(c.RequiredFeatures) > 0 {
		preds = append(preds, HasFeatures(c.RequiredFeatures))
	}
	if c.Availability != "" {
		preds = append(preds, MatchAvailability(c.Availability))
	}
	return preds
}

// Compose returns the candidates that satisfy every active criterion, in
// input order. The location rule runs first over the full candidate set:
// if any candidate's city matches exactly, only city matches survive;
// otherwise address substring matches do. The remaining predicates are
// then AND-ed over that intermediate set.
func Compose(c domain.Criteria, candidates []domain.Listing) []domain.Listing {
	set := candidates
	if c.LocationText != "" {
		set = matchLocation(c.LocationText, candidates)
	}

	preds := Predicates(c)
	out := make([]domain.Listing, 0, len(set))
	for i := range set {
		if matchAll(preds, &set[i]) {
			out = append(out, set[i])
		}
	}
	return out
}

func matchLocation(location string, candidates []domain.Listing) []domain.Listing {
	if byCity := filter(candidates, MatchCity(location)); len(byCity) > 0 {
		return byCity
	}
	return filter(candidates, MatchAddress(location))
}

func filter(listings []domain.Listing, p Predicate) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	for i := range listings {
		if p(&listings[i]) {
			out = append(out, listings[i])
		}
	}
	return out
}

func matchAll(preds []Predicate, l *domain.Listing) bool {
	for _, p := range preds {
		if !p(l) {
			return false
		}
	}
	return true
}
