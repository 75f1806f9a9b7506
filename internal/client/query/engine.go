// Package query implements the client-side listing pipeline: filter, sort,
// paginate. Everything here is a pure function over a snapshot slice; the
// listings page and the admin panel's search both run through it.
package query

import (
	"sort"
	"strings"

	"github.com/azhark/cottagecatalog/internal/client/models"
)

// DefaultPageSize is the catalog grid's fixed page size.
const DefaultPageSize = 6

// BedroomsCap is the top bedroom-count bucket. A filter asking for exactly
// BedroomsCap bedrooms means "BedroomsCap or more"; every smaller value is
// an exact match. This mirrors the site's "4+" option and is deliberate.
const BedroomsCap = 4

// Filter holds the listing predicates. Zero values mean "no constraint":
// an empty string skips that filter, a zero range bound leaves that side
// of the range open, a zero Bedrooms matches any count. All predicates are
// independent, so applying them in any order yields the same result.
type Filter struct {
	Search   string
	Category string
	Status   models.ListingStatus
	PriceMin int64
	PriceMax int64
	AreaMin  int
	AreaMax  int
	Bedrooms int
}

func (f Filter) matches(l models.Listing) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(l.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.PriceMin != 0 && l.Price < f.PriceMin {
		return false
	}
	if f.PriceMax != 0 && l.Price > f.PriceMax {
		return false
	}
	if f.AreaMin != 0 && l.Area < f.AreaMin {
		return false
	}
	if f.AreaMax != 0 && l.Area > f.AreaMax {
		return false
	}
	if f.Bedrooms != 0 {
		if f.Bedrooms == BedroomsCap {
			if l.Bedrooms < BedroomsCap {
				return false
			}
		} else if l.Bedrooms != f.Bedrooms {
			return false
		}
	}
	return true
}

// Apply returns the listings that satisfy every predicate in f, in their
// original order.
func Apply(listings []models.Listing, f Filter) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if f.matches(l) {
			out = append(out, l)
		}
	}
	return out
}

// SortKey selects the ordering of a listing collection.
type SortKey string

const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortAreaAsc   SortKey = "area-asc"
	SortAreaDesc  SortKey = "area-desc"
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
)

// Sort returns a copy of listings ordered by key. The sort is stable, so
// listings with equal keys keep their original relative order. An unknown
// key returns the copy untouched. The input slice is never mutated.
func Sort(listings []models.Listing, key SortKey) []models.Listing {
	out := make([]models.Listing, len(listings))
	copy(out, listings)

	var less func(a, b models.Listing) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b models.Listing) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b models.Listing) bool { return a.Price > b.Price }
	case SortAreaAsc:
		less = func(a, b models.Listing) bool { return a.Area < b.Area }
	case SortAreaDesc:
		less = func(a, b models.Listing) bool { return a.Area > b.Area }
	case SortNewest:
		less = func(a, b models.Listing) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortOldest:
		less = func(a, b models.Listing) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// TotalPages returns ceil(total/size), or 0 when either argument is
// non-positive.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate returns the 1-based page of the given size. Pages outside
// [1, TotalPages] yield an empty result: the engine does not clamp, callers
// are expected to validate the page number themselves.
func Paginate(listings []models.Listing, page, size int) []models.Listing {
	if page < 1 || size <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(listings) {
		return nil
	}
	end := start + size
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end]
}
