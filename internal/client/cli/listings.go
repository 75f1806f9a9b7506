package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/azhark/cottagecatalog/internal/client/models"
	"github.com/azhark/cottagecatalog/internal/client/query"
)

// List renders the current page of the catalog under the active filters
// and sort order. Load failures degrade to an error message; the page
// never crashes on a bad read.
func (a *App) List(ctx context.Context) error {
	listings, err := a.api.ListCottages(ctx)
	if err != nil {
		a.log.Error(ctx, "error loading cottages", "error", err)
		printlnFn(a.t("cottages.errors.loadError"))
		return nil
	}

	filtered := query.Apply(listings, a.filter)
	sorted := query.Sort(filtered, a.sortBy)

	totalPages := query.TotalPages(len(sorted), a.config.PageSize)
	if totalPages == 0 {
		printlnFn(a.t("cottages.noResults"))
		return nil
	}
	// The engine does not clamp out-of-range pages; the view does.
	if a.page > totalPages {
		a.page = totalPages
	}
	if a.page < 1 {
		a.page = 1
	}

	var cachedIDs map[int64]bool
	if a.isLoggedIn() {
		cachedIDs = a.cachedFavoriteSet(ctx)
	}

	for _, l := range query.Paginate(sorted, a.page, a.config.PageSize) {
		printlnFn(a.listingLine(l, cachedIDs[l.ID]))
	}
	printlnFn(fmt.Sprintf("— page %d/%d (%d listings)", a.page, totalPages, len(sorted)))
	return nil
}

func (a *App) Search(ctx context.Context, term string) error {
	a.filter.Search = term
	a.page = 1
	return a.List(ctx)
}

func (a *App) SetSort(ctx context.Context, key string) error {
	switch k := query.SortKey(key); k {
	case query.SortPriceAsc, query.SortPriceDesc, query.SortAreaAsc, query.SortAreaDesc, query.SortNewest, query.SortOldest:
		a.sortBy = k
	default:
		printlnFn("Unknown sort key:", key)
		return nil
	}
	return a.List(ctx)
}

func (a *App) SetPage(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		printlnFn("Usage: page <n>")
		return fmt.Errorf("bad page %q", arg)
	}
	a.page = n
	return nil
}

// FilterPrompt interactively rebuilds the filter set, then re-renders.
// Empty answers leave a criterion unconstrained.
func (a *App) FilterPrompt(ctx context.Context) error {
	var f query.Filter

	search, err := getSimpleText(a.reader, "Title contains (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	f.Search = search

	category, err := getSimpleText(a.reader, "Category (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	f.Category = category

	status, err := getSimpleText(a.reader, "Status available/reserved/sold (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	f.Status = models.ListingStatus(status)

	priceMin, err := GetOptionalInt(a.reader, "Price from", os.Stdout)
	if err != nil {
		return err
	}
	priceMax, err := GetOptionalInt(a.reader, "Price to", os.Stdout)
	if err != nil {
		return err
	}
	f.PriceMin, f.PriceMax = priceMin, priceMax

	areaMin, err := GetOptionalInt(a.reader, "Area from", os.Stdout)
	if err != nil {
		return err
	}
	areaMax, err := GetOptionalInt(a.reader, "Area to", os.Stdout)
	if err != nil {
		return err
	}
	f.AreaMin, f.AreaMax = int(areaMin), int(areaMax)

	bedrooms, err := GetOptionalInt(a.reader, fmt.Sprintf("Bedrooms, %d means %d+", query.BedroomsCap, query.BedroomsCap), os.Stdout)
	if err != nil {
		return err
	}
	f.Bedrooms = int(bedrooms)

	a.filter = f
	a.page = 1
	return a.List(ctx)
}

func (a *App) Show(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		printlnFn("Usage: show <id>")
		return nil
	}

	l, err := a.api.GetCottage(ctx, id)
	if err != nil {
		a.log.Error(ctx, "error loading cottage", "id", id, "error", err)
		printlnFn(a.t("cottages.errors.loadError"))
		return nil
	}

	printlnFn(a.listingLine(l, false))
	if l.Description != "" {
		printlnFn(" ", l.Description)
	}
	if len(l.Images) > 0 {
		printlnFn("  images:", strings.Join(l.Images, ", "))
	}
	return nil
}

func (a *App) listingLine(l models.Listing, favorite bool) string {
	heart := " "
	if favorite {
		heart = "♥"
	}
	return fmt.Sprintf("%s #%-4d %-28s %10s ₸  %s, %d m², %d bd, %d ba, %d fl  [%s]",
		heart, l.ID, l.Title, formatPrice(l.Price), l.Location,
		l.Area, l.Bedrooms, l.Bathrooms, l.Floors, a.statusText(l.Status))
}

func (a *App) statusText(s models.ListingStatus) string {
	switch s {
	case models.StatusAvailable:
		return a.t("cottages.status.available")
	case models.StatusReserved:
		return a.t("cottages.status.reserved")
	default:
		return a.t("cottages.status.sold")
	}
}

// formatPrice groups digits by thousands: 2500000 -> "2 500 000".
func formatPrice(p int64) string {
	s := strconv.FormatInt(p, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func (a *App) cachedFavoriteSet(ctx context.Context) map[int64]bool {
	ids, err := a.favorites.CachedIDs(ctx)
	if err != nil {
		a.log.Warn(ctx, "favorite cache unavailable", "error", err)
		return nil
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
