package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/azhark/cottagecatalog/internal/client/api"
)

// Favorites renders the user's favorites joined with their listings.
// Entries whose listing was deleted are already dropped by the service.
func (a *App) Favorites(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	resolved, err := a.favorites.ResolveWithListings(ctx, a.auth.CurrentUser().ID)
	if err != nil {
		a.log.Error(ctx, "error loading favorites", "error", err)
		printlnFn(a.t("favorites.errors.loadError"))
		return nil
	}
	if len(resolved) == 0 {
		printlnFn(a.t("favorites.empty"))
		return nil
	}

	for _, fl := range resolved {
		printlnFn(fmt.Sprintf("%s  (favorite #%d, added %s)",
			a.listingLine(fl.Listing, true), fl.FavoriteID, fl.AddedAt.Format("2006-01-02")))
	}
	return nil
}

func (a *App) AddFavorite(ctx context.Context, arg string) error {
	if !a.requireAuth() {
		return nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		printlnFn("Usage: fav <cottageId>")
		return nil
	}

	if _, err := a.favorites.Add(ctx, a.auth.CurrentUser().ID, id); err != nil {
		if errors.Is(err, api.ErrDuplicateFavorite) {
			printlnFn(a.t("favorites.alreadyAdded"))
			return nil
		}
		a.log.Error(ctx, "error adding favorite", "cottageId", id, "error", err)
		printlnFn("Could not add favorite:", err.Error())
		return nil
	}
	printlnFn(a.t("favorites.added"))
	return nil
}

func (a *App) RemoveFavorite(ctx context.Context, arg string) error {
	if !a.requireAuth() {
		return nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		printlnFn("Usage: unfav <favoriteId>")
		return nil
	}

	if err := a.favorites.Remove(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			// The favorite is gone either way; say so instead of failing.
			printlnFn(a.t("favorites.removed"))
			return nil
		}
		a.log.Error(ctx, "error removing favorite", "favoriteId", id, "error", err)
		printlnFn("Could not remove favorite:", err.Error())
		return nil
	}
	printlnFn(a.t("favorites.removed"))
	return nil
}

// ClearFavorites removes all favorites one by one. A partial failure is
// reported with the count that did go through.
func (a *App) ClearFavorites(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	removed, err := a.favorites.ClearAll(ctx, a.auth.CurrentUser().ID)
	if err != nil {
		a.log.Error(ctx, "error clearing favorites", "removed", removed, "error", err)
		printlnFn(fmt.Sprintf("Removed %d favorites before a failure: %s", removed, err))
		return nil
	}
	printlnFn(a.t("favorites.cleared"))
	return nil
}
