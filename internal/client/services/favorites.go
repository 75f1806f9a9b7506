package services

import (
	"context"
	"fmt"
	"time"

	"github.com/azhark/cottagecatalog/internal/client/api"
	"github.com/azhark/cottagecatalog/internal/client/models"
	"github.com/azhark/cottagecatalog/internal/client/repositories/favcache"
	"github.com/azhark/cottagecatalog/internal/logging"
)

// FavoritesService resolves the many-to-many relation between users and
// listings via the /favorites join resource. The backend enforces no
// uniqueness, so the service guards the one-favorite-per-pair invariant
// itself with a check before every insert.
type FavoritesService interface {
	List(ctx context.Context, userID int64) ([]models.Favorite, error)
	Add(ctx context.Context, userID, cottageID int64) (models.Favorite, error)
	Remove(ctx context.Context, favoriteID int64) error
	ResolveWithListings(ctx context.Context, userID int64) ([]models.FavoriteListing, error)
	ClearAll(ctx context.Context, userID int64) (int, error)

	// CachedIDs returns the locally cached favorite cottage ids. This is a
	// rendering hint (heart icons before the server answers), never truth.
	CachedIDs(ctx context.Context) ([]int64, error)
	Refresh(ctx context.Context, userID int64) error
}

type favoritesService struct {
	client api.Client
	cache  favcache.Repository
	log    logging.Logger
}

func NewFavoritesService(client api.Client, cache favcache.Repository, log logging.Logger) FavoritesService {
	return &favoritesService{client: client, cache: cache, log: log.With("component", "favorites")}
}

// List returns every favorite belonging to userID. The backend returns the
// whole join table, so ownership is filtered here. Order is not significant.
func (s *favoritesService) List(ctx context.Context, userID int64) ([]models.Favorite, error) {
	all, err := s.client.ListFavorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}

	var out []models.Favorite
	for _, f := range all {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

// Add creates the favorite unless one already exists for the pair.
func (s *favoritesService) Add(ctx context.Context, userID, cottageID int64) (models.Favorite, error) {
	existing, err := s.List(ctx, userID)
	if err != nil {
		return models.Favorite{}, err
	}
	for _, f := range existing {
		if f.CottageID == cottageID {
			return models.Favorite{}, api.ErrDuplicateFavorite
		}
	}

	created, err := s.client.CreateFavorite(ctx, models.Favorite{
		UserID:    userID,
		CottageID: cottageID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return models.Favorite{}, fmt.Errorf("create favorite: %w", err)
	}

	if err := s.cache.Add(ctx, cottageID); err != nil {
		s.log.Warn(ctx, "favorite cache update failed", "cottageId", cottageID, "error", err)
	}
	return created, nil
}

// Remove deletes the favorite by id. A missing id is reported as
// api.ErrNotFound, but the user-visible outcome — the favorite is absent —
// holds either way.
func (s *favoritesService) Remove(ctx context.Context, favoriteID int64) error {
	// Look the record up first so the cache can be kept in step. Best
	// effort: a stale cache is reconciled on the next Refresh.
	var cottageID int64
	if all, err := s.client.ListFavorites(ctx); err == nil {
		for _, f := range all {
			if f.ID == favoriteID {
				cottageID = f.CottageID
				break
			}
		}
	}

	if err := s.client.DeleteFavorite(ctx, favoriteID); err != nil {
		return fmt.Errorf("delete favorite %d: %w", favoriteID, err)
	}

	if cottageID != 0 {
		if err := s.cache.Remove(ctx, cottageID); err != nil {
			s.log.Warn(ctx, "favorite cache update failed", "cottageId", cottageID, "error", err)
		}
	}
	return nil
}

// ResolveWithListings joins the user's favorites to the listings they point
// at. A favorite whose listing has been deleted is dropped silently: a
// removed cottage must not break the favorites page. The local id cache is
// refreshed with the confirmed result as a side effect.
func (s *favoritesService) ResolveWithListings(ctx context.Context, userID int64) ([]models.FavoriteListing, error) {
	favs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	listings, err := s.client.ListCottages(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cottages: %w", err)
	}

	byID := make(map[int64]models.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}

	out := make([]models.FavoriteListing, 0, len(favs))
	ids := make([]int64, 0, len(favs))
	for _, f := range favs {
		l, ok := byID[f.CottageID]
		if !ok {
			s.log.Debug(ctx, "favorite references deleted listing", "favoriteId", f.ID, "cottageId", f.CottageID)
			continue
		}
		out = append(out, models.FavoriteListing{Listing: l, FavoriteID: f.ID, AddedAt: f.CreatedAt})
		ids = append(ids, f.CottageID)
	}

	if err := s.cache.Replace(ctx, ids); err != nil {
		s.log.Warn(ctx, "favorite cache refresh failed", "error", err)
	}
	return out, nil
}

// ClearAll removes every favorite of the user as a sequence of independent
// deletes. There is no transaction behind it: a failure partway leaves the
// earlier deletes applied, and the returned count plus error tell the
// caller exactly that.
func (s *favoritesService) ClearAll(ctx context.Context, userID int64) (int, error) {
	favs, err := s.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, f := range favs {
		if err := s.client.DeleteFavorite(ctx, f.ID); err != nil {
			return removed, fmt.Errorf("cleared %d of %d favorites: %w", removed, len(favs), err)
		}
		removed++
		if cerr := s.cache.Remove(ctx, f.CottageID); cerr != nil {
			s.log.Warn(ctx, "favorite cache update failed", "cottageId", f.CottageID, "error", cerr)
		}
	}
	return removed, nil
}

func (s *favoritesService) CachedIDs(ctx context.Context) ([]int64, error) {
	return s.cache.List(ctx)
}

// Refresh reconciles the local id cache with the server-confirmed favorites.
func (s *favoritesService) Refresh(ctx context.Context, userID int64) error {
	favs, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	ids := make([]int64, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.CottageID)
	}
	return s.cache.Replace(ctx, ids)
}
