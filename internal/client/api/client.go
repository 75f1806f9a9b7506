// Package api is the single point of contact with the catalog backend.
// It exposes typed operations over the REST resources (/users, /cottages,
// /favorites, /sessions) plus a generic passthrough for callers that build
// their own paths, and translates failures into the package's error taxonomy.
package api

import (
	"context"

	"github.com/azhark/cottagecatalog/internal/client/models"
)

// TokenFunc supplies the current bearer token, or "" when the client is
// anonymous. It is consulted on every request.
type TokenFunc func() string

// Client is the backend contract consumed by the service layer.
type Client interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	UpdateUser(ctx context.Context, u models.User) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	ListCottages(ctx context.Context) ([]models.Listing, error)
	GetCottage(ctx context.Context, id int64) (models.Listing, error)
	CreateCottage(ctx context.Context, l models.Listing) (models.Listing, error)
	UpdateCottage(ctx context.Context, l models.Listing) (models.Listing, error)
	DeleteCottage(ctx context.Context, id int64) error

	ListFavorites(ctx context.Context) ([]models.Favorite, error)
	CreateFavorite(ctx context.Context, f models.Favorite) (models.Favorite, error)
	DeleteFavorite(ctx context.Context, id int64) error

	ListSessions(ctx context.Context) ([]models.Session, error)
	CreateSession(ctx context.Context, s models.Session) (models.Session, error)
	DeleteSession(ctx context.Context, id int64) error

	// Do performs an arbitrary request against the backend. body (if non-nil)
	// is JSON-encoded; out (if non-nil) receives the decoded response body.
	Do(ctx context.Context, method, path string, body any, out any) error
}
