package services

import (
	"context"
	"net/http"

	"github.com/azhark/cottagecatalog/internal/client/api"
	"github.com/azhark/cottagecatalog/internal/client/models"
	"github.com/azhark/cottagecatalog/internal/client/session"
)

// fakeClient implements api.Client over in-memory slices, with per-call
// error injection for the paths the tests exercise.
type fakeClient struct {
	Users     []models.User
	Listings  []models.Listing
	Favorites []models.Favorite
	Sessions  []models.Session

	nextID int64

	ListUsersErr     error
	CreateUserErr    error
	UpdateUserErr    error
	ListFavoritesErr error
	CreateFavErr     error
	ListCottagesErr  error
	ListSessionsErr  error
	CreateSessErr    error
	DeleteSessErr    error

	// DeleteFavoriteErrOn fails the delete of a specific favorite id.
	DeleteFavoriteErrOn map[int64]error

	ListUsersCalls  int
	DeletedSessions []int64
}

func (f *fakeClient) id() int64 {
	f.nextID++
	return f.nextID + 1000
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]models.User, error) {
	f.ListUsersCalls++
	if f.ListUsersErr != nil {
		return nil, f.ListUsersErr
	}
	return append([]models.User(nil), f.Users...), nil
}

func (f *fakeClient) GetUser(ctx context.Context, id int64) (models.User, error) {
	for _, u := range f.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, &api.HTTPError{Status: http.StatusNotFound}
}

func (f *fakeClient) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	if f.CreateUserErr != nil {
		return models.User{}, f.CreateUserErr
	}
	u.ID = f.id()
	f.Users = append(f.Users, u)
	return u, nil
}

func (f *fakeClient) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	if f.UpdateUserErr != nil {
		return models.User{}, f.UpdateUserErr
	}
	for i := range f.Users {
		if f.Users[i].ID == u.ID {
			f.Users[i] = u
			return u, nil
		}
	}
	return models.User{}, &api.HTTPError{Status: http.StatusNotFound}
}

func (f *fakeClient) DeleteUser(ctx context.Context, id int64) error {
	for i, u := range f.Users {
		if u.ID == id {
			f.Users = append(f.Users[:i], f.Users[i+1:]...)
			return nil
		}
	}
	return &api.HTTPError{Status: http.StatusNotFound}
}

func (f *fakeClient) ListCottages(ctx context.Context) ([]models.Listing, error) {
	if f.ListCottagesErr != nil {
		return nil, f.ListCottagesErr
	}
	return append([]models.Listing(nil), f.Listings...), nil
}

func (f *fakeClient) GetCottage(ctx context.Context, id int64) (models.Listing, error) {
	for _, l := range f.Listings {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Listing{}, &api.HTTPError{Status: http.StatusNotFound}
}

func (f *fakeClient) CreateCottage(ctx context.Context, l models.Listing) (models.Listing, error) {
	l.ID = f.id()
	f.Listings = append(f.Listings, l)
	return l, nil
}

func (f *fakeClient) UpdateCottage(ctx context.Context, l models.Listing) (models.Listing, error) {
	for i := range f.Listings {
		if f.Listings[i].ID == l.ID {
			f.Listings[i] = l
			return l, nil
		}
	}
	return models.Listing{}, &api.HTTPError{Status: http.StatusNotFound}
}

func (f *fakeClient) DeleteCottage(ctx context.Context, id int64) error {
	for i, l := range f.Listings {
		if l.ID == id {
			f.Listings = append(f.Listings[:i], f.Listings[i+1:]...)
			return nil
		}
	}
	return &api.HTTPError{Status: http.StatusNotFound}
}

func (f *fakeClient) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	if f.ListFavoritesErr != nil {
		return nil, f.ListFavoritesErr
	}
	return append([]models.Favorite(nil), f.Favorites...), nil
}

func (f *fakeClient) CreateFavorite(ctx context.Context, fav models.Favorite) (models.Favorite, error) {
	if f.CreateFavErr != nil {
		return models.Favorite{}, f.CreateFavErr
	}
	fav.ID = f.id()
	f.Favorites = append(f.Favorites, fav)
	return fav, nil
}

func (f *fakeClient) DeleteFavorite(ctx context.Context, id int64) error {
	if err, ok := f.DeleteFavoriteErrOn[id]; ok {
		return err
	}
	for i, fav := range f.Favorites {
		if fav.ID == id {
			f.Favorites = append(f.Favorites[:i], f.Favorites[i+1:]...)
			return nil
		}
	}
	return &api.HTTPError{Status: http.StatusNotFound}
}

func (f *fakeClient) ListSessions(ctx context.Context) ([]models.Session, error) {
	if f.ListSessionsErr != nil {
		return nil, f.ListSessionsErr
	}
	return append([]models.Session(nil), f.Sessions...), nil
}

func (f *fakeClient) CreateSession(ctx context.Context, s models.Session) (models.Session, error) {
	if f.CreateSessErr != nil {
		return models.Session{}, f.CreateSessErr
	}
	s.ID = f.id()
	f.Sessions = append(f.Sessions, s)
	return s, nil
}

func (f *fakeClient) DeleteSession(ctx context.Context, id int64) error {
	if f.DeleteSessErr != nil {
		return f.DeleteSessErr
	}
	f.DeletedSessions = append(f.DeletedSessions, id)
	for i, s := range f.Sessions {
		if s.ID == id {
			f.Sessions = append(f.Sessions[:i], f.Sessions[i+1:]...)
			return nil
		}
	}
	return &api.HTTPError{Status: http.StatusNotFound}
}

func (f *fakeClient) Do(ctx context.Context, method, path string, body any, out any) error {
	return nil
}

// fakeStore implements SessionStore in memory.
type fakeStore struct {
	Rec      *session.Record
	SaveErr  error
	ClearErr error

	SaveCalls  int
	ClearCalls int
}

func (f *fakeStore) Save(ctx context.Context, token string, user models.User) error {
	f.SaveCalls++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Rec = &session.Record{Token: token, User: user}
	return nil
}

func (f *fakeStore) Load(ctx context.Context) (*session.Record, error) {
	return f.Rec, nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.ClearCalls++
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.Rec = nil
	return nil
}

// fakeCache implements favcache.Repository in memory.
type fakeCache struct {
	IDs          []int64
	ReplaceCalls [][]int64
}

func (f *fakeCache) Add(ctx context.Context, cottageID int64) error {
	for _, id := range f.IDs {
		if id == cottageID {
			return nil
		}
	}
	f.IDs = append(f.IDs, cottageID)
	return nil
}

func (f *fakeCache) Remove(ctx context.Context, cottageID int64) error {
	for i, id := range f.IDs {
		if id == cottageID {
			f.IDs = append(f.IDs[:i], f.IDs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeCache) Has(ctx context.Context, cottageID int64) (bool, error) {
	for _, id := range f.IDs {
		if id == cottageID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCache) List(ctx context.Context) ([]int64, error) {
	return append([]int64(nil), f.IDs...), nil
}

func (f *fakeCache) Replace(ctx context.Context, ids []int64) error {
	f.IDs = append([]int64(nil), ids...)
	f.ReplaceCalls = append(f.ReplaceCalls, f.IDs)
	return nil
}

func (f *fakeCache) Clear(ctx context.Context) error {
	f.IDs = nil
	return nil
}
