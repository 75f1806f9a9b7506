package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/azhark/cottagecatalog/internal/client/models"
	"github.com/azhark/cottagecatalog/internal/logging"
)

// restClient talks JSON over HTTP. One instance is shared by all services;
// it is safe for concurrent use because *http.Client is.
type restClient struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
	log     logging.Logger
}

// NewRESTClient builds a Client against baseURL. token may be nil for an
// anonymous client. The timeout is explicit because the backend offers no
// server-side deadline of its own.
func NewRESTClient(baseURL string, timeout time.Duration, token TokenFunc, log logging.Logger) Client {
	return &restClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
		log:     log.With("component", "api"),
	}
}

// checkPath rejects endpoints assembled from a missing or unparsable id
// before any bytes hit the wire. The bug class this guards against is a
// caller formatting a zero-value or sentinel id into a resource path.
func checkPath(path string) error {
	switch {
	case !strings.HasPrefix(path, "/"):
		return fmt.Errorf("%w: path %q must be absolute", ErrInvalidRequest, path)
	case strings.Contains(path, "NaN"):
		return fmt.Errorf("%w: path %q contains a malformed identifier", ErrInvalidRequest, path)
	case strings.Contains(path, "//") || strings.HasSuffix(path, "/"):
		return fmt.Errorf("%w: path %q has an empty segment", ErrInvalidRequest, path)
	}
	return nil
}

// checkID validates a resource identifier destined for a path segment.
func checkID(resource string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s id %d", ErrInvalidRequest, resource, id)
	}
	return nil
}

func (c *restClient) Do(ctx context.Context, method, path string, body any, out any) error {
	if err := checkPath(path); err != nil {
		return err
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		if t := c.token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %s %s: %s", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}

func (c *restClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.Do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *restClient) GetUser(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	if err := checkID("user", id); err != nil {
		return u, err
	}
	err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &u)
	return u, err
}

func (c *restClient) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	var created models.User
	err := c.Do(ctx, http.MethodPost, "/users", u, &created)
	return created, err
}

func (c *restClient) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	var updated models.User
	if err := checkID("user", u.ID); err != nil {
		return updated, err
	}
	err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", u.ID), u, &updated)
	return updated, err
}

func (c *restClient) DeleteUser(ctx context.Context, id int64) error {
	if err := checkID("user", id); err != nil {
		return err
	}
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}

func (c *restClient) ListCottages(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	if err := c.Do(ctx, http.MethodGet, "/cottages", nil, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (c *restClient) GetCottage(ctx context.Context, id int64) (models.Listing, error) {
	var l models.Listing
	if err := checkID("cottage", id); err != nil {
		return l, err
	}
	err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/cottages/%d", id), nil, &l)
	return l, err
}

func (c *restClient) CreateCottage(ctx context.Context, l models.Listing) (models.Listing, error) {
	var created models.Listing
	err := c.Do(ctx, http.MethodPost, "/cottages", l, &created)
	return created, err
}

func (c *restClient) UpdateCottage(ctx context.Context, l models.Listing) (models.Listing, error) {
	var updated models.Listing
	if err := checkID("cottage", l.ID); err != nil {
		return updated, err
	}
	err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/cottages/%d", l.ID), l, &updated)
	return updated, err
}

func (c *restClient) DeleteCottage(ctx context.Context, id int64) error {
	if err := checkID("cottage", id); err != nil {
		return err
	}
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/cottages/%d", id), nil, nil)
}

func (c *restClient) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	var favs []models.Favorite
	if err := c.Do(ctx, http.MethodGet, "/favorites", nil, &favs); err != nil {
		return nil, err
	}
	return favs, nil
}

func (c *restClient) CreateFavorite(ctx context.Context, f models.Favorite) (models.Favorite, error) {
	var created models.Favorite
	err := c.Do(ctx, http.MethodPost, "/favorites", f, &created)
	return created, err
}

func (c *restClient) DeleteFavorite(ctx context.Context, id int64) error {
	if err := checkID("favorite", id); err != nil {
		return err
	}
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/favorites/%d", id), nil, nil)
}

func (c *restClient) ListSessions(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := c.Do(ctx, http.MethodGet, "/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *restClient) CreateSession(ctx context.Context, s models.Session) (models.Session, error) {
	var created models.Session
	err := c.Do(ctx, http.MethodPost, "/sessions", s, &created)
	return created, err
}

func (c *restClient) DeleteSession(ctx context.Context, id int64) error {
	if err := checkID("session", id); err != nil {
		return err
	}
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/sessions/%d", id), nil, nil)
}
