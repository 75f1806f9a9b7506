// Package services contains the application services consumed by the UI
// layer: authentication/session management and favorites. Services talk to
// the backend through api.Client and to local state through the session
// store and the favorite-id cache; they never render anything.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/azhark/cottagecatalog/internal/client/api"
	"github.com/azhark/cottagecatalog/internal/client/models"
	"github.com/azhark/cottagecatalog/internal/client/session"
	"github.com/azhark/cottagecatalog/internal/logging"
)

// ErrValidation marks registration input rejected before any network call.
var ErrValidation = errors.New("validation failed")

// SessionStore is the persistence contract the auth service depends on.
// *session.Store satisfies it.
type SessionStore interface {
	Save(ctx context.Context, token string, user models.User) error
	Load(ctx context.Context) (*session.Record, error)
	Clear(ctx context.Context) error
}

// RegisterData is the registration form payload. Validation mirrors the
// site's form rules: a real email, an international phone number, and a
// password of at least eight characters.
type RegisterData struct {
	Email     string `validate:"required,email"`
	Phone     string `validate:"required,e164"`
	Password  string `validate:"required,min=8"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
}

// AuthService owns the client's session: login, registration, logout, and
// the authenticated/admin predicates the UI gates on.
//
// Contract:
//   - Login: match email-or-phone plus password against the user list;
//     persist a fresh opaque token on success, leave no session on failure.
//   - Register: reject duplicate email/phone, create the account, then log in.
//   - Logout: best-effort server-side session delete, unconditional local clear.
//   - CurrentUser/IsAuthenticated/IsAdmin: pure reads of the cached session.
type AuthService interface {
	Login(ctx context.Context, login, password string) (models.User, error)
	Register(ctx context.Context, data RegisterData) (models.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, u models.User) (models.User, error)

	CurrentUser() *models.User
	Token() string
	IsAuthenticated() bool
	IsAdmin() bool
}

// authService is the concrete AuthService. It keeps a transient in-memory
// copy of the session for the lifetime of the process, seeded from the
// store at construction. The copy is not guarded by a lock: the client is
// a single event-driven context, and two concurrent clients sharing one
// store simply overwrite each other last-write-wins.
type authService struct {
	client   api.Client
	store    SessionStore
	validate *validator.Validate
	log      logging.Logger

	token string
	user  *models.User
}

// NewAuthService constructs the service and restores any persisted session.
// A load failure is not fatal: the client starts anonymous.
func NewAuthService(ctx context.Context, client api.Client, store SessionStore, log logging.Logger) AuthService {
	s := &authService{
		client:   client,
		store:    store,
		validate: validator.New(),
		log:      log.With("component", "auth"),
	}

	rec, err := store.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "could not restore session", "error", err)
		return s
	}
	if rec != nil {
		s.token = rec.Token
		s.user = &rec.User
	}
	return s
}

func (s *authService) Login(ctx context.Context, login, password string) (models.User, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("load users: %w", err)
	}

	var match *models.User
	for i := range users {
		u := &users[i]
		if (u.Email == login || u.Phone == login) && u.Password == password {
			match = u
			break
		}
	}
	if match == nil {
		// A failed login must not leave a previous session looking active.
		s.reset(ctx)
		return models.User{}, api.ErrInvalidCredentials
	}

	token := uuid.NewString()

	// Record the session server-side so logout has something to invalidate.
	// Best effort: the local session stands on its own.
	if _, err := s.client.CreateSession(ctx, models.Session{
		Token:     token,
		UserID:    match.ID,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		s.log.Warn(ctx, "could not record session server-side", "error", err)
	}

	if err := s.store.Save(ctx, token, *match); err != nil {
		s.reset(ctx)
		return models.User{}, fmt.Errorf("persist session: %w", err)
	}

	s.token = token
	s.user = match
	s.log.Info(ctx, "logged in", "userId", match.ID)
	return *match, nil
}

func (s *authService) Register(ctx context.Context, data RegisterData) (models.User, error) {
	if err := s.validate.Struct(data); err != nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("load users: %w", err)
	}
	for _, u := range users {
		if u.Email == data.Email || u.Phone == data.Phone {
			return models.User{}, api.ErrUserExists
		}
	}

	// The backend assigns the id; the role always starts as plain user.
	if _, err := s.client.CreateUser(ctx, models.User{
		Email:     data.Email,
		Phone:     data.Phone,
		Password:  data.Password,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Role:      models.RoleUser,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	return s.Login(ctx, data.Email, data.Password)
}

// Logout deletes the server-side session record when one can be found, then
// clears the local session regardless. Server-side failures are logged and
// swallowed: the user ends up logged out locally no matter what.
func (s *authService) Logout(ctx context.Context) error {
	if s.token != "" {
		if err := s.deleteServerSession(ctx, s.token); err != nil {
			s.log.Warn(ctx, "server-side session cleanup failed", "error", err)
		}
	}

	err := s.store.Clear(ctx)
	s.token = ""
	s.user = nil
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}

func (s *authService) deleteServerSession(ctx context.Context, token string) error {
	sessions, err := s.client.ListSessions(ctx)
	if err != nil {
		return err
	}
	for _, sess := range sessions {
		if sess.Token == token {
			return s.client.DeleteSession(ctx, sess.ID)
		}
	}
	return nil
}

// UpdateProfile writes the user record through and, when the edited user is
// the logged-in one, refreshes both copies of the session.
func (s *authService) UpdateProfile(ctx context.Context, u models.User) (models.User, error) {
	updated, err := s.client.UpdateUser(ctx, u)
	if err != nil {
		return models.User{}, fmt.Errorf("update user %d: %w", u.ID, err)
	}

	if s.user != nil && s.user.ID == updated.ID {
		if err := s.store.Save(ctx, s.token, updated); err != nil {
			return models.User{}, fmt.Errorf("persist updated session: %w", err)
		}
		s.user = &updated
	}
	return updated, nil
}

func (s *authService) CurrentUser() *models.User {
	return s.user
}

func (s *authService) Token() string {
	return s.token
}

func (s *authService) IsAuthenticated() bool {
	return s.token != "" && s.user != nil
}

func (s *authService) IsAdmin() bool {
	return s.user != nil && s.user.IsAdmin()
}

// reset drops both the cached and the persisted session. Used on login
// failures so no partially-set state survives.
func (s *authService) reset(ctx context.Context) {
	s.token = ""
	s.user = nil
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error(ctx, "could not clear session store", "error", err)
	}
}
