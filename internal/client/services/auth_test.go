package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/azhark/cottagecatalog/internal/client/api"
	"github.com/azhark/cottagecatalog/internal/client/models"
	"github.com/azhark/cottagecatalog/internal/client/session"
	"github.com/azhark/cottagecatalog/internal/logging"
)

func seedUsers() []models.User {
	return []models.User{
		{
			ID: 1, Email: "aset@example.org", Phone: "+77010000001",
			Password: "correct-horse", FirstName: "Aset", LastName: "K",
			Role: models.RoleUser, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: 2, Email: "admin@example.org", Phone: "+77010000002",
			Password: "admin-pass-1", FirstName: "Dana", LastName: "A",
			Role: models.RoleAdmin, CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

func newAuth(t *testing.T, fc *fakeClient, fs *fakeStore) AuthService {
	t.Helper()
	return NewAuthService(context.Background(), fc, fs, logging.NewDiscard())
}

func TestLogin_ByEmail(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	fs := &fakeStore{}
	s := newAuth(t, fc, fs)

	u, err := s.Login(context.Background(), "aset@example.org", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)

	require.True(t, s.IsAuthenticated())
	require.False(t, s.IsAdmin())
	require.NotEmpty(t, s.Token())

	// Persisted with a non-empty token.
	require.NotNil(t, fs.Rec)
	require.Equal(t, s.Token(), fs.Rec.Token)
	require.Equal(t, int64(1), fs.Rec.User.ID)

	// Session recorded server-side for the same user.
	require.Len(t, fc.Sessions, 1)
	require.Equal(t, int64(1), fc.Sessions[0].UserID)
	require.Equal(t, s.Token(), fc.Sessions[0].Token)
}

func TestLogin_ByPhone(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	s := newAuth(t, fc, &fakeStore{})

	u, err := s.Login(context.Background(), "+77010000002", "admin-pass-1")
	require.NoError(t, err)
	require.Equal(t, int64(2), u.ID)
	require.True(t, s.IsAdmin())
}

func TestLogin_WrongPassword(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	fs := &fakeStore{}
	s := newAuth(t, fc, fs)

	_, err := s.Login(context.Background(), "aset@example.org", "wrong")
	require.ErrorIs(t, err, api.ErrInvalidCredentials)

	require.False(t, s.IsAuthenticated())
	require.Nil(t, fs.Rec, "no session may be persisted after a failed login")
	require.Empty(t, fc.Sessions)
}

func TestLogin_UnknownUserClearsPreviousSession(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	fs := &fakeStore{Rec: &session.Record{Token: "old", User: seedUsers()[0]}}
	s := newAuth(t, fc, fs)
	require.True(t, s.IsAuthenticated())

	_, err := s.Login(context.Background(), "nobody@example.org", "x")
	require.ErrorIs(t, err, api.ErrInvalidCredentials)
	require.False(t, s.IsAuthenticated())
	require.Nil(t, fs.Rec)
}

func TestLogin_TokensAreUnique(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	s := newAuth(t, fc, &fakeStore{})
	ctx := context.Background()

	_, err := s.Login(ctx, "aset@example.org", "correct-horse")
	require.NoError(t, err)
	first := s.Token()

	_, err = s.Login(ctx, "aset@example.org", "correct-horse")
	require.NoError(t, err)
	require.NotEqual(t, first, s.Token())
}

func TestLogin_SessionRecordFailureIsNonFatal(t *testing.T) {
	fc := &fakeClient{Users: seedUsers(), CreateSessErr: errors.New("boom")}
	fs := &fakeStore{}
	s := newAuth(t, fc, fs)

	_, err := s.Login(context.Background(), "aset@example.org", "correct-horse")
	require.NoError(t, err)
	require.True(t, s.IsAuthenticated())
	require.NotNil(t, fs.Rec)
}

func TestLogin_PersistFailureLeavesNoSession(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	fs := &fakeStore{SaveErr: errors.New("disk full")}
	s := newAuth(t, fc, fs)

	_, err := s.Login(context.Background(), "aset@example.org", "correct-horse")
	require.Error(t, err)
	require.False(t, s.IsAuthenticated())
	require.NotZero(t, fs.ClearCalls)
}

func TestRegister_ThenLoginSucceeds(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	fs := &fakeStore{}
	s := newAuth(t, fc, fs)

	u, err := s.Register(context.Background(), RegisterData{
		Email:     "botagoz@example.org",
		Phone:     "+77019998877",
		Password:  "sunny-meadow-9",
		FirstName: "Botagoz",
		LastName:  "N",
	})
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	require.Equal(t, models.RoleUser, u.Role)
	require.True(t, s.IsAuthenticated())
	require.Len(t, fc.Users, 3)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	s := newAuth(t, fc, &fakeStore{})

	_, err := s.Register(context.Background(), RegisterData{
		Email:     "aset@example.org",
		Phone:     "+77015554433",
		Password:  "whatever-12",
		FirstName: "X",
		LastName:  "Y",
	})
	require.ErrorIs(t, err, api.ErrUserExists)
	require.Len(t, fc.Users, 2, "no second record may be created")
}

func TestRegister_DuplicatePhone(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	s := newAuth(t, fc, &fakeStore{})

	_, err := s.Register(context.Background(), RegisterData{
		Email:     "fresh@example.org",
		Phone:     "+77010000001",
		Password:  "whatever-12",
		FirstName: "X",
		LastName:  "Y",
	})
	require.ErrorIs(t, err, api.ErrUserExists)
	require.Len(t, fc.Users, 2)
}

func TestRegister_InvalidInputShortCircuits(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	s := newAuth(t, fc, &fakeStore{})

	cases := []RegisterData{
		{Email: "not-an-email", Phone: "+77012223344", Password: "longenough1", FirstName: "A", LastName: "B"},
		{Email: "a@b.cd", Phone: "87012223344", Password: "longenough1", FirstName: "A", LastName: "B"},
		{Email: "a@b.cd", Phone: "+77012223344", Password: "short", FirstName: "A", LastName: "B"},
		{Email: "a@b.cd", Phone: "+77012223344", Password: "longenough1", FirstName: "", LastName: "B"},
	}
	for _, data := range cases {
		_, err := s.Register(context.Background(), data)
		require.ErrorIs(t, err, ErrValidation)
	}
	require.Zero(t, fc.ListUsersCalls, "validation failures must not hit the network")
}

func TestLogout_DeletesServerSessionAndClearsLocal(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	fs := &fakeStore{}
	s := newAuth(t, fc, fs)

	_, err := s.Login(context.Background(), "aset@example.org", "correct-horse")
	require.NoError(t, err)
	sessID := fc.Sessions[0].ID

	require.NoError(t, s.Logout(context.Background()))
	require.False(t, s.IsAuthenticated())
	require.Nil(t, fs.Rec)
	require.Contains(t, fc.DeletedSessions, sessID)
}

func TestLogout_ServerFailureStillClearsLocal(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	fs := &fakeStore{}
	s := newAuth(t, fc, fs)

	_, err := s.Login(context.Background(), "aset@example.org", "correct-horse")
	require.NoError(t, err)

	fc.ListSessionsErr = errors.New("backend down")
	require.NoError(t, s.Logout(context.Background()))
	require.False(t, s.IsAuthenticated())
	require.Nil(t, fs.Rec)
}

func TestNewAuthService_RestoresPersistedSession(t *testing.T) {
	admin := seedUsers()[1]
	fs := &fakeStore{Rec: &session.Record{Token: "tok-restored", User: admin}}
	s := newAuth(t, &fakeClient{}, fs)

	require.True(t, s.IsAuthenticated())
	require.True(t, s.IsAdmin())
	require.Equal(t, "tok-restored", s.Token())
	require.Equal(t, admin.ID, s.CurrentUser().ID)
}

func TestUpdateProfile_SelfRefreshesSession(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	fs := &fakeStore{}
	s := newAuth(t, fc, fs)

	_, err := s.Login(context.Background(), "aset@example.org", "correct-horse")
	require.NoError(t, err)

	me := *s.CurrentUser()
	me.FirstName = "Asset"
	updated, err := s.UpdateProfile(context.Background(), me)
	require.NoError(t, err)
	require.Equal(t, "Asset", updated.FirstName)
	require.Equal(t, "Asset", s.CurrentUser().FirstName)
	require.Equal(t, "Asset", fs.Rec.User.FirstName)
}

func TestUpdateProfile_OtherUserLeavesSessionAlone(t *testing.T) {
	fc := &fakeClient{Users: seedUsers()}
	fs := &fakeStore{}
	s := newAuth(t, fc, fs)

	_, err := s.Login(context.Background(), "admin@example.org", "admin-pass-1")
	require.NoError(t, err)

	other := seedUsers()[0]
	other.LastName = "Edited"
	_, err = s.UpdateProfile(context.Background(), other)
	require.NoError(t, err)
	require.Equal(t, int64(2), s.CurrentUser().ID)
	require.Equal(t, int64(2), fs.Rec.User.ID)
}
