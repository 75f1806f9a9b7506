// Package session persists the authenticated identity of the client:
// the bearer token plus the user record it belongs to. The two values are
// stored under fixed keys in the local metadata table, mirroring the two
// storage keys the web client keeps.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/azhark/cottagecatalog/internal/client/models"
	"github.com/azhark/cottagecatalog/internal/dbx"
	"github.com/azhark/cottagecatalog/internal/logging"
)

const (
	keyToken = "authToken"
	keyUser  = "user"
)

// Record is the persisted session pair returned by Load.
type Record struct {
	Token string
	User  models.User
}

// Store reads and writes the session record. It never touches the network.
// Concurrent clients overwrite each other last-write-wins; the store makes
// no attempt to coordinate beyond per-call transactions.
type Store struct {
	db  *sql.DB
	log logging.Logger
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	return &Store{db: db, log: log.With("component", "session")}
}

// Save persists the user record and token together. Both writes happen in
// one transaction, so a failure can never leave only one of the two set.
func (s *Store) Save(ctx context.Context, token string, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyUser, data); err != nil {
			return err
		}
		return set(ctx, tx, keyToken, []byte(token))
	})
}

// Load returns the persisted session, or nil when no complete session is
// stored. A user record that fails to parse is treated as corrupt state:
// both keys are cleared and nil is returned, so nothing half-authenticated
// can survive a restart.
func (s *Store) Load(ctx context.Context) (*Record, error) {
	token, err := get(ctx, s.db, keyToken)
	if err != nil {
		return nil, err
	}
	data, err := get(ctx, s.db, keyUser)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 || len(data) == 0 {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.log.Warn(ctx, "stored user record is corrupt, clearing session", "error", err)
		if cerr := s.Clear(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, nil
	}

	return &Record{Token: string(token), User: user}, nil
}

// Clear removes both pieces of the session.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (?, ?)`, keyToken, keyUser); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		return nil
	})
}

func get(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set metadata[%s]: %w", key, err)
	}
	return nil
}
