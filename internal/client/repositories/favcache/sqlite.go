package favcache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/azhark/cottagecatalog/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, cottageID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO favorite_cache (cottage_id) VALUES (?)
		ON CONFLICT(cottage_id) DO NOTHING
	`, cottageID)
	if err != nil {
		return fmt.Errorf("failed to cache favorite %d: %w", cottageID, err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, cottageID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorite_cache WHERE cottage_id = ?`, cottageID)
	if err != nil {
		return fmt.Errorf("failed to uncache favorite %d: %w", cottageID, err)
	}
	return nil
}

func (r *SQLiteRepository) Has(ctx context.Context, cottageID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM favorite_cache WHERE cottage_id = ?`, cottageID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check favorite cache: %w", err)
	}
	return true, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT cottage_id FROM favorite_cache ORDER BY cottage_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite cache: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite cache row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorite cache rows: %w", err)
	}
	return ids, nil
}

func (r *SQLiteRepository) Replace(ctx context.Context, ids []int64) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM favorite_cache`); err != nil {
			return fmt.Errorf("failed to reset favorite cache: %w", err)
		}
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, `INSERT INTO favorite_cache (cottage_id) VALUES (?)`, id); err != nil {
				return fmt.Errorf("failed to cache favorite %d: %w", id, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorite_cache`)
	if err != nil {
		return fmt.Errorf("failed to clear favorite cache: %w", err)
	}
	return nil
}
