// Package favcache keeps a local set of the current user's favorite cottage
// ids. It is a display hint only: the server-confirmed favorites are the
// source of truth, and the cache is reconciled against them after loads.
package favcache

import "context"

type Repository interface {
	Add(ctx context.Context, cottageID int64) error
	Remove(ctx context.Context, cottageID int64) error
	Has(ctx context.Context, cottageID int64) (bool, error)
	List(ctx context.Context) ([]int64, error)

	// Replace swaps the whole cached set for ids, atomically.
	Replace(ctx context.Context, ids []int64) error
	Clear(ctx context.Context) error
}
