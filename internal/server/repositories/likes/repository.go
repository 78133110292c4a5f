// Package likes stores one like per (post, visitor) pair. The visitor is an
// opaque hash, never a raw address.
package likes

import "context"

type Repository interface {
	// Add records the like and reports whether it was new.
	Add(ctx context.Context, blogID, visitor string, at int64) (bool, error)
	Has(ctx context.Context, blogID, visitor string) (bool, error)
	Count(ctx context.Context, blogID string) (int, error)
}
