// Package metadata stores small named string values in the client database.
// The session store keeps its token pair here.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value of key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set inserts or overwrites key.
	Set(ctx context.Context, key, value string) error
	// Delete removes the given keys; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	// List returns every stored pair.
	List(ctx context.Context) (map[string]string, error)
}
