// Package store abstracts the tree-shaped document store the services
// persist into. Production uses Firebase Realtime Database; tests and local
// development use an in-memory tree with the same semantics.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the node at the path is absent.
// The document tree does not distinguish "never written" from "deleted";
// both read back as absent.
var ErrNotFound = errors.New("store: not found")

// Client is the capability surface services use to read and write nodes.
// Paths are slash-separated from the tree root, e.g. "carts/uid-1/items".
type Client interface {
	// Get unmarshals the node at path into v. ErrNotFound when absent.
	Get(ctx context.Context, path string, v interface{}) error

	// Set writes v at path, replacing whatever was there.
	Set(ctx context.Context, path string, v interface{}) error

	// Update merges fields into the node at path, leaving siblings alone.
	Update(ctx context.Context, path string, fields map[string]interface{}) error

	// Delete removes the node at path. Deleting an absent node is a no-op.
	Delete(ctx context.Context, path string) error

	// Push writes v under a freshly generated child key of path and
	// returns that key. Keys are unique and roughly time-ordered.
	Push(ctx context.Context, path string, v interface{}) (string, error)
}

// IsNotFound reports whether err means the requested node was absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
