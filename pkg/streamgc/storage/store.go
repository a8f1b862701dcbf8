// Package storage provides artifact storage backends for checkpoint
// retention and recovery.
package storage

import (
	"context"
	"errors"
)

// Store persists artifact bytes addressed by an opaque ref (a path or
// URI). Implementations must be safe for concurrent use.
type Store interface {
	// Write stores artifact bytes at ref.
	// Overwrites if an artifact already exists at ref.
	Write(ctx context.Context, ref string, data []byte) error

	// Read retrieves the artifact bytes at ref.
	// Returns ErrNotFound if no artifact exists there.
	Read(ctx context.Context, ref string) ([]byte, error)

	// Delete removes the artifact at ref. With recursive set, refs
	// nested under ref (directory-style "ref/...") are removed too.
	// Returns nil if nothing exists at ref.
	Delete(ctx context.Context, ref string, recursive bool) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no artifact exists at the given ref.
	ErrNotFound = errors.New("artifact not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("artifact store closed")
)

// Resolver yields a Store handle. Connection-backed stores can expire or
// go stale; callers that cache a handle re-resolve through this after a
// failed operation.
type Resolver interface {
	Resolve(ctx context.Context) (Store, error)
}

// StaticResolver always yields the same store.
type StaticResolver struct {
	store Store
}

// NewStaticResolver wraps a fixed store in a Resolver.
func NewStaticResolver(s Store) *StaticResolver {
	return &StaticResolver{store: s}
}

// Resolve implements Resolver.
func (r *StaticResolver) Resolve(_ context.Context) (Store, error) {
	return r.store, nil
}

// FuncResolver adapts a function to the Resolver interface.
type FuncResolver func(ctx context.Context) (Store, error)

// Resolve implements Resolver.
func (f FuncResolver) Resolve(ctx context.Context) (Store, error) {
	return f(ctx)
}
