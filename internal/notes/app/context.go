package app

import (
	"context"
	"errors"

	"localnotes/internal/notes/ports/api"
)

// ErrStoreNotInitialized is raised when the store API is used outside a context
// that carries an initialized store.
var ErrStoreNotInitialized = errors.New("note store used outside of an initialized store context")

type storeKeyType struct{}

var storeKey = storeKeyType{}

// NewContext returns a context carrying store.
func NewContext(ctx context.Context, store api.NoteStore) context.Context {
	return context.WithValue(ctx, storeKey, store)
}

// FromContext extracts the store from ctx.
func FromContext(ctx context.Context) (api.NoteStore, error) {
	if ctx == nil {
		return nil, ErrStoreNotInitialized
	}
	store, ok := ctx.Value(storeKey).(api.NoteStore)
	if !ok || store == nil {
		return nil, ErrStoreNotInitialized
	}
	return store, nil
}

// MustFromContext is FromContext for callers that cannot work without a store.
// It panics with ErrStoreNotInitialized since a missing store is a wiring bug.
func MustFromContext(ctx context.Context) api.NoteStore {
	store, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return store
}
