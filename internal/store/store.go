package store

import (
	"context"
	"fmt"

	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

// Store is the keyed entity store the handlers read and write.
// Load returns (nil, nil) when the record does not exist.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	CursorStore

	// Load retrieves the record of kind with id
	Load(ctx context.Context, kind schema.Kind, id string) (schema.Entity, error)
	// Save inserts or fully replaces a record
	Save(ctx context.Context, entity schema.Entity) error
	// Remove deletes the record of kind with id. Removing an absent record is not an error.
	Remove(ctx context.Context, kind schema.Kind, id string) error
	// Transaction runs fn against a store whose writes commit together or not at all
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// Find loads a record and asserts its concrete type.
// It returns the zero value of T when the record does not exist.
func Find[T schema.Entity](ctx context.Context, s Store, id string) (T, error) {
	var zero T
	e, err := s.Load(ctx, zero.Kind(), id)
	if err != nil || e == nil {
		return zero, err
	}

	t, ok := e.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected record type %T for kind %s", e, zero.Kind())
	}
	return t, nil
}
