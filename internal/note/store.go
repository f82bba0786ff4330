package note

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("note not found")

// Store is implemented by every persistence backend.
//
// Create assigns the ID. Update and Delete return ErrNotFound when the
// selector matches nothing, including when the ID is not in the backend's
// format.
type Store interface {
	Create(ctx context.Context, n Note) (Note, error)
	List(ctx context.Context, f Filter) ([]Note, error)
	Update(ctx context.Context, sel Selector, text string, tags []string) (Note, error)
	Delete(ctx context.Context, sel Selector) error
	Close(ctx context.Context) error
}
