package cart

import "context"

// Repository persists carts keyed by cart key.
// Load returns an empty cart when no state exists for the key.
// Save overwrites the stored state wholesale.
type Repository interface {
	Load(ctx context.Context, key string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
}
