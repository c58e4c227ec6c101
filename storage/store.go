// Package storage is the string-keyed local store behind the storefront state
// and the typed persistence helpers layered on top of it.
package storage

import (
	"context"
	"errors"
)

// Keys used by the storefront.
const (
	OrdersKey   = "@playstation_orders"
	UserKey     = "@playstation_user"
	ProductsKey = "@playstation_products"
	CartKey     = "cart"
	ThemeKey    = "@theme_preference"
	PaymentsKey = "payments"

	// BootstrapUserKey and BootstrapCartKey are the generic pair read by the startup path.
	BootstrapUserKey = "user"
	BootstrapCartKey = CartKey
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage: store closed")

// Mutation is one write inside an atomic Apply. A nil Value removes the key.
type Mutation struct {
	Key   string
	Value *string
}

func SetMutation(key, value string) Mutation {
	return Mutation{Key: key, Value: &value}
}

func RemoveMutation(key string) Mutation {
	return Mutation{Key: key}
}

// Store is a string-keyed key-value store.
type Store interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	// Apply performs all mutations or none.
	Apply(ctx context.Context, muts []Mutation) error
	Close() error
}
