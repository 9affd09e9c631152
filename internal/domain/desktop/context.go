package desktop

import "context"

type storeKey struct{}

// WithStore returns a context carrying store
func WithStore(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, store)
}

// StoreFrom returns the store carried by ctx. It panics when ctx carries
// none.
func StoreFrom(ctx context.Context) *Store {
	if store, ok := ctx.Value(storeKey{}).(*Store); ok && store != nil {
		return store
	}
	panic("desktop: StoreFrom called outside a desktop scope; wrap the context with desktop.WithStore during initialization")
}

// MustStore panics when store is nil. Surfaces call it from their
// constructors.
func MustStore(store *Store, component string) *Store {
	if store == nil {
		panic("desktop: " + component + " constructed without a desktop store")
	}
	return store
}
