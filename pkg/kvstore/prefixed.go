package kvstore

import "context"

type prefixedStore struct {
	next   Store
	prefix string
}

// Prefixed returns a Store view that namespaces every key as "prefix:key".
// An empty prefix returns store unchanged.
func Prefixed(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	return &prefixedStore{next: store, prefix: prefix + ":"}
}

func (p *prefixedStore) Get(ctx context.Context, key string) (string, bool, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *prefixedStore) Set(ctx context.Context, key, value string) error {
	return p.next.Set(ctx, p.prefix+key, value)
}

func (p *prefixedStore) Delete(ctx context.Context, key string) error {
	return p.next.Delete(ctx, p.prefix+key)
}
