// Package cache is a read-through cache for service reads with
// collection-level invalidation.
//
// Keys have the form "<collection>:<part>:<part>...", built with Key.
// Writers call InvalidatePrefix with Collection(name) to drop every
// cached read of that collection at once.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	InvalidatePrefix(prefix string)
}

// Collection returns the key prefix shared by every key of a collection.
func Collection(name string) string {
	return name + ":"
}

func Key(collection string, parts ...any) string {
	var b strings.Builder
	b.WriteString(Collection(collection))
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(':')
		}
		fmt.Fprint(&b, p)
	}
	return b.String()
}

// GetOrFetch returns the cached value for key, or calls fetch and caches
// its result. Errors are never cached.
func GetOrFetch[T any](ctx context.Context, c Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}

	t, err := fetch(ctx)
	if err != nil {
		return t, err
	}
	c.Set(key, t)
	return t, nil
}

type Memory struct {
	store *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{store: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(key string) (any, bool) {
	return m.store.Get(key)
}

func (m *Memory) Set(key string, value any) {
	m.store.SetDefault(key, value)
}

func (m *Memory) InvalidatePrefix(prefix string) {
	for key := range m.store.Items() {
		if strings.HasPrefix(key, prefix) {
			m.store.Delete(key)
		}
	}
}

func (m *Memory) Len() int {
	return m.store.ItemCount()
}

// Noop caches nothing.
type Noop struct{}

func (Noop) Get(string) (any, bool)  { return nil, false }
func (Noop) Set(string, any)         {}
func (Noop) InvalidatePrefix(string) {}

// New returns a Memory cache, or Noop when ttl is not positive.
func New(ttl time.Duration) Cache {
	if ttl <= 0 {
		return Noop{}
	}
	return NewMemory(ttl)
}
