// Package resource owns the renderable objects shared across frames: geometries,
// materials and text labels. Everything it creates lives until the owning scene
// unmounts and is then disposed exactly once.
package resource

import "fmt"

// Disposable is a value holding resources that must be released explicitly.
type Disposable interface {
	Dispose()
}

// Cache is a lazily filled map of disposable values. It never evicts; Clear
// disposes every value and empties the map.
// A Cache is not safe for concurrent use.
type Cache[K comparable, V Disposable] struct {
	entries map[K]V
}

// NewCache creates an empty cache.
func NewCache[K comparable, V Disposable]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]V)}
}

// Get returns the value stored under key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Has reports whether key is present.
func (c *Cache[K, V]) Has(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Set stores v under key. Overwriting a live entry would leak it, so Set panics
// when key is already present.
func (c *Cache[K, V]) Set(key K, v V) {
	if _, ok := c.entries[key]; ok {
		panic(fmt.Sprintf("resource: cache key %v already set", key))
	}
	c.entries[key] = v
}

// GetOrCreate returns the value under key, calling build and storing its result
// on a miss.
func (c *Cache[K, V]) GetOrCreate(key K, build func() V) V {
	if v, ok := c.entries[key]; ok {
		return v
	}
	v := build()
	c.entries[key] = v
	return v
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// ForEach calls fn for every entry in unspecified order.
func (c *Cache[K, V]) ForEach(fn func(K, V)) {
	for k, v := range c.entries {
		fn(k, v)
	}
}

// Clear disposes every value and empties the cache.
func (c *Cache[K, V]) Clear() {
	for k, v := range c.entries {
		v.Dispose()
		delete(c.entries, k)
	}
}
