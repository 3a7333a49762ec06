package member

import (
	"sync"
)

// Cache holds the resolved sets of types for a generation session. Each type
// is written at most once; the first writer wins and later writers observe
// its set.
//
// Types are keyed independently, so concurrent generation for different types
// never blocks each other.
type Cache struct {
	m sync.Map // map[string]*Set
}

// NewCache creates an empty [Cache].
func NewCache() *Cache {
	return &Cache{}
}

// Store records the set for the type if absent. It returns the set actually
// cached and whether this call has stored it.
func (c *Cache) Store(t *Type, s *Set) (*Set, bool) {
	actual, loaded := c.m.LoadOrStore(t.Key(), s)
	return actual.(*Set), !loaded
}

// Load returns the cached set for the type.
func (c *Cache) Load(t *Type) (*Set, bool) {
	v, ok := c.m.Load(t.Key())
	if !ok {
		return nil, false
	}
	return v.(*Set), true
}
