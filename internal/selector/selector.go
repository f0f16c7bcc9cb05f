// Package selector provides the memoized-selector plumbing the hover engine
// computes its per-frame geometry through: pure functions of comparable
// inputs, recomputed only when the inputs change.
package selector

import (
	"sync"

	"github.com/hoverplot/hoverplot/internal/lrucache"
)

// Memoize wraps fn with an LRU cache over its argument. fn must be pure.
func Memoize[K, V comparable](capacity int, fn func(K) V) func(K) V {
	cache := lrucache.NewLruCache[K, V](capacity)
	return func(key K) V {
		if v, ok := cache.Get(key); ok {
			return v
		}
		v := fn(key)
		cache.Add(key, v)
		return v
	}
}

// Last memoizes only the previous call, which is enough for selectors fed by
// a single pointer stream where consecutive inputs rarely repeat further back.
type Last[K comparable, V any] struct {
	mu    sync.Mutex
	fn    func(K) V
	key   K
	val   V
	valid bool
}

func NewLast[K comparable, V any](fn func(K) V) *Last[K, V] {
	return &Last[K, V]{fn: fn}
}

func (l *Last[K, V]) Select(key K) V {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.valid && key == l.key {
		return l.val
	}
	l.key = key
	l.val = l.fn(key)
	l.valid = true
	return l.val
}

// Invalidate forces the next Select to recompute even for a repeated key.
func (l *Last[K, V]) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.valid = false
}
