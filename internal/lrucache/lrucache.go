package lrucache

import (
	"container/list"
	"sync"
)

type LruCache[K, V comparable] interface {
	Get(key K) (V, bool)
	Add(key K, val V)
	Len() int
	Purge()
}

type lruCache[K, V comparable] struct {
	mu      sync.Mutex
	cap     int
	order   *list.List
	entries map[K]*list.Element
}

type entry[K, V comparable] struct {
	key K
	val V
}

func NewLruCache[K, V comparable](capacity int) LruCache[K, V] {
	return &lruCache[K, V]{
		cap:     max(1, capacity),
		order:   list.New(),
		entries: make(map[K]*list.Element),
	}
}

func (c *lruCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, ok := c.entries[key]; ok {
		c.order.MoveToFront(ele)
		return ele.Value.(entry[K, V]).val, true
	}
	return *new(V), false
}

func (c *lruCache[K, V]) Add(key K, val V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, ok := c.entries[key]; ok {
		ele.Value = entry[K, V]{key: key, val: val}
		c.order.MoveToFront(ele)
		return
	}
	c.entries[key] = c.order.PushFront(entry[K, V]{key: key, val: val})
	if c.order.Len() > c.cap {
		if tail := c.order.Back(); tail != nil {
			c.order.Remove(tail)
			delete(c.entries, tail.Value.(entry[K, V]).key)
		}
	}
}

func (c *lruCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Purge drops every entry, for when the state the cached values derive from
// has been invalidated wholesale.
func (c *lruCache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.entries)
}
