// Package lru indexes cached values by recency of use. It backs the shaping
// cache of package text and the image cache.
package lru

type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]
}

// Cache maps keys to values ordered from most to least recently used.
// The zero Cache is empty and ready to use. It is not safe for concurrent
// use.
type Cache[K comparable, V any] struct {
	items map[K]*node[K, V]
	// head is the most recently used node.
	head, tail *node[K, V]
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int { return len(c.items) }

// Get returns the value of k and marks it used.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	n, ok := c.items[k]
	if !ok {
		var zero V
		return zero, false
	}
	c.touch(n)
	return n.value, true
}

// Peek returns the value of k without changing the order.
func (c *Cache[K, V]) Peek(k K) (V, bool) {
	n, ok := c.items[k]
	if !ok {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Put sets the value of k and marks it used.
func (c *Cache[K, V]) Put(k K, v V) {
	if n, ok := c.items[k]; ok {
		n.value = v
		c.touch(n)
		return
	}
	if c.items == nil {
		c.items = make(map[K]*node[K, V])
	}
	n := &node[K, V]{key: k, value: v}
	c.items[k] = n
	c.pushFront(n)
}

// Remove deletes k and reports whether it was present.
func (c *Cache[K, V]) Remove(k K) bool {
	n, ok := c.items[k]
	if !ok {
		return false
	}
	c.unlink(n)
	delete(c.items, k)
	return true
}

// Oldest calls visit from the least recently used entry on until visit
// returns false. visit may Remove the entry it is given.
func (c *Cache[K, V]) Oldest(visit func(K, V) bool) {
	for n := c.tail; n != nil; {
		prev := n.prev
		if !visit(n.key, n.value) {
			return
		}
		n = prev
	}
}

// Trim removes least recently used entries until at most n remain.
func (c *Cache[K, V]) Trim(n int) {
	for len(c.items) > max(0, n) && c.tail != nil {
		c.Remove(c.tail.key)
	}
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.items = nil
	c.head, c.tail = nil, nil
}

func (c *Cache[K, V]) touch(n *node[K, V]) {
	if n == c.head {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

func (c *Cache[K, V]) pushFront(n *node[K, V]) {
	n.prev, n.next = nil, c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *Cache[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
