package text

import (
	"sync"

	"github.com/gogpu/textnode/internal/lru"
)

// ShapingKey identifies shaped text in the shaping cache.
type ShapingKey struct {
	Text      string
	Face      FaceKey
	Direction Direction
}

// CachingShaper memoizes another Shaper. Callers must not modify the
// returned glyph slices. It is safe for concurrent use.
type CachingShaper struct {
	shaper Shaper
	limit  int

	mu    sync.Mutex
	cache lru.Cache[ShapingKey, []ShapedGlyph]
}

// NewCachingShaper wraps s with an LRU cache holding at most limit entries.
// A limit of 0 or less keeps every result. A nil s wraps the BuiltinShaper.
func NewCachingShaper(s Shaper, limit int) *CachingShaper {
	if s == nil {
		s = &BuiltinShaper{}
	}
	return &CachingShaper{shaper: s, limit: limit}
}

// Shape implements the Shaper interface.
func (c *CachingShaper) Shape(text string, face Face) []ShapedGlyph {
	if text == "" || face == nil {
		return nil
	}
	key := ShapingKey{Text: text, Face: face.Key(), Direction: face.Direction()}

	c.mu.Lock()
	defer c.mu.Unlock()
	if glyphs, ok := c.cache.Get(key); ok {
		return glyphs
	}
	glyphs := c.shaper.Shape(text, face)
	c.cache.Put(key, glyphs)
	if c.limit > 0 {
		c.cache.Trim(c.limit)
	}
	return glyphs
}

// Len returns the number of cached shaping results.
func (c *CachingShaper) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

// Reset drops every cached result.
func (c *CachingShaper) Reset() {
	c.mu.Lock()
	c.cache.Clear()
	c.mu.Unlock()
}
