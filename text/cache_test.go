package text

import (
	"fmt"
	"sync"
	"testing"
)

type countingShaper struct {
	mu    sync.Mutex
	calls int
}

func (c *countingShaper) Shape(text string, face Face) []ShapedGlyph {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return (&BuiltinShaper{}).Shape(text, face)
}

func TestCachingShaper(t *testing.T) {
	source := testSource(t)
	inner := &countingShaper{}
	s := NewCachingShaper(inner, 16)

	a := s.Shape("cached", source.Face(16))
	b := s.Shape("cached", source.Face(16))
	if len(a) != len(b) || inner.calls != 1 {
		t.Errorf("inner shaper called %d times, want 1", inner.calls)
	}
	s.Shape("cached", source.Face(18))
	if inner.calls != 2 {
		t.Errorf("size change should miss the cache, calls = %d", inner.calls)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.Shape("", source.Face(16)) != nil || s.Shape("x", nil) != nil {
		t.Error("empty text or nil face should shape to nil")
	}
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d", s.Len())
	}
}

func TestCachingShaperLimit(t *testing.T) {
	source := testSource(t)
	face := source.Face(12)
	inner := &countingShaper{}
	s := NewCachingShaper(inner, 3)

	for i := range 5 {
		s.Shape(fmt.Sprint("w", i), face)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	// w4 is recent; w0 was evicted.
	s.Shape("w4", face)
	s.Shape("w0", face)
	if inner.calls != 6 {
		t.Errorf("calls = %d, want 6", inner.calls)
	}
}

func TestCachingShaperConcurrent(t *testing.T) {
	source := testSource(t)
	face := source.Face(14)
	s := NewCachingShaper(nil, 8)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range 50 {
				s.Shape(fmt.Sprint(g, "-", i%10), face)
			}
		}(g)
	}
	wg.Wait()
	if s.Len() > 8 {
		t.Errorf("Len() = %d exceeds the limit", s.Len())
	}
}
