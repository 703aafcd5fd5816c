package text

import (
	"bytes"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// GoTextShaper shapes with the HarfBuzz port of go-text/typesetting, so
// ligatures, GPOS kerning and complex scripts are honored. Text is split
// into runs of one script each before shaping.
//
// GoTextShaper is safe for concurrent use. Parsed fonts are shared per
// source; faces and HarfBuzz buffers are not and are created or pooled
// per call.
type GoTextShaper struct {
	pool sync.Pool

	mu    sync.RWMutex
	fonts map[uint64]*font.Font
}

// NewGoTextShaper returns an empty GoTextShaper.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		pool:  sync.Pool{New: func() any { return new(shaping.HarfbuzzShaper) }},
		fonts: make(map[uint64]*font.Font),
	}
}

// Shape implements the Shaper interface. A source that cannot be parsed by
// go-text shapes to nil.
func (s *GoTextShaper) Shape(text string, face Face) []ShapedGlyph {
	if text == "" || face == nil || face.Source() == nil {
		return nil
	}
	f, err := s.font(face.Source())
	if err != nil {
		return nil
	}
	runes := []rune(text)
	in := shaping.Input{
		Text:      runes,
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f),
		Size:      toFixed(face.Size()),
		Language:  language.NewLanguage(face.Language()),
	}
	if face.Direction() == DirectionRTL {
		in.Direction = di.DirectionRTL
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	defer s.pool.Put(hb)

	out := make([]ShapedGlyph, 0, len(runes))
	var pen float64
	for _, run := range scriptRuns(runes) {
		in.RunStart, in.RunEnd, in.Script = run.start, run.end, run.script
		for _, g := range hb.Shape(in).Glyphs {
			adv := fromFixed(g.Advance)
			out = append(out, ShapedGlyph{
				GID:      GlyphID(uint16(g.GlyphID)), //nolint:gosec // sfnt glyph ids fit in uint16
				Cluster:  g.TextIndex(),
				X:        pen + fromFixed(g.XOffset),
				Y:        -fromFixed(g.YOffset),
				XAdvance: adv,
			})
			pen += adv
		}
	}
	return out
}

func (s *GoTextShaper) font(src *FontSource) (*font.Font, error) {
	s.mu.RLock()
	f, ok := s.fonts[src.ID()]
	s.mu.RUnlock()
	if ok {
		return f, nil
	}

	data := src.Data()
	if data == nil {
		return nil, ErrClosedSource
	}
	parsed, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &FontError{Name: src.Name(), Reason: "go-text parse failed", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fonts[src.ID()]; ok {
		return f, nil
	}
	s.fonts[src.ID()] = parsed.Font
	return parsed.Font, nil
}

// RemoveSource drops the parsed font of a closed source.
func (s *GoTextShaper) RemoveSource(src *FontSource) {
	s.mu.Lock()
	delete(s.fonts, src.ID())
	s.mu.Unlock()
}

type scriptRun struct {
	start, end int
	script     language.Script
}

// scriptRuns splits runes into maximal [start, end) ranges sharing one
// script. Common and inherited runes (spaces, digits, punctuation, marks)
// join the run they sit in; leading ones join the first real script.
func scriptRuns(runes []rune) []scriptRun {
	var runs []scriptRun
	cur := scriptRun{script: language.Latin}
	found := false
	for i, r := range runes {
		sc := language.LookupScript(r)
		if sc == language.Common || sc == language.Inherited || unicode.IsSpace(r) {
			continue
		}
		switch {
		case !found:
			cur.script, found = sc, true
		case sc != cur.script:
			cur.end = i
			runs = append(runs, cur)
			cur = scriptRun{start: i, script: sc}
		}
	}
	cur.end = len(runes)
	return append(runs, cur)
}
