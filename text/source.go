package text

import (
	"fmt"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"
)

var sourceIDs atomic.Uint64

// SourceOption configures NewFontSource.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	parser string
	name   string
}

// WithParser selects a parser registered with RegisterParser. The default
// is "ximage", backed by golang.org/x/image/font/opentype.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) { c.parser = name }
}

// WithName overrides the family name read from the font.
func WithName(name string) SourceOption {
	return func(c *sourceConfig) { c.name = name }
}

// FontSource is one parsed font file. Faces of any size share it, and
// glyph batches of those faces are merged by its ID.
//
// A FontSource is safe for concurrent use and must not be copied.
type FontSource struct {
	id   uint64
	name string

	mu     sync.RWMutex
	data   []byte
	parsed ParsedFont
}

// NewFontSource parses TTF or OTF data. data is copied.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	cfg := sourceConfig{parser: defaultParserName}
	for _, opt := range opts {
		opt(&cfg)
	}
	parsed, err := getParser(cfg.parser).Parse(data)
	if err != nil {
		return nil, err
	}
	name := cfg.name
	if name == "" {
		name = fontName(parsed)
	}
	return &FontSource{
		id:     sourceIDs.Add(1),
		name:   name,
		data:   append([]byte(nil), data...),
		parsed: parsed,
	}, nil
}

// NewFontSourceFromFile loads the font at path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- the caller chooses the font file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font: %w", err)
	}
	return NewFontSource(data, opts...)
}

// NewFontSourceFromFS loads the font name from fsys, such as an embedded
// font directory.
func NewFontSourceFromFS(fsys fs.FS, name string, opts ...SourceOption) (*FontSource, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("text: read font: %w", err)
	}
	return NewFontSource(data, opts...)
}

// Face returns a face of the source at size pixels per em.
func (s *FontSource) Face(size float64, opts ...FaceOption) Face {
	if s == nil {
		panic("text: Face called on a nil FontSource")
	}
	cfg := defaultFaceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &sourceFace{source: s, size: size, config: cfg}
}

// ID returns the process-unique identifier of the source.
func (s *FontSource) ID() uint64 { return s.id }

// Name returns the family name.
func (s *FontSource) Name() string { return s.name }

// Parsed returns the parsed font, or nil once the source is closed.
func (s *FontSource) Parsed() ParsedFont {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parsed
}

// Data returns the font bytes, or nil once the source is closed.
func (s *FontSource) Data() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Close drops the font data. Faces of a closed source measure every glyph
// as empty and have no outlines. Close is idempotent.
func (s *FontSource) Close() error {
	s.mu.Lock()
	s.data, s.parsed = nil, nil
	s.mu.Unlock()
	return nil
}

func fontName(p ParsedFont) string {
	for _, n := range [...]string{p.Name(), p.FullName()} {
		if n != "" {
			return n
		}
	}
	return "Unknown Font"
}
