package imagecache

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/internal/lru"
)

// DefaultLimit is the number of finished images a cache keeps.
const DefaultLimit = 64

// ErrUnsupportedScheme is returned for URLs whose scheme has no loader.
var ErrUnsupportedScheme = errors.New("imagecache: unsupported url scheme")

// LoadError describes a failed image load.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("imagecache: load %s: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Status is the state of a Pixmap.
type Status uint8

const (
	Null Status = iota
	Loading
	Ready
	Error
)

func (s Status) String() string {
	switch s {
	case Null:
		return "Null"
	case Loading:
		return "Loading"
	case Ready:
		return "Ready"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// Pixmap is a cached image. Its fields change only inside Dispatch, on the
// owner's goroutine, so readers on that goroutine need no locking.
type Pixmap struct {
	url    string
	status Status
	img    image.Image
	err    error
}

// URL returns the resolved URL of the image.
func (p *Pixmap) URL() string { return p.url }

// Status returns the load status.
func (p *Pixmap) Status() Status {
	if p == nil {
		return Null
	}
	return p.status
}

// Image returns the decoded image, or nil unless the status is Ready.
func (p *Pixmap) Image() image.Image {
	if p == nil {
		return nil
	}
	return p.img
}

// Err returns the load error when the status is Error.
func (p *Pixmap) Err() error {
	if p == nil {
		return nil
	}
	return p.err
}

// Size returns the pixel size of the image, or an empty size until it is Ready.
func (p *Pixmap) Size() textnode.Size {
	if p.Image() == nil {
		return textnode.Size{}
	}
	b := p.img.Bounds()
	return textnode.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

type key struct {
	url  string
	size image.Point
}

type entry struct {
	pixmap  *Pixmap
	waiters []func(*Pixmap)
}

type result struct {
	key key
	img image.Image
	err error
}

// Option configures a Cache.
type Option func(*Cache)

// WithBaseURL resolves relative request URLs against base. An unparsable
// base is ignored.
func WithBaseURL(base string) Option {
	return func(c *Cache) {
		if u, err := url.Parse(base); err == nil {
			c.base = u
		}
	}
}

// WithLimit sets how many finished images are kept.
func WithLimit(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithHTTPClient sets the client used for http and https URLs.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Cache) {
		c.loaders["http"] = HTTPLoader{Client: client}
		c.loaders["https"] = HTTPLoader{Client: client}
	}
}

// WithLoader registers a loader for scheme, replacing any existing one.
func WithLoader(scheme string, l Loader) Option {
	return func(c *Cache) { c.loaders[scheme] = l }
}

// WithScaler sets the scaler used when a request asks for a specific size.
func WithScaler(s draw.Scaler) Option {
	return func(c *Cache) { c.scaler = s }
}

// Cache loads images in the background and keeps the most recently used
// ones. Request, Dispatch and Close are meant to be called from a single
// owner goroutine.
type Cache struct {
	base    *url.URL
	limit   int
	loaders map[string]Loader
	scaler  draw.Scaler

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	entries lru.Cache[key, *entry]
	seen    map[string]struct{}

	mu      sync.Mutex
	results []result
}

// New returns a cache with file, data, http and https loaders.
func New(opts ...Option) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache{
		limit: DefaultLimit,
		loaders: map[string]Loader{
			"file":  FileLoader{},
			"data":  DataLoader{},
			"http":  HTTPLoader{},
			"https": HTTPLoader{},
		},
		scaler:  draw.CatmullRom,
		ctx:     ctx,
		cancel:  cancel,
		seen:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the absolute form of raw. A relative reference without a
// base URL is treated as a file path.
func (c *Cache) Resolve(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if c.base != nil {
		u = c.base.ResolveReference(u)
	}
	if u.Scheme == "" {
		u.Scheme = "file"
	}
	return u, nil
}

// Request returns the pixmap for raw at size. A zero size keeps the natural
// size. If the image is not yet loaded, onDone is queued and runs in a later
// Dispatch once the load finishes; it is not called for pixmaps that are
// already Ready or Error.
func (c *Cache) Request(raw string, size image.Point, onDone func(*Pixmap)) *Pixmap {
	u, err := c.Resolve(raw)
	var k key
	if err == nil {
		k = key{url: u.String(), size: size}
	} else {
		k = key{url: raw, size: size}
	}
	if e, ok := c.entries.Get(k); ok {
		if e.pixmap.status == Loading && onDone != nil {
			e.waiters = append(e.waiters, onDone)
		}
		return e.pixmap
	}

	e := &entry{pixmap: &Pixmap{url: k.url, status: Loading}}
	if onDone != nil {
		e.waiters = append(e.waiters, onDone)
	}
	c.entries.Put(k, e)

	if err != nil {
		c.complete(result{key: k, err: &LoadError{URL: raw, Err: err}})
	} else {
		c.start(k, u)
	}
	c.evict()
	return e.pixmap
}

// Cached returns the pixmap for raw at size without starting a load.
func (c *Cache) Cached(raw string, size image.Point) (*Pixmap, bool) {
	u, err := c.Resolve(raw)
	if err != nil {
		return nil, false
	}
	e, ok := c.entries.Peek(key{url: u.String(), size: size})
	if !ok {
		return nil, false
	}
	return e.pixmap, true
}

func (c *Cache) start(k key, u *url.URL) {
	l, ok := c.loaders[u.Scheme]
	if !ok {
		c.complete(result{key: k, err: &LoadError{URL: k.url, Err: ErrUnsupportedScheme}})
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		img, err := load(c.ctx, l, u)
		if err == nil && k.size.X > 0 && k.size.Y > 0 {
			img = scale(c.scaler, img, k.size)
		}
		if err != nil {
			err = &LoadError{URL: k.url, Err: err}
		}
		c.complete(result{key: k, img: img, err: err})
	}()
}

func (c *Cache) complete(r result) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
}

// Dispatch applies finished loads and runs their callbacks on the calling
// goroutine. It returns the number of loads applied.
func (c *Cache) Dispatch() int {
	c.mu.Lock()
	results := c.results
	c.results = nil
	c.mu.Unlock()

	for _, r := range results {
		e, ok := c.entries.Peek(r.key)
		if !ok {
			continue
		}
		p := e.pixmap
		if r.err != nil {
			p.status, p.err = Error, r.err
			c.report(r.key.url, r.err)
		} else {
			p.status, p.img = Ready, r.img
		}
		waiters := e.waiters
		e.waiters = nil
		for _, fn := range waiters {
			fn(p)
		}
	}
	if len(results) > 0 {
		c.evict()
	}
	return len(results)
}

// Wait blocks until every background load has finished or ctx is done.
// Finished loads still need a Dispatch.
func (c *Cache) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels loads in flight. Pixmaps already handed out stay valid.
func (c *Cache) Close() {
	c.cancel()
	c.wg.Wait()
}

// Len returns the number of cached pixmaps, including ones still loading.
func (c *Cache) Len() int { return c.entries.Len() }

func (c *Cache) report(u string, err error) {
	if _, ok := c.seen[u]; ok {
		return
	}
	c.seen[u] = struct{}{}
	textnode.Logger().Warn("imagecache: cannot load image", "url", u, "err", err)
}

// evict drops the least recently used finished pixmaps over the limit.
// Loading entries are kept so their callbacks still run.
func (c *Cache) evict() {
	over := c.entries.Len() - c.limit
	if over <= 0 {
		return
	}
	c.entries.Oldest(func(k key, e *entry) bool {
		if e.pixmap.status != Loading {
			c.entries.Remove(k)
			over--
		}
		return over > 0
	})
}

func scale(s draw.Scaler, src image.Image, size image.Point) image.Image {
	if src.Bounds().Size() == size {
		return src
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	s.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
