// Package imagecache loads and caches images referenced by text, such as
// the src of an inline <img>.
//
// Requests return immediately with a Pixmap in the Loading state; loading
// runs in the background. Completion callbacks never run on the loading
// goroutine: they are queued and run by Dispatch, which the owner of the
// cache calls from its own goroutine.
//
//	c := imagecache.New(imagecache.WithBaseURL("file:///srv/doc/"))
//	p := c.Request("logo.png", image.Point{}, func(p *imagecache.Pixmap) {
//		item.ImageLoaded(p)
//	})
//	...
//	c.Dispatch()
//
// Each cache reports a failing URL once.
package imagecache
