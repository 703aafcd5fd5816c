package node

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/document"
)

// ObjectHandler renders inline objects of one type. Draw paints the
// object into dst, whose bounds match the intrinsic size.
type ObjectHandler interface {
	document.SizeHandler
	Draw(dst draw.Image, d *document.Document, pos int, f document.CharFormat)
}

// ImageProvider is implemented by handlers that supply the object image
// directly instead of drawing it.
type ImageProvider interface {
	Image(d *document.Document, pos int, f document.CharFormat) image.Image
}

// ImageObjectHandler handles document.ObjectImage objects by URL.
type ImageObjectHandler struct {
	// Lookup returns the image for a URL, or nil while it is unavailable.
	Lookup func(url string) image.Image
}

func (h *ImageObjectHandler) lookup(url string) image.Image {
	if h.Lookup == nil {
		return nil
	}
	return h.Lookup(url)
}

// IntrinsicSize implements document.SizeHandler. Explicit dimensions win;
// a single one keeps the aspect ratio of the image.
func (h *ImageObjectHandler) IntrinsicSize(_ *document.Document, _ int, f document.CharFormat) textnode.Size {
	if f.Width > 0 && f.Height > 0 {
		return textnode.Size{Width: f.Width, Height: f.Height}
	}
	img := h.lookup(f.ImageURL)
	if img == nil {
		return textnode.Size{Width: f.Width, Height: f.Height}
	}
	b := img.Bounds()
	w, hh := float64(b.Dx()), float64(b.Dy())
	switch {
	case f.Width > 0 && w > 0:
		return textnode.Size{Width: f.Width, Height: hh * f.Width / w}
	case f.Height > 0 && hh > 0:
		return textnode.Size{Width: w * f.Height / hh, Height: f.Height}
	}
	return textnode.Size{Width: w, Height: hh}
}

// Image implements ImageProvider.
func (h *ImageObjectHandler) Image(_ *document.Document, _ int, f document.CharFormat) image.Image {
	return h.lookup(f.ImageURL)
}

// Draw implements ObjectHandler by scaling the image into dst.
func (h *ImageObjectHandler) Draw(dst draw.Image, _ *document.Document, _ int, f document.CharFormat) {
	if img := h.lookup(f.ImageURL); img != nil {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	}
}

// RegisterHandler sets the handler of objects of type t. A nil handler
// removes the registration.
func (e *Engine) RegisterHandler(t document.ObjectType, h ObjectHandler) {
	if h == nil {
		delete(e.handlers, t)
		return
	}
	if e.handlers == nil {
		e.handlers = make(map[document.ObjectType]ObjectHandler)
	}
	e.handlers[t] = h
}

// handler returns the handler for t: the engine's own registration, the
// document's when it can draw, or the image handler for images.
func (e *Engine) handler(d *document.Document, t document.ObjectType) ObjectHandler {
	if h, ok := e.handlers[t]; ok {
		return h
	}
	if h, ok := d.Handler(t).(ObjectHandler); ok {
		return h
	}
	if t == document.ObjectImage {
		return &ImageObjectHandler{Lookup: e.Images}
	}
	return nil
}

// objectImage returns the image of the object at pos sized to size. It
// prefers an image supplied by the handler and otherwise draws the
// object into a transparent offscreen buffer.
func (e *Engine) objectImage(d *document.Document, pos int, f document.CharFormat, size textnode.Size) image.Image {
	h := e.handler(d, f.Object)
	if h == nil {
		return nil
	}
	if p, ok := h.(ImageProvider); ok {
		if img := p.Image(d, pos, f); img != nil {
			return img
		}
	}
	w, hh := int(size.Width+0.5), int(size.Height+0.5)
	if w <= 0 || hh <= 0 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, hh))
	h.Draw(dst, d, pos, f)
	return dst
}
