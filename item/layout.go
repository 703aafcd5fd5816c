package item

import (
	"image"
	"net/url"
	"strings"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/document"
	"github.com/gogpu/textnode/imagecache"
	"github.com/gogpu/textnode/layout"
	"github.com/gogpu/textnode/markup"
)

// unbounded is the width rich text is measured at for its ideal width.
const unbounded = 1 << 20

// EnsureLayout lays the text out if any property changed since the last
// layout. The result stays bound to the owner of the previous layout, or
// DefaultOwner for the first one.
func (t *Text) EnsureLayout() {
	if t.dirty&dirtyLayout == 0 && t.metricsValid() {
		return
	}
	owner := t.owner
	if owner.IsZero() {
		owner = DefaultOwner
	}
	t.layoutFor(owner)
}

func (t *Text) metricsValid() bool { return t.result != nil || t.doc != nil }

func (t *Text) layoutFor(owner Owner) {
	if t.dirty&dirtyContent != 0 {
		t.parse()
	}
	prev := t.metrics
	if t.rich {
		t.layoutDocument()
	} else {
		t.layoutText()
	}
	t.owner = owner
	t.dirty = (t.dirty &^ (dirtyContent | dirtyLayout)) | dirtyPaint
	t.notify(prev)
}

func (t *Text) notify(prev metrics) {
	m := t.metrics
	if m.truncated != prev.truncated && t.onTruncated != nil {
		t.onTruncated(m.truncated)
	}
	if m.lineCount != prev.lineCount && t.onLineCount != nil {
		t.onLineCount(m.lineCount)
	}
	if (m.implicitW != prev.implicitW || m.implicitH != prev.implicitH) && t.onImplicitSize != nil {
		t.onImplicitSize(m.implicitW, m.implicitH)
	}
}

// effectiveFormat resolves AutoText.
func (t *Text) effectiveFormat() TextFormat {
	if t.format == AutoText {
		if markup.MightBeRichText(t.text) {
			return StyledText
		}
		return PlainText
	}
	return t.format
}

func (t *Text) parse() {
	t.rich, t.doc, t.result = false, nil, nil
	switch t.effectiveFormat() {
	case RichText:
		doc, err := document.ParseHTML(strings.NewReader(t.text))
		if err != nil {
			textnode.Logger().Warn("item: rich text parse failed, showing plain text", "err", err)
			t.styled = markup.Styled{Text: t.text}
			return
		}
		doc.ImageSize = t.imageSize
		t.rich, t.doc = true, doc
	case StyledText:
		t.styled = markup.Parse(t.text, t.font)
	default:
		t.styled = markup.Styled{Text: t.text}
	}
}

func (t *Text) availableWidth() float64 {
	return t.width - t.padding.Left - t.padding.Right
}

func (t *Text) availableHeight() float64 {
	return t.height - t.padding.Top - t.padding.Bottom
}

func (t *Text) params() *layout.Params {
	t.tags = t.resolveImages(t.styled.Images)
	return &layout.Params{
		Text:                t.styled.Text,
		Font:                t.font,
		Formats:             t.styled.Formats,
		Images:              t.tags,
		Wrap:                t.wrap,
		Elide:               t.elide,
		MaxLineCount:        t.maxLines,
		Fit:                 t.fit,
		MinimumPixelSize:    t.minPixelSize,
		MinimumPointSize:    t.minPointSize,
		LineHeight:          t.lineHeight,
		LineHeightMode:      t.lineHeightMode,
		Width:               t.availableWidth(),
		Height:              t.availableHeight(),
		WidthValid:          t.widthValid,
		HeightValid:         t.heightValid,
		HAlign:              t.hAlign,
		HAlignExplicit:      t.hAlignExplicit,
		RequireImplicitSize: t.implicit || !t.widthValid || !t.heightValid,
		LineLaidOut:         t.lineLaidOut,
	}
}

func (t *Text) layoutText() {
	p := t.params()
	res := t.engine.Layout(p)
	t.result = res
	pad := t.padding
	m := metrics{
		lineCount:  res.LineCount(),
		truncated:  res.Truncated,
		implicitW:  res.NaturalWidth + pad.Left + pad.Right,
		implicitH:  res.ImplicitHeight + pad.Top + pad.Bottom,
		contentW:   res.Bounds.Width,
		contentH:   res.Bounds.Height,
		displayTxt: res.Text,
	}
	if t.heightValid {
		m.vOffset = res.VerticalOffset(t.availableHeight(), t.vAlign)
	}
	m.baseline = pad.Top + m.vOffset + res.Baseline
	t.metrics = m
	textnode.Logger().Debug("item: layout",
		"lines", m.lineCount, "truncated", m.truncated, "attempts", res.Attempts, "pixelSize", res.FontPixelSize())
}

// layoutDocument measures the document at an unbounded width for its ideal
// width, then lays it out at the available width.
func (t *Text) layoutDocument() {
	d := t.doc
	d.Layout(t.engine, t.font, unbounded)
	ideal := 0.0
	for _, b := range d.Blocks() {
		if b.Result != nil {
			ideal = max(ideal, b.Rect.X+b.Result.NaturalWidth+b.Format.RightMargin)
		}
	}
	d.Layout(t.engine, t.font, ideal)
	idealHeight := d.Size.Height
	width := ideal
	if t.widthValid && t.availableWidth() < ideal {
		width = max(0, t.availableWidth())
		d.Layout(t.engine, t.font, width)
	}

	pad := t.padding
	m := metrics{
		implicitW:  ideal + pad.Left + pad.Right,
		implicitH:  idealHeight + pad.Top + pad.Bottom,
		contentW:   width,
		contentH:   d.Size.Height,
		displayTxt: d.PlainText(),
	}
	first := true
	for _, b := range d.Blocks() {
		if b.Result == nil {
			continue
		}
		m.lineCount += b.Result.LineCount()
		if first && b.Result.LineCount() > 0 {
			m.baseline = b.Rect.Y + b.Result.Baseline
			first = false
		}
	}
	if t.heightValid {
		switch t.vAlign {
		case layout.AlignBottom:
			m.vOffset = t.availableHeight() - m.contentH
		case layout.AlignVCenter:
			m.vOffset = (t.availableHeight() - m.contentH) / 2
		}
	}
	m.baseline += pad.Top + m.vOffset
	t.metrics = m
	textnode.Logger().Debug("item: document layout", "lines", m.lineCount, "width", width, "idealWidth", ideal)
}

// resolveURL returns src resolved against the base URL.
func (t *Text) resolveURL(src string) string {
	if t.baseURL == "" {
		return src
	}
	base, err := url.Parse(t.baseURL)
	if err != nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}

// resolveImages copies tags with pending sizes filled in from loaded
// images.
func (t *Text) resolveImages(tags []layout.ImageTag) []layout.ImageTag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]layout.ImageTag, len(tags))
	for i, tag := range tags {
		tag.URL = t.resolveURL(tag.URL)
		if tag.Pending {
			if s, ok := t.imageSize(tag.URL); ok {
				tag.Width, tag.Height, tag.Pending = s.Width, s.Height, false
			}
		}
		out[i] = tag
	}
	return out
}

// pixmap returns the cached image for u, starting a load if needed.
func (t *Text) pixmap(u string) *imagecache.Pixmap {
	if t.images == nil || u == "" {
		return nil
	}
	if p, ok := t.images.Cached(u, image.Point{}); ok && (p.Status() != imagecache.Loading || t.loading[p.URL()]) {
		return p
	}
	p := t.images.Request(u, image.Point{}, t.imageLoaded)
	if p.Status() == imagecache.Loading {
		if t.loading == nil {
			t.loading = make(map[string]bool)
		}
		t.loading[p.URL()] = true
	}
	return p
}

// imageLoaded runs from imagecache.Cache.Dispatch.
func (t *Text) imageLoaded(p *imagecache.Pixmap) {
	delete(t.loading, p.URL())
	t.invalidate(dirtyLayout)
}

func (t *Text) imageSize(u string) (textnode.Size, bool) {
	p := t.pixmap(t.resolveURL(u))
	if p.Status() != imagecache.Ready {
		return textnode.Size{}, false
	}
	return p.Size(), true
}

func (t *Text) image(u string) image.Image {
	return t.pixmap(t.resolveURL(u)).Image()
}
