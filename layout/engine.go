package layout

import (
	"math"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/text"
)

// defaultShapeCacheLimit bounds the shaping cache of an Engine built
// without an explicit shaper.
const defaultShapeCacheLimit = 1024

// Engine lays out paragraphs. An Engine holds no per-layout state and may
// be reused, but not concurrently.
type Engine struct {
	shaper text.Shaper
}

// NewEngine returns an Engine shaping with s. A nil s uses a cached
// builtin shaper.
func NewEngine(s text.Shaper) *Engine {
	if s == nil {
		s = text.NewCachingShaper(nil, defaultShapeCacheLimit)
	}
	return &Engine{shaper: s}
}

// Shaper returns the shaper of the engine.
func (e *Engine) Shaper() text.Shaper { return e.shaper }

// Layout lays out p. It never fails: degenerate input yields a defined,
// possibly empty, result.
func (e *Engine) Layout(p *Params) *Result {
	r := &run{
		e:        e,
		p:        p,
		variants: SplitVariants(NormalizeNewlines(p.Text)),
		font:     p.Font,
		custom:   p.LineLaidOut != nil,
	}
	r.align = EffectiveHAlign(p.HAlign, p.HAlignExplicit, r.variants[0])
	r.loadVariant(0)
	return r.layout()
}

// run is the state of one Layout call.
type run struct {
	e        *Engine
	p        *Params
	variants []string
	variant  int
	runes    []rune
	formats  []FormatRange
	images   []ImageTag
	align    HAlign
	font     Font
	para     *paragraph
	paraFont Font
	custom   bool
	accessor LineAccessor
	attempts int

	widthExceeded  bool
	heightExceeded bool
}

// attempt is one pass over the lines at a fixed size and variant.
type attempt struct {
	it    *lineIter
	mode  WrapMode
	lines []Line

	// visible counts the shown lines, the elided one included.
	visible int

	br, unelided textnode.Rect

	height, naturalHeight, previousHeight float64

	wrapped        bool
	truncated      bool
	truncateHeight bool
	elide          bool
	unwrapped      int

	elision     *elision
	elideNumber int
}

func (r *run) loadVariant(v int) {
	r.variant = v
	r.runes = []rune(r.variants[v])
	if v == 0 {
		r.formats = MergeFormats(r.p.Formats)
		r.images = r.p.Images
	} else {
		r.formats, r.images = nil, nil
	}
	r.para = nil
}

func (r *run) hasShorter() bool { return r.variant < len(r.variants)-1 }

func (r *run) paragraph() *paragraph {
	if r.para == nil || r.paraFont != r.font {
		r.para = newParagraph(r.runes, r.font, r.formats, r.images, r.e.shaper)
		r.paraFont = r.font
	}
	return r.para
}

func (r *run) layout() *Result {
	p := r.p
	maxLines, maxLinesValid := p.maxLines()

	f := p.flags(p.WidthValid, p.HeightValid)
	if (f.singlelineElide && p.Width <= 0) || (f.multilineElide && p.HeightValid && p.Height <= 0) {
		return r.degenerate()
	}

	widthValid, heightValid := p.WidthValid, p.HeightValid
	if p.RequireImplicitSize {
		widthValid, heightValid = false, false
	}
	f = p.flags(widthValid, heightValid)

	lineWidth := math.Inf(1)
	if widthValid && p.Width > 0 {
		lineWidth = p.Width
	}
	maxHeight := math.Inf(1)
	if heightValid {
		maxHeight = p.Height
	}

	large := int(math.Round(p.Font.Size()))
	small := large
	if p.Fit != FixedSize {
		small = min(p.minimumSize(), large)
	}
	scaled := large

	r.widthExceeded = p.Width <= 0 && (f.singlelineElide || f.canWrap || f.horizontalFit)
	r.heightExceeded = p.Height <= 0 && (f.multilineElide || f.verticalFit)

	var (
		a              *attempt
		naturalWidth   float64
		implicitHeight float64
		once           = true
		widthChanged   bool
	)
	for {
		if !once {
			r.font = p.Font.WithSize(scaled)
		}
		a = r.attempt(f, lineWidth, maxHeight, maxLines)

		if once {
			once = false
			if p.RequireImplicitSize && !a.it.exhausted() && a.unwrapped < maxLines {
				for n := len(a.lines); n < maxLines; n++ {
					l, ok := a.it.next(n)
					if !ok {
						break
					}
					if l.Start > 0 && r.runes[l.Start-1] == text.LineSeparator {
						a.unwrapped++
					}
					r.lineGeometry(a.it, &l, lineWidth, &a.naturalHeight, a.mode)
					a.lines = append(a.lines, l)
				}
				if !a.it.exhausted() {
					naturalWidth = r.remainderWidth(a.it.pos, a.unwrapped, maxLines)
				}
			}
			for i := range a.lines {
				naturalWidth = math.Max(naturalWidth, a.lines[i].NaturalWidth)
			}
			implicitHeight = a.naturalHeight

			f = p.flags(p.WidthValid, p.HeightValid)
			oldWidth, oldHeight := lineWidth, maxHeight
			lineWidth = naturalWidth
			if p.WidthValid && p.Width > 0 {
				lineWidth = p.Width
			}
			maxHeight = math.Inf(1)
			if p.HeightValid {
				maxHeight = p.Height
			}

			if (!fuzzyEqual(lineWidth, oldWidth) || (r.widthExceeded && lineWidth > oldWidth)) &&
				(f.singlelineElide || f.multilineElide || f.canWrap || f.horizontalFit || r.align != AlignLeft) {
				widthChanged = true
				r.widthExceeded = lineWidth >= math.Min(oldWidth, naturalWidth)
				r.heightExceeded = false
				continue
			}
			if (maxHeight < math.Min(oldHeight, a.naturalHeight) || (r.heightExceeded && maxHeight > oldHeight)) &&
				(f.multilineElide || (f.canWrap && maxLinesValid)) {
				r.widthExceeded, r.heightExceeded = false, false
				continue
			}
		} else if widthChanged {
			widthChanged = false
			for n := len(a.lines); n < maxLines && !a.it.exhausted(); n++ {
				l, _ := a.it.next(n)
				r.lineGeometry(a.it, &l, lineWidth, &a.naturalHeight, a.mode)
				a.lines = append(a.lines, l)
			}
			implicitHeight = a.naturalHeight

			f = p.flags(p.WidthValid, p.HeightValid)
			oldHeight := maxHeight
			maxHeight = math.Inf(1)
			if p.HeightValid {
				maxHeight = p.Height
			}
			if (maxHeight < math.Min(oldHeight, a.naturalHeight) || (r.heightExceeded && maxHeight > oldHeight)) &&
				(f.multilineElide || (f.canWrap && maxLinesValid)) {
				r.widthExceeded, r.heightExceeded = false, false
				continue
			}
		}

		if a.elide && r.hasShorter() {
			r.loadVariant(r.variant + 1)
			textnode.Logger().Debug("layout: trying shorter variant", "variant", r.variant)
			continue
		}

		if !f.horizontalFit && !f.verticalFit {
			break
		}
		if small >= large {
			break
		}
		if f.horizontalFit {
			if a.unelided.Width > lineWidth || (!f.verticalFit && a.wrapped) {
				r.widthExceeded = true
				large = scaled - 1
				if small > large {
					break
				}
				scaled = (small + large) / 2
				continue
			} else if !f.verticalFit {
				small = scaled
				if small >= large {
					break
				}
				scaled = (small + large + 1) / 2
				continue
			}
		}
		if f.verticalFit {
			if a.truncateHeight || a.unelided.Height > maxHeight {
				r.heightExceeded = true
				large = scaled - 1
				if small > large {
					break
				}
				scaled = (small + large) / 2
				continue
			}
			small = scaled
			if small >= large {
				break
			}
			scaled = (small + large + 1) / 2
			continue
		}
		break
	}

	return r.finish(a, lineWidth, naturalWidth, implicitHeight)
}

// attempt runs one pass over the lines of the current variant at the
// current font.
func (r *run) attempt(f flags, lineWidth, maxHeight float64, maxLines int) *attempt {
	r.attempts++
	pa := r.paragraph()
	a := &attempt{it: &lineIter{p: pa}, unwrapped: 1, mode: r.p.Wrap}
	noBreakLastLine := f.multilineElide && (r.p.Wrap == WordWrap || r.p.Wrap == WrapWordOrAnywhere)

	for a.visible = 1; ; a.visible++ {
		if noBreakLastLine && a.visible == maxLines {
			a.mode = WrapAnywhere
		}
		l, ok := a.it.next(len(a.lines))
		if !ok {
			break
		}
		if r.custom {
			r.customLineGeometry(pa, a.it, &l, &a.naturalHeight, a.mode)
		} else {
			r.lineGeometry(a.it, &l, lineWidth, &a.naturalHeight, a.mode)
		}
		a.lines = append(a.lines, l)
		a.unelided = a.br.Union(l.NaturalRect())

		if f.multilineElide && a.naturalHeight > maxHeight && a.visible > 1 {
			a.elide = true
			r.heightExceeded = true
			if r.hasShorter() {
				break
			}
			a.truncated = true
			a.truncateHeight = true
			a.visible--
			prev := &a.lines[a.visible-1]
			var e elision
			if pa.runes[l.Start-1] != text.LineSeparator {
				e = pa.engineElide(ElideRight, l.Width, prev.Start, l.End())
			} else {
				e = pa.substituteElide(prev, l.Width)
			}
			a.elision, a.elideNumber = &e, a.visible-1
			a.height = a.previousHeight
			break
		}

		if a.it.exhausted() {
			if f.singlelineElide && a.visible == 1 && l.NaturalWidth > l.Width {
				a.elide = true
				r.widthExceeded = true
				if r.hasShorter() {
					break
				}
				a.truncated = true
				e := pa.engineElide(r.p.Elide, l.Width, l.Start, l.End())
				a.elision, a.elideNumber = &e, 0
			} else {
				a.br = a.unelided
				a.height = a.naturalHeight
			}
			break
		}

		wrappedLine := l.Length > 0 && pa.runes[l.End()-1] != text.LineSeparator
		a.wrapped = a.wrapped || wrappedLine
		if !wrappedLine {
			a.unwrapped++
		}

		if a.visible == maxLines {
			a.truncated = true
			a.truncateHeight = true
			r.heightExceeded = r.heightExceeded || a.wrapped
			if f.multilineElide {
				a.elide = true
				if r.hasShorter() {
					break
				}
				var e elision
				if wrappedLine {
					next, _ := pa.breaker.Next(l.End(), math.Inf(1), a.mode)
					e = pa.engineElide(ElideRight, l.Width, l.Start, next)
				} else {
					e = pa.substituteElide(&l, l.Width)
				}
				a.elision, a.elideNumber = &e, a.visible-1
			} else {
				a.br = a.unelided
				a.height = a.naturalHeight
			}
			break
		}

		a.br = a.unelided
		a.previousHeight = a.height
		a.height = a.naturalHeight
	}

	textnode.Logger().Debug("layout: pass",
		"attempt", r.attempts,
		"size", r.font.Size(),
		"variant", r.variant,
		"lines", a.visible,
		"elide", a.elide,
		"truncated", a.truncated)
	return a
}

// lineGeometry breaks l at width and stacks it at *height, placing the
// inline images of the line.
func (r *run) lineGeometry(it *lineIter, l *Line, width float64, height *float64, mode WrapMode) {
	it.rebreak(l, width, mode)
	r.place(it.p, l, width, height)
}

func (r *run) place(pa *paragraph, l *Line, width float64, height *float64) {
	l.Width = width
	if math.IsInf(width, 1) {
		l.Width = l.NaturalWidth
	}
	l.X = r.alignOffset(l, width)

	textHeight := l.Height
	total := textHeight
	textTop := 0.0
	type inLine struct {
		tag int
		y   float64
	}
	var images []inLine
	for i, tag := range pa.images {
		if tag.Position < l.Start || tag.Position >= l.End() {
			continue
		}
		var y float64
		switch tag.Align {
		case ImageTop:
			y = 0
		case ImageMiddle:
			y = textHeight/2 - tag.Height/2
		default:
			y = textHeight - tag.Height
		}
		images = append(images, inLine{tag: i, y: y})
		textTop = math.Max(textTop, math.Abs(y))
	}
	l.Images = l.Images[:0]
	for _, img := range images {
		tag := pa.images[img.tag]
		total = math.Max(total, textTop+img.y+tag.Height)
		x := l.X + pa.width(l.Start, tag.Position)
		l.Images = append(l.Images, PlacedImage{
			Tag:  img.tag,
			URL:  tag.URL,
			Rect: textnode.R(x, img.y+*height+textTop, tag.Width, tag.Height),
		})
	}
	l.Y = *height + textTop
	*height += r.p.lineAdvance(total)
}

// customLineGeometry lets the line callback position l. The height the
// callback reports is accumulated into *height.
func (r *run) customLineGeometry(pa *paragraph, it *lineIter, l *Line, height *float64, mode WrapMode) {
	p := r.p
	width := math.Inf(1)
	if p.WidthValid && (p.Wrap != NoWrap || r.align != AlignLeft) {
		width = p.Width
	}
	it.rebreak(l, width, mode)

	a := &r.accessor
	a.line = l
	a.fullLength = len(pa.runes)
	a.natural = func() float64 { return l.NaturalWidth }
	a.rebreak = func(w float64) { it.rebreak(l, w, mode) }
	a.x, a.y, a.width, a.height = 0, *height, width, 0
	if p.lineHeight() != 1 || p.LineHeightMode == FixedHeight {
		a.height = p.lineAdvance(l.Height)
	}

	p.LineLaidOut(a)

	h := a.Height()
	l.Y = a.y
	l.Width = a.width
	if math.IsInf(a.width, 1) {
		l.Width = l.NaturalWidth
	}
	l.X = a.x + r.alignOffset(l, a.width)
	a.unbind()
	*height += h
}

func (r *run) alignOffset(l *Line, width float64) float64 {
	if math.IsInf(width, 0) {
		return 0
	}
	switch r.align {
	case AlignRight:
		return width - l.NaturalWidth
	case AlignHCenter:
		return (width - l.NaturalWidth) / 2
	}
	return 0
}

// justifyExtra returns the space added after every inner space of l.
func (r *run) justifyExtra(pa *paragraph, l *Line) float64 {
	if r.align != AlignJustify || l.Forced || l.End() >= len(pa.runes) {
		return 0
	}
	last := l.End()
	for last > l.Start && text.IsWhitespace(pa.runes[last-1]) {
		last--
	}
	spaces := 0
	for k := l.Start; k < last; k++ {
		if pa.runes[k] == ' ' {
			spaces++
		}
	}
	if spaces == 0 || l.Width <= l.NaturalWidth {
		return 0
	}
	return (l.Width - l.NaturalWidth) / float64(spaces)
}

// remainderWidth measures the widest unwrapped paragraph from pos while
// unwrapped stays within maxLines.
func (r *run) remainderWidth(pos, unwrapped, maxLines int) float64 {
	pa := r.paragraph()
	w := 0.0
	for ; unwrapped <= maxLines && pos < pa.len(); unwrapped++ {
		end, _ := pa.breaker.Next(pos, math.Inf(1), NoWrap)
		w = math.Max(w, pa.naturalWidth(pos, end))
		pos = end
	}
	return w
}

// finish builds the Result of the final attempt.
func (r *run) finish(a *attempt, lineWidth, naturalWidth, implicitHeight float64) *Result {
	pa := r.paragraph()
	res := &Result{
		Text:           string(r.runes),
		Variant:        r.variant,
		Formats:        r.formats,
		Truncated:      a.truncated,
		NaturalWidth:   naturalWidth,
		ImplicitHeight: implicitHeight,
		Font:           r.font,
		Attempts:       r.attempts,
	}

	shown := min(a.visible, len(a.lines))
	if a.elision != nil {
		shown = a.visible - 1
	}
	res.Lines = a.lines[:shown]
	for i := range res.Lines {
		l := &res.Lines[i]
		l.Runs = pa.buildRuns(l, r.justifyExtra(pa, l))
		res.Images = append(res.Images, l.Images...)
	}

	br := a.br
	if !br.IsNull() {
		br.Y = 0
	}
	height := a.height
	if a.elision != nil {
		res.Elided = r.elidedLine(a, lineWidth, &height)
		br = br.Union(res.Elided.Line.NaturalRect())
		res.Images = append(res.Images, res.Elided.Line.Images...)
	}
	if !r.custom {
		br.Height = height
	}
	res.Bounds = br

	if len(res.Lines) > 0 {
		res.Baseline = res.Lines[0].Baseline()
	} else if res.Elided != nil {
		res.Baseline = res.Elided.Line.Baseline()
	}
	return res
}

// elidedLine lays out the elided text as one line at *height.
func (r *run) elidedLine(a *attempt, lineWidth float64, height *float64) *ElidedLine {
	e := *a.elision
	runes := e.build(r.runes)
	formats := e.remapFormats(r.formats)
	images, orig := e.remapImages(r.images)
	ep := newParagraph(runes, r.font, formats, images, r.e.shaper)
	it := &lineIter{p: ep}
	l, _ := it.next(a.elideNumber)
	if r.custom {
		r.customLineGeometry(ep, it, &l, height, NoWrap)
	} else {
		r.lineGeometry(it, &l, lineWidth, height, NoWrap)
	}
	l.Runs = ep.buildRuns(&l, 0)
	for i := range l.Images {
		l.Images[i].Tag = orig[l.Images[i].Tag]
	}
	for i := range l.Runs {
		if obj := l.Runs[i].Object; obj >= 0 {
			l.Runs[i].Object = orig[obj]
		}
	}
	start, end := e.sourceSpan()
	return &ElidedLine{
		Text:           string(runes),
		Line:           l,
		Formats:        formats,
		SourceStart:    start,
		SourceEnd:      end,
		EllipsisStart:  e.headLen(),
		EllipsisLength: len(e.ellipsis),
	}
}

// degenerate reports a zero line layout for a collapsed size.
func (r *run) degenerate() *Result {
	p := r.p
	pa := r.paragraph()
	res := &Result{
		Text:       string(r.runes),
		Formats:    r.formats,
		Font:       r.font,
		Truncated:  true,
		Degenerate: true,
	}
	if p.RequireImplicitSize {
		r.attempts++
		it := &lineIter{p: pa}
		for n := 0; ; n++ {
			l, ok := it.next(n)
			if !ok {
				break
			}
			it.rebreak(&l, math.Inf(1), NoWrap)
			res.NaturalWidth = math.Max(res.NaturalWidth, l.NaturalWidth)
		}
	}
	m := pa.base.Metrics()
	h := math.Ceil(m.Height()) * p.lineHeight()
	if p.LineHeightMode == FixedHeight {
		h = p.lineHeight()
	}
	res.Attempts = r.attempts
	res.Bounds = textnode.R(0, 0, 0, h)
	res.ImplicitHeight = h
	res.Baseline = m.Ascent
	return res
}

func fuzzyEqual(a, b float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= 1e-12*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// lineIter hands out the lines of a paragraph in order.
type lineIter struct {
	p    *paragraph
	pos  int
	done bool
}

// exhausted reports whether next would return no line. Text ending in a
// line separator has a final empty line.
func (it *lineIter) exhausted() bool {
	if it.done {
		return true
	}
	n := it.p.len()
	return it.pos >= n && n > 0 && it.p.runes[n-1] != text.LineSeparator
}

// next returns the line starting at the current position. It is broken
// by a following rebreak.
func (it *lineIter) next(number int) (Line, bool) {
	if it.exhausted() {
		return Line{}, false
	}
	l := Line{Number: number, Start: it.pos}
	if it.pos >= it.p.len() {
		it.done = true
	}
	it.rebreak(&l, math.Inf(1), NoWrap)
	return l, true
}

// rebreak breaks l from its start at width and moves the iterator to its
// end.
func (it *lineIter) rebreak(l *Line, width float64, mode WrapMode) {
	pa := it.p
	end, forced := l.Start, false
	if l.Start < pa.len() {
		end, forced = pa.breaker.Next(l.Start, width, mode)
	}
	l.Length = end - l.Start
	l.Forced = forced || (end > l.Start && pa.runes[end-1] == text.LineSeparator)
	l.NaturalWidth = pa.naturalWidth(l.Start, end)
	l.Ascent, l.Descent = pa.metrics(l.Start, end)
	l.Height = l.Ascent + l.Descent
	if !it.done {
		it.pos = end
	}
}
