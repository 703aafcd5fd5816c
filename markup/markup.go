package markup

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html/charset"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/layout"
	"github.com/gogpu/textnode/text"
)

// Styled is the result of parsing markup.
type Styled struct {
	// Text is the displayed text. Line breaks are text.LineSeparator and
	// each image is a text.ObjectReplacement rune.
	Text    string
	Formats []layout.FormatRange
	Images  []layout.ImageTag

	// HasLinks reports whether any anchor was found.
	HasLinks bool
}

// headingScale are the font scales of h1 to h6.
var headingScale = [6]float64{2.0, 1.5, 1.17, 1.0, 0.83, 0.67}

// fontSizePoints maps <font size> 1 to 7 to point sizes.
var fontSizePoints = [7]float64{8, 10, 12, 14, 18, 24, 36}

// frame is an open element.
type frame struct {
	tag      string
	format   layout.Format
	start    int
	list     *listState
	pre      bool
	hasStyle bool
}

type listState struct {
	ordered bool
	kind    string
	next    int
}

type parser struct {
	base    layout.Font
	out     []rune
	formats []layout.FormatRange
	images  []layout.ImageTag
	links   bool
	stack   []frame
	lists   []*listState
	pre     int
	// space is pending collapsed whitespace.
	space bool
	// brk is a pending block break, written only when content follows.
	brk bool
}

// Parse parses src. It never fails: unknown tags are skipped and
// malformed markup ends the parse at the first error.
func Parse(src string, base layout.Font) Styled {
	p := &parser{base: base}
	d := xml.NewDecoder(strings.NewReader(src))
	d.Strict = false
	d.AutoClose = xml.HTMLAutoClose
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := d.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				textnode.Logger().Debug("markup: parse stopped", "offset", d.InputOffset(), "err", err)
			}
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			p.start(t)
		case xml.EndElement:
			p.end(strings.ToLower(t.Name.Local))
		case xml.CharData:
			p.chars(string(t))
		}
	}
	for len(p.stack) > 0 {
		p.end(p.stack[len(p.stack)-1].tag)
	}
	return Styled{
		Text:     string(p.out),
		Formats:  layout.MergeFormats(p.formats),
		Images:   p.images,
		HasLinks: p.links,
	}
}

func attr(e xml.StartElement, name string) (string, bool) {
	for _, a := range e.Attr {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value, true
		}
	}
	return "", false
}

// atLineStart reports whether the output is empty, ends with a break or
// has a block break pending.
func (p *parser) atLineStart() bool {
	return p.brk || len(p.out) == 0 || p.out[len(p.out)-1] == text.LineSeparator
}

func (p *parser) newline() {
	p.flushBreak()
	p.out = append(p.out, text.LineSeparator)
	p.space = false
}

// ensureLineStart requests a block break before the next content.
func (p *parser) ensureLineStart() {
	if !p.atLineStart() {
		p.brk = true
	}
	p.space = false
}

// flushBreak writes a pending block break. Elements opened right before it
// start after the separator.
func (p *parser) flushBreak() {
	if !p.brk {
		return
	}
	p.brk = false
	pos := len(p.out)
	p.out = append(p.out, text.LineSeparator)
	for i := range p.stack {
		if p.stack[i].start == pos {
			p.stack[i].start++
		}
	}
}

func (p *parser) flushSpace() {
	if p.space && !p.atLineStart() {
		p.out = append(p.out, ' ')
	}
	p.space = false
}

func (p *parser) chars(s string) {
	if p.pre > 0 {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		for _, r := range s {
			if r == '\n' {
				p.newline()
				continue
			}
			p.flushBreak()
			p.out = append(p.out, r)
		}
		return
	}
	for _, r := range s {
		if r != '\u00a0' && unicode.IsSpace(r) {
			p.space = true
			continue
		}
		p.flushBreak()
		p.flushSpace()
		p.out = append(p.out, r)
	}
}

// push opens an element. Pending whitespace is written first so that it
// stays outside the element.
func (p *parser) push(tag string, f layout.Format) *frame {
	p.flushSpace()
	p.stack = append(p.stack, frame{tag: tag, format: f, start: len(p.out), hasStyle: f.Set != 0})
	return &p.stack[len(p.stack)-1]
}

func (p *parser) start(e xml.StartElement) {
	tag := strings.ToLower(e.Name.Local)
	switch tag {
	case "b", "strong":
		p.push(tag, layout.Format{Set: layout.PropBold, Bold: true})
	case "i", "em":
		p.push(tag, layout.Format{Set: layout.PropItalic, Italic: true})
	case "u":
		p.push(tag, layout.Format{Set: layout.PropUnderline, Underline: true})
	case "s", "strike", "del":
		p.push(tag, layout.Format{Set: layout.PropStrikeout, Strikeout: true})
	case "sup":
		p.push(tag, layout.Format{Set: layout.PropVerticalAlign, VerticalAlign: layout.AlignSuperScript})
	case "sub":
		p.push(tag, layout.Format{Set: layout.PropVerticalAlign, VerticalAlign: layout.AlignSubScript})
	case "br":
		p.newline()
	case "p":
		p.ensureLineStart()
		p.push(tag, layout.Format{})
	case "h1", "h2", "h3", "h4", "h5", "h6":
		p.ensureLineStart()
		level := int(tag[1] - '1')
		p.push(tag, layout.Format{
			Set:       layout.PropBold | layout.PropFontScale,
			Bold:      true,
			FontScale: headingScale[level],
		})
	case "font":
		p.push(tag, p.fontFormat(e))
	case "span":
		p.push(tag, styleFormat(e))
	case "a":
		href, _ := attr(e, "href")
		p.links = true
		p.push(tag, layout.Format{Set: layout.PropAnchor, Anchor: true, Href: href})
	case "pre":
		p.ensureLineStart()
		p.pre++
		p.push(tag, layout.Format{}).pre = true
	case "ol", "ul":
		p.ensureLineStart()
		kind, _ := attr(e, "type")
		l := &listState{ordered: tag == "ol", kind: kind, next: 1}
		p.lists = append(p.lists, l)
		p.push(tag, layout.Format{}).list = l
	case "li":
		p.listItem()
		p.push(tag, layout.Format{})
	case "img":
		p.image(e)
	default:
		p.push(tag, layout.Format{})
	}
}

func (p *parser) end(tag string) {
	k := len(p.stack) - 1
	for k >= 0 && p.stack[k].tag != tag {
		k--
	}
	if k < 0 {
		return
	}
	for len(p.stack) > k {
		f := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		p.close(f)
	}
}

func (p *parser) close(f frame) {
	if f.hasStyle && len(p.out) > f.start {
		p.formats = append(p.formats, layout.FormatRange{Start: f.start, Length: len(p.out) - f.start, Format: f.format})
	}
	switch {
	case f.pre:
		p.pre--
		p.ensureLineStart()
	case f.list != nil:
		p.lists = p.lists[:len(p.lists)-1]
		p.ensureLineStart()
	case f.tag == "p" || (len(f.tag) == 2 && f.tag[0] == 'h' && f.tag[1] >= '1' && f.tag[1] <= '6'):
		p.ensureLineStart()
	}
}

func (p *parser) listItem() {
	p.ensureLineStart()
	if len(p.lists) == 0 {
		return
	}
	p.flushBreak()
	l := p.lists[len(p.lists)-1]
	pad := strings.Repeat("\u00a0", 4*len(p.lists))
	marker := ListMarker(l.ordered, l.kind, l.next)
	l.next++
	p.out = append(p.out, []rune(pad+marker+"\u00a0")...)
	p.space = false
}

// ListMarker returns the marker of item n of a list. kind is the HTML type
// attribute: "1", "a", "A", "i", "I" for ordered lists and "disc",
// "circle", "square" for unordered ones.
func ListMarker(ordered bool, kind string, n int) string {
	if !ordered {
		switch strings.ToLower(kind) {
		case "circle":
			return "\u25e6"
		case "square":
			return "\u25aa"
		}
		return "\u2022"
	}
	switch kind {
	case "a":
		return alpha(n, 'a') + "."
	case "A":
		return alpha(n, 'A') + "."
	case "i":
		return strings.ToLower(roman(n)) + "."
	case "I":
		return roman(n) + "."
	}
	return strconv.Itoa(n) + "."
}

func alpha(n int, base rune) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var out []rune
	for n > 0 {
		n--
		out = append([]rune{base + rune(n%26)}, out...)
		n /= 26
	}
	return string(out)
}

func roman(n int) string {
	if n <= 0 || n >= 4000 {
		return strconv.Itoa(n)
	}
	vals := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syms := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	var b strings.Builder
	for i, v := range vals {
		for n >= v {
			b.WriteString(syms[i])
			n -= v
		}
	}
	return b.String()
}

func (p *parser) fontFormat(e xml.StartElement) layout.Format {
	var f layout.Format
	if v, ok := attr(e, "color"); ok {
		if c, err := textnode.ParseColor(v); err == nil {
			f.Set |= layout.PropForeground
			f.Foreground = c
		}
	}
	if v, ok := attr(e, "size"); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(v, "+"))
		if err == nil {
			if v[0] == '+' || v[0] == '-' {
				n += 3
			}
			if n >= 1 && n <= 7 {
				f.Set |= layout.PropFontScale
				f.FontScale = text.PointsToPixels(fontSizePoints[n-1]) / p.base.Pixels()
			}
		}
	}
	return f
}

// styleFormat reads the color and background-color declarations of a
// style attribute.
func styleFormat(e xml.StartElement) layout.Format {
	var f layout.Format
	style, _ := attr(e, "style")
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		c, err := textnode.ParseColor(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "color":
			f.Set |= layout.PropForeground
			f.Foreground = c
		case "background-color", "background":
			f.Set |= layout.PropBackground
			f.Background = c
		}
	}
	return f
}

func (p *parser) image(e xml.StartElement) {
	p.flushBreak()
	p.flushSpace()
	src, _ := attr(e, "src")
	tag := layout.ImageTag{Position: len(p.out), URL: src, Align: layout.ImageBottom}
	w, wok := attr(e, "width")
	h, hok := attr(e, "height")
	if wok && hok {
		tag.Width, _ = strconv.ParseFloat(w, 64)
		tag.Height, _ = strconv.ParseFloat(h, 64)
	}
	if tag.Width <= 0 || tag.Height <= 0 {
		tag.Width, tag.Height = 0, 0
		tag.Pending = true
	}
	if v, ok := attr(e, "align"); ok {
		switch strings.ToLower(v) {
		case "top":
			tag.Align = layout.ImageTop
		case "middle":
			tag.Align = layout.ImageMiddle
		}
	}
	p.out = append(p.out, text.ObjectReplacement)
	p.images = append(p.images, tag)
}

// MightBeRichText reports whether s looks like markup: it has a tag
// before the first line break.
func MightBeRichText(s string) bool {
	if line, _, ok := strings.Cut(s, "\n"); ok {
		s = line
	}
	i := strings.IndexByte(s, '<')
	for i >= 0 {
		rest := s[i+1:]
		if end := strings.IndexByte(rest, '>'); end > 0 {
			name := strings.TrimPrefix(rest[:end], "/")
			if name != "" && (unicode.IsLetter(rune(name[0])) || name[0] == '!') {
				return true
			}
		}
		j := strings.IndexByte(rest, '<')
		if j < 0 {
			break
		}
		i += 1 + j
	}
	return strings.Contains(s, "&") && strings.Contains(s, ";")
}
