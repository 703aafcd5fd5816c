package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/item"
	"github.com/gogpu/textnode/layout"
	"github.com/gogpu/textnode/scene"
)

// Config describes one text item.
type Config struct {
	Text   string `toml:"text" yaml:"text"`
	Format string `toml:"format" yaml:"format"`

	PixelSize float64 `toml:"pixel_size" yaml:"pixel_size"`
	PointSize float64 `toml:"point_size" yaml:"point_size"`
	Bold      bool    `toml:"bold" yaml:"bold"`
	Italic    bool    `toml:"italic" yaml:"italic"`
	Mono      bool    `toml:"mono" yaml:"mono"`

	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`

	Wrap         string  `toml:"wrap" yaml:"wrap"`
	Elide        string  `toml:"elide" yaml:"elide"`
	MaxLines     int     `toml:"max_lines" yaml:"max_lines"`
	Fit          string  `toml:"fit" yaml:"fit"`
	MinimumSize  int     `toml:"minimum_size" yaml:"minimum_size"`
	LineHeight   float64 `toml:"line_height" yaml:"line_height"`
	FixedLineH   bool    `toml:"fixed_line_height" yaml:"fixed_line_height"`
	HAlign       string  `toml:"halign" yaml:"halign"`
	VAlign       string  `toml:"valign" yaml:"valign"`
	Padding      float64 `toml:"padding" yaml:"padding"`
	BaseURL      string  `toml:"base_url" yaml:"base_url"`
	Color        string  `toml:"color" yaml:"color"`
	LinkColor    string  `toml:"link_color" yaml:"link_color"`
	Style        string  `toml:"style" yaml:"style"`
	StyleColor   string  `toml:"style_color" yaml:"style_color"`
	Selection    [2]int  `toml:"selection" yaml:"selection"`
	SelectionHex string  `toml:"selection_color" yaml:"selection_color"`
}

// LoadConfig reads a TOML or YAML file, chosen by extension.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("textnode: read config: %w", err)
	}
	var c Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		d := yaml.NewDecoder(bytes.NewReader(data))
		d.KnownFields(true)
		err = d.Decode(&c)
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&c)
	default:
		return nil, fmt.Errorf("textnode: config %s: unknown extension", path)
	}
	if err != nil {
		return nil, fmt.Errorf("textnode: decode config %s: %w", path, err)
	}
	return &c, nil
}

var (
	wrapModes = map[string]layout.WrapMode{
		"": layout.NoWrap, "none": layout.NoWrap, "word": layout.WordWrap,
		"anywhere": layout.WrapAnywhere, "word_or_anywhere": layout.WrapWordOrAnywhere,
	}
	elideModes = map[string]layout.ElideMode{
		"": layout.ElideNone, "none": layout.ElideNone, "left": layout.ElideLeft,
		"middle": layout.ElideMiddle, "right": layout.ElideRight,
	}
	fitModes = map[string]layout.FitMode{
		"": layout.FixedSize, "fixed": layout.FixedSize, "horizontal": layout.HorizontalFit,
		"vertical": layout.VerticalFit, "fit": layout.Fit,
	}
	hAligns = map[string]layout.HAlign{
		"left": layout.AlignLeft, "right": layout.AlignRight,
		"center": layout.AlignHCenter, "justify": layout.AlignJustify,
	}
	vAligns = map[string]layout.VAlign{
		"": layout.AlignTop, "top": layout.AlignTop, "bottom": layout.AlignBottom, "center": layout.AlignVCenter,
	}
	textFormats = map[string]item.TextFormat{
		"": item.AutoText, "auto": item.AutoText, "plain": item.PlainText,
		"styled": item.StyledText, "rich": item.RichText,
	}
	textStyles = map[string]scene.TextStyle{
		"": scene.Normal, "normal": scene.Normal, "outline": scene.Outline,
		"raised": scene.Raised, "sunken": scene.Sunken,
	}
)

func lookup[V any](m map[string]V, key, what string) (V, error) {
	v, ok := m[strings.ToLower(key)]
	if !ok {
		var zero V
		return zero, fmt.Errorf("textnode: unknown %s %q", what, key)
	}
	return v, nil
}

func parseColor(s string, def textnode.Color) (textnode.Color, error) {
	if s == "" {
		return def, nil
	}
	return textnode.ParseColor(s)
}

// Apply configures t from c.
func (c *Config) Apply(t *item.Text) error {
	var err error
	fail := func(e error) {
		if err == nil {
			err = e
		}
	}
	font := t.Font()
	font.Bold, font.Italic = c.Bold, c.Italic
	switch {
	case c.PixelSize > 0:
		font.PixelSize, font.PointSize = c.PixelSize, 0
	case c.PointSize > 0:
		font.PixelSize, font.PointSize = 0, c.PointSize
	}
	t.SetFont(font)

	f, e := lookup(textFormats, c.Format, "format")
	fail(e)
	t.SetTextFormat(f)
	t.SetText(c.Text)

	if c.Width > 0 {
		t.SetWidth(c.Width)
	}
	if c.Height > 0 {
		t.SetHeight(c.Height)
	}
	w, e := lookup(wrapModes, c.Wrap, "wrap mode")
	fail(e)
	t.SetWrapMode(w)
	el, e := lookup(elideModes, c.Elide, "elide mode")
	fail(e)
	t.SetElideMode(el)
	fit, e := lookup(fitModes, c.Fit, "fit mode")
	fail(e)
	t.SetFontSizeMode(fit)
	t.SetMinimumPixelSize(c.MinimumSize)
	t.SetMinimumPointSize(c.MinimumSize)
	t.SetMaximumLineCount(c.MaxLines)
	if c.LineHeight > 0 {
		mode := layout.ProportionalHeight
		if c.FixedLineH {
			mode = layout.FixedHeight
		}
		t.SetLineHeight(c.LineHeight, mode)
	}
	if c.HAlign != "" {
		a, e := lookup(hAligns, c.HAlign, "horizontal alignment")
		fail(e)
		t.SetHAlign(a)
	}
	va, e := lookup(vAligns, c.VAlign, "vertical alignment")
	fail(e)
	t.SetVAlign(va)
	t.SetPadding(item.Padding{Top: c.Padding, Right: c.Padding, Bottom: c.Padding, Left: c.Padding})
	t.SetBaseURL(c.BaseURL)

	col, e := parseColor(c.Color, textnode.RGB(0, 0, 0))
	fail(e)
	t.SetColor(col)
	link, e := parseColor(c.LinkColor, textnode.RGB(0, 0, 1))
	fail(e)
	t.SetLinkColor(link)
	st, e := lookup(textStyles, c.Style, "style")
	fail(e)
	sc, e := parseColor(c.StyleColor, textnode.RGB(0, 0, 0))
	fail(e)
	t.SetStyle(st, sc)
	if c.SelectionHex != "" {
		sel, e := parseColor(c.SelectionHex, textnode.Color{})
		fail(e)
		t.SetSelectionColors(textnode.RGB(1, 1, 1), sel)
	}
	t.SetSelection(c.Selection[0], c.Selection[1])
	return err
}
