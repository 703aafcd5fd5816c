// Command textnode lays out a text item described by a TOML or YAML file
// and reports its lines and scene primitives.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gogpu/textnode"
	"github.com/gogpu/textnode/imagecache"
	"github.com/gogpu/textnode/item"
	"github.com/gogpu/textnode/scene"
	"github.com/gogpu/textnode/text"
)

func main() {
	var (
		config = flag.String("config", "", "item description (.toml, .yaml)")
		txt    = flag.String("text", "", "text, overriding the config")
		width  = flag.Float64("width", 0, "item width, overriding the config")
		output = flag.String("output", "", "write a PNG preview to this file")
		debug  = flag.Bool("debug", false, "log layout diagnostics")
		wait   = flag.Duration("wait", 5*time.Second, "how long to wait for images")
	)
	flag.Parse()

	if *debug {
		textnode.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	c := &Config{}
	if *config != "" {
		var err error
		if c, err = LoadConfig(*config); err != nil {
			log.Fatal(err)
		}
	}
	if *txt != "" {
		c.Text = *txt
	}
	if *width > 0 {
		c.Width = *width
	}

	sc, t, err := run(c, *wait)
	if err != nil {
		log.Fatal(err)
	}
	report(os.Stdout, t, sc)

	if *output != "" {
		if err := writePNG(*output, t, sc); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Preview saved to %s\n", *output)
	}
}

// run lays the item out and paints it, waiting for inline images.
func run(c *Config, wait time.Duration) (*scene.Scene, *item.Text, error) {
	family := text.GoFamily()
	if c.Mono {
		family = text.GoMonoFamily()
	}
	t := item.New(family)
	cache := imagecache.New(imagecache.WithBaseURL(c.BaseURL))
	defer cache.Close()
	t.SetImageCache(cache)
	if err := c.Apply(t); err != nil {
		return nil, nil, err
	}

	sc := t.Paint(item.DefaultOwner)
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	if err := cache.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("textnode: images: %w", err)
	}
	if cache.Dispatch() > 0 {
		sc = t.Paint(item.DefaultOwner)
	}
	return sc, t, nil
}

func report(w io.Writer, t *item.Text, sc *scene.Scene) {
	fmt.Fprintf(w, "lines: %d\n", t.LineCount())
	fmt.Fprintf(w, "truncated: %v\n", t.Truncated())
	fmt.Fprintf(w, "font pixel size: %g\n", t.FontPixelSize())
	fmt.Fprintf(w, "implicit size: %.1fx%.1f\n", t.ImplicitWidth(), t.ImplicitHeight())
	fmt.Fprintf(w, "content size: %.1fx%.1f\n", t.ContentWidth(), t.ContentHeight())
	if res := t.Result(); res != nil {
		runes := []rune(res.Text)
		for _, l := range res.Lines {
			fmt.Fprintf(w, "  %3d y=%-7.1f %q\n", l.Number, l.Y, string(runes[l.Start:l.End()]))
		}
		if res.Elided != nil {
			fmt.Fprintf(w, "  elided y=%-7.1f %q\n", res.Elided.Line.Y, res.Elided.Text)
		}
	}
	c := sc.Counts()
	fmt.Fprintf(w, "scene: %d rects, %d images, %d clips, %d batches, %d glyphs\n",
		c.Rects, c.Images, c.Clips, c.Batches, c.Glyphs)
}

func writePNG(path string, t *item.Text, sc *scene.Scene) error {
	b := sc.Bounds()
	w := int(math.Ceil(max(t.ImplicitWidth(), b.Right())))
	h := int(math.Ceil(max(t.ImplicitHeight(), b.Bottom())))
	img := scene.Raster(sc, max(1, w), max(1, h))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
