// Command glyphdump shapes a line of text and renders it to a grayscale
// PNG. It exists to exercise the full pipeline: HarfBuzz shaping via
// go-text/typesetting, outline extraction via sfnt, and coverage
// rasterization.
package main

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/coverage"
	"github.com/gogpu/coverage/glyph"
)

func main() {
	var (
		fontPath = flag.String("font", "", "TTF font file (default: embedded Go Regular)")
		text     = flag.String("text", "Hello, World!", "text to render")
		size     = flag.Float64("size", 32, "size in pixels per em")
		output   = flag.String("output", "glyphdump.png", "output PNG file")
		verbose  = flag.Bool("v", false, "log renderer diagnostics")
	)
	flag.Parse()

	if *verbose {
		coverage.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	data := goregular.TTF
	if *fontPath != "" {
		var err error
		data, err = os.ReadFile(*fontPath)
		if err != nil {
			log.Fatalf("read font: %v", err)
		}
	}

	img, err := renderLine(data, *text, float32(*size))
	if err != nil {
		log.Fatalf("render: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("encode png: %v", err)
	}

	b := img.Bounds()
	log.Printf("wrote %s (%dx%d, %d glyphs shaped)", *output, b.Dx(), b.Dy(), len(*text))
}

// renderLine shapes text with HarfBuzz and composites the glyph masks
// onto a grayscale image, baseline-aligned.
func renderLine(fontData []byte, text string, size float32) (*image.Gray, error) {
	gtFace, err := gtfont.ParseTTF(bytes.NewReader(fontData))
	if err != nil {
		return nil, err
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gtFace,
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	var shaper shaping.HarfbuzzShaper
	out := shaper.Shape(input)

	sfntFont, err := sfnt.Parse(fontData)
	if err != nil {
		return nil, err
	}
	renderer := glyph.NewRenderer(sfntFont, glyph.Config{
		MaxDim: 256,
		Cache:  glyph.NewCache(),
	})

	const pad = 2
	ascent := out.LineBounds.Ascent.Ceil()
	descent := (-out.LineBounds.Descent).Ceil()
	width := out.Advance.Ceil() + 2*pad
	height := ascent + descent + 2*pad
	if width <= 2*pad || height <= 2*pad {
		return nil, errEmptyLine
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	baseline := pad + ascent

	penX := float32(pad)
	for _, g := range out.Glyphs {
		mask, err := renderer.Render(glyph.ID(g.GlyphID), size)
		if err != nil {
			return nil, err
		}
		if !mask.IsEmpty() {
			// Shaping offsets are y-up, the mask is y-down.
			dx := int(penX+float32(g.XOffset)/64+0.5) + mask.Bounds.Min.X
			dy := baseline - g.YOffset.Round() + mask.Bounds.Min.Y
			blendMask(img, mask, dx, dy)
		}
		penX += float32(g.XAdvance) / 64
	}
	return img, nil
}

var errEmptyLine = errors.New("nothing to render")

// blendMask max-blends a glyph mask into the image at (dx, dy), clipped
// to the image bounds.
func blendMask(img *image.Gray, mask *glyph.Mask, dx, dy int) {
	w := mask.Alpha.Rect.Dx()
	h := mask.Alpha.Rect.Dy()
	for y := 0; y < h; y++ {
		iy := dy + y
		if iy < 0 || iy >= img.Rect.Dy() {
			continue
		}
		src := mask.Alpha.Pix[y*mask.Alpha.Stride:]
		dst := img.Pix[iy*img.Stride:]
		for x := 0; x < w; x++ {
			ix := dx + x
			if ix < 0 || ix >= img.Rect.Dx() {
				continue
			}
			if v := src[x]; v > dst[ix] {
				dst[ix] = v
			}
		}
	}
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
