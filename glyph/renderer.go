package glyph

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/chewxy/math32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/coverage"
)

// ErrMissingGlyph is returned when a rune has no glyph in the font.
var ErrMissingGlyph = errors.New("glyph: no glyph for rune")

// Config holds configuration for a Renderer.
type Config struct {
	// MaxDim is the largest glyph bitmap dimension (width or height, in
	// pixels) served by the renderer's reused raster. Glyphs that
	// exceed it still render, through a one-off allocation.
	// Default: 128.
	MaxDim int

	// Cache is an optional shared mask cache. Nil disables caching.
	Cache *Cache
}

// DefaultConfig returns the default renderer configuration.
func DefaultConfig() Config {
	return Config{MaxDim: 128}
}

// Renderer rasterizes glyphs from one font into coverage masks. It owns
// a single accumulation raster sized to its MaxDim class and resizes it
// per glyph, so steady-state rendering does not allocate beyond the
// returned bitmaps.
//
// A Renderer is not safe for concurrent use: it owns a mutable sfnt
// buffer and the raster. Share masks across goroutines through a
// [Cache], which is safe for concurrent use, with one Renderer per
// goroutine.
type Renderer struct {
	font   *sfnt.Font
	buf    sfnt.Buffer
	raster *coverage.Raster
	cache  *Cache
	fontID uint64
	maxDim int
}

// NewRenderer creates a renderer for the given font. The font must be
// non-nil and outlive the renderer.
func NewRenderer(f *sfnt.Font, cfg Config) *Renderer {
	if cfg.MaxDim <= 0 {
		cfg.MaxDim = DefaultConfig().MaxDim
	}
	r := &Renderer{
		font:   f,
		raster: coverage.New(cfg.MaxDim, cfg.MaxDim),
		cache:  cfg.Cache,
		maxDim: cfg.MaxDim,
	}
	r.fontID = computeFontID(f, &r.buf)
	return r
}

// Render rasterizes one glyph at the given size (ppem, pixels per em)
// and returns its coverage mask. Results are served from the configured
// cache when present; cached masks are shared and must not be mutated.
func (r *Renderer) Render(id ID, ppem float32) (*Mask, error) {
	if r.cache == nil {
		return r.render(id, ppem)
	}

	key := Key{FontID: r.fontID, GID: id, PPEM: floatToFixed(ppem)}
	if m, ok := r.cache.Get(key); ok {
		return m, nil
	}
	m, err := r.render(id, ppem)
	if err != nil {
		return nil, err
	}
	r.cache.Put(key, m)
	return m, nil
}

// RenderRune looks up the glyph for a rune and renders it. It returns
// [ErrMissingGlyph] if the font maps the rune to the missing-glyph
// placeholder.
func (r *Renderer) RenderRune(c rune, ppem float32) (*Mask, error) {
	gid, err := r.font.GlyphIndex(&r.buf, c)
	if err != nil {
		return nil, fmt.Errorf("glyph: glyph index for %q: %w", c, err)
	}
	if gid == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingGlyph, c)
	}
	return r.Render(ID(gid), ppem)
}

// render does the actual rasterization, bypassing the cache.
func (r *Renderer) render(id ID, ppem float32) (*Mask, error) {
	fp := floatToFixed(ppem)

	segs, err := r.font.LoadGlyph(&r.buf, sfnt.GlyphIndex(id), fp, nil)
	if err != nil {
		return nil, fmt.Errorf("glyph: load glyph %d: %w", id, err)
	}
	advance := r.advance(id, fp)

	if len(segs) == 0 {
		// No outline (e.g. space): advance only.
		return &Mask{Advance: advance}, nil
	}

	minX, minY, maxX, maxY := outlineBounds(segs)
	x0 := int(math32.Floor(minX))
	y0 := int(math32.Floor(minY))
	w := int(math32.Ceil(maxX)) - x0
	h := int(math32.Ceil(maxY)) - y0
	if w <= 0 || h <= 0 {
		return &Mask{Advance: advance}, nil
	}

	rast := r.raster
	if err := rast.Resize(w, h); err != nil {
		// The glyph exceeds the renderer's size class. Render through
		// a one-off raster rather than failing; callers that hit this
		// often should raise MaxDim.
		coverage.Logger().Warn("glyph exceeds raster size class",
			slog.Int("width", w),
			slog.Int("height", h),
			slog.Int("maxDim", r.maxDim))
		rast = coverage.New(w, h)
	}

	// Translate the outline so its bounding box lands at the bitmap
	// origin, then extract coverage.
	drawOutline(rast, segs, float32(-x0), float32(-y0))
	pix := rast.ConsumeBitmap()

	return &Mask{
		Alpha: &image.Alpha{
			Pix:    pix,
			Stride: w,
			Rect:   image.Rect(0, 0, w, h),
		},
		Bounds:  image.Rect(x0, y0, x0+w, y0+h),
		Advance: advance,
	}, nil
}

// advance returns the horizontal advance in pixels, or 0 if the font
// reports none.
func (r *Renderer) advance(id ID, ppem fixed.Int26_6) float32 {
	adv, err := r.font.GlyphAdvance(&r.buf, sfnt.GlyphIndex(id), ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}
