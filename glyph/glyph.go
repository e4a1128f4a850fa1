// Package glyph renders font glyphs to coverage masks using the core
// coverage rasterizer. It extracts quadratic outlines from SFNT fonts,
// feeds them through a reused accumulation raster, and caches the
// resulting masks per font, glyph and size.
package glyph

import (
	"image"

	"golang.org/x/image/font/sfnt"
)

// ID is a glyph index within a font. Glyph indices are assigned by the
// font file and are font-specific.
type ID uint16

// Mask is a rasterized glyph: an 8-bit coverage bitmap plus the metrics
// needed to place it.
type Mask struct {
	// Alpha holds the coverage bitmap. Its Rect is always zero-based;
	// use Bounds for placement.
	Alpha *image.Alpha

	// Bounds positions the bitmap relative to the glyph origin on the
	// baseline, in pixels with y growing downward. Min.Y is typically
	// negative (the glyph extends above the baseline).
	Bounds image.Rectangle

	// Advance is the horizontal advance width in pixels.
	Advance float32
}

// IsEmpty reports whether the mask has no coverage area (for example a
// space character, which has an advance but no outline).
func (m *Mask) IsEmpty() bool {
	return m.Alpha == nil || m.Alpha.Rect.Empty()
}

// computeFontID generates a stable identifier for a font, used in cache
// keys so that masks from different fonts never collide. FNV-1a over the
// full name plus glyph count and units per em.
func computeFontID(f *sfnt.Font, buf *sfnt.Buffer) uint64 {
	const (
		fnvOffset = 14695981039346656037
		fnvPrime  = 1099511628211
	)

	hash := uint64(fnvOffset)

	name, err := f.Name(buf, sfnt.NameIDFull)
	if err != nil {
		name = ""
	}
	for i := 0; i < len(name); i++ {
		hash ^= uint64(name[i])
		hash *= fnvPrime
	}

	hash ^= uint64(f.NumGlyphs()) //nolint:gosec // NumGlyphs is always non-negative
	hash *= fnvPrime
	hash ^= uint64(f.UnitsPerEm())
	hash *= fnvPrime

	return hash
}
