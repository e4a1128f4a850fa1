package coverage

// bitmapScale quantizes clamped coverage to a byte. The near-256
// multiplier cannot produce 256 when |acc| is exactly 1.0 but still
// rounds values very close to 1.0 up to 255.
const bitmapScale = 255.99998

// GetBitmap converts the accumulated deltas into a row-major coverage
// bitmap, one byte per pixel: 0 is no coverage, 255 is full coverage.
// The accumulation buffer is left untouched, so calling GetBitmap again
// without intervening draws reproduces the identical bitmap.
//
// Do not mix GetBitmap and [Raster.ConsumeBitmap] within one render
// cycle: GetBitmap leaves the deltas in place, so drawing the next shape
// on top double-counts the previous one.
func (r *Raster) GetBitmap() []byte {
	out := make([]byte, r.w*r.h)
	acc := float32(0)
	for i := range out {
		acc += r.a[i]
		y := acc
		if y < 0 {
			y = -y
		}
		if y > 1 {
			y = 1
		}
		out[i] = byte(bitmapScale * y)
	}
	return out
}

// ConsumeBitmap is [Raster.GetBitmap] plus a reset: each cell is zeroed
// as it is read, leaving the raster ready for the next shape without
// reallocation. This is the normal mode for rendering a stream of glyphs
// through one Raster.
func (r *Raster) ConsumeBitmap() []byte {
	out := make([]byte, r.w*r.h)
	acc := float32(0)
	for i := range out {
		acc += r.a[i]
		r.a[i] = 0
		y := acc
		if y < 0 {
			y = -y
		}
		if y > 1 {
			y = 1
		}
		out[i] = byte(bitmapScale * y)
	}
	// The last row may have spilled one write into the slack cells.
	// Clear them too, so a later Resize to a larger region cannot
	// resurface a stale delta inside the new logical shape.
	clear(r.a[len(out):])
	return out
}
