package coverage

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// slack is the number of extra accumulation cells past the logical
// w*h region. The line rasterizer may write one column past the last
// occupied column of a row; for the final row those writes land in the
// slack instead of requiring a bounds check on every pixel write.
const slack = 4

// ErrCapacityExceeded is returned by [Raster.Resize] when the requested
// logical dimensions do not fit in the raster's fixed capacity.
var ErrCapacityExceeded = errors.New("coverage: raster capacity exceeded")

// Raster accumulates signed per-pixel coverage deltas for one shape at a
// time. Create one instance per rendering session and reuse it across
// shapes: the accumulation buffer is allocated once and its capacity is
// fixed for the lifetime of the instance.
//
// A Raster is exclusively owned by its caller and is not safe for
// concurrent use; use external locking or one Raster per goroutine.
//
// Geometry must be clipped to the raster's bounds before drawing. The
// per-pixel write path is branch-free and does not range-check individual
// writes beyond Go's slice bounds: coordinates outside the logical region
// (past the documented one-column tolerance) panic rather than corrupt
// unrelated memory. Behavior under NaN or infinite coordinates is
// unspecified; callers must validate upstream.
type Raster struct {
	w, h int
	a    []float32
}

// New creates a Raster with the given logical dimensions. The
// accumulation buffer holds w*h cells plus a fixed slack and never grows;
// [Raster.Resize] can shrink the logical region for smaller shapes.
func New(w, h int) *Raster {
	return &Raster{
		w: w,
		h: h,
		a: make([]float32, w*h+slack),
	}
}

// Width returns the logical width in pixels.
func (r *Raster) Width() int {
	return r.w
}

// Height returns the logical height in pixels.
func (r *Raster) Height() int {
	return r.h
}

// Resize changes the logical dimensions in place without reallocating.
// It returns an error wrapping [ErrCapacityExceeded] if w*h does not fit
// in the capacity fixed at construction; the raster is unchanged in that
// case and the caller must not proceed with draws sized to the rejected
// dimensions. On success the buffer contents are unspecified relative to
// the new shape; callers normally Resize immediately after extracting a
// bitmap, while the buffer is zero.
func (r *Raster) Resize(w, h int) error {
	if w*h >= len(r.a) {
		return fmt.Errorf("%w: %dx%d needs %d cells, have %d",
			ErrCapacityExceeded, w, h, w*h+slack, len(r.a))
	}
	r.w = w
	r.h = h
	return nil
}

// Reset zeroes the accumulation buffer, discarding any drawn but not yet
// extracted contributions. [Raster.ConsumeBitmap] resets the logical
// region implicitly; Reset is for abandoning a shape without extracting
// it.
func (r *Raster) Reset() {
	clear(r.a)
}

// Draw routes a primitive to [Raster.DrawLine] or [Raster.DrawCurve].
func (r *Raster) Draw(g Geometry) {
	if g.IsLine() {
		r.DrawLine(g.A, g.B)
	} else {
		r.DrawCurve(g.A, g.B, g.C)
	}
}

// DrawLine accumulates the signed trapezoidal area the directed segment
// p0→p1 sweeps through each pixel it crosses. Contributions add to
// whatever is already in the buffer, so overlapping edges combine by net
// winding.
func (r *Raster) DrawLine(p0, p1 Point) {
	if p0.Y == p1.Y {
		// A horizontal edge has no vertical extent and cannot change
		// scanline crossings.
		return
	}
	dir := float32(1)
	if p0.Y > p1.Y {
		dir, p0, p1 = -1, p1, p0
	}
	dxdy := (p1.X - p0.X) / (p1.Y - p0.Y)

	x := p0.X
	y0 := int(p0.Y)
	if p0.Y < 0 {
		x -= p0.Y * dxdy
		y0 = 0
	}
	yMax := int(math32.Ceil(p1.Y))
	if yMax > r.h {
		yMax = r.h
	}

	for y := y0; y < yMax; y++ {
		buf := r.a[y*r.w:]

		// Vertical extent of the segment within this row, clipped to
		// the row and to the segment's own span.
		dy := math32.Min(float32(y+1), p1.Y) - math32.Max(float32(y), p0.Y)
		xnext := x + dxdy*dy
		d := dy * dir

		x0, x1 := x, xnext
		if x > xnext {
			x0, x1 = x1, x0
		}
		x0floor := math32.Floor(x0)
		x0i := int(x0floor)
		x1ceil := math32.Ceil(x1)
		x1i := int(x1ceil)

		if x1i <= x0i+1 {
			// The x-span fits within two adjacent pixels: split the
			// area by the midpoint fraction.
			xmf := 0.5*(x+xnext) - x0floor
			buf[x0i] += d - d*xmf
			buf[x0i+1] += d * xmf
		} else {
			// Closed-form edge fractions at the boundary pixels, full
			// weight d*s for every interior pixel.
			s := 1 / (x1 - x0)
			x0f := x0 - x0floor
			a0 := 0.5 * s * (1 - x0f) * (1 - x0f)
			x1f := x1 - x1ceil + 1
			am := 0.5 * s * x1f * x1f

			buf[x0i] += d * a0
			if x1i == x0i+2 {
				buf[x0i+1] += d * (1 - a0 - am)
			} else {
				a1 := s * (1.5 - x0f)
				buf[x0i+1] += d * (a1 - a0)
				for xi := x0i + 2; xi < x1i-1; xi++ {
					buf[xi] += d * s
				}
				a2 := a1 + float32(x1i-x0i-3)*s
				buf[x1i-1] += d * (1 - a2 - am)
			}
			buf[x1i] += d * am
		}

		x = xnext
	}
}

// Curve flattening constants. These are calibrated visual-quality values
// carried over from font-rs; changing them changes the rendered output.
const (
	// curveDevsqThreshold is the squared second-difference magnitude
	// below which a quadratic is visually indistinguishable from its
	// chord.
	curveDevsqThreshold = 0.333

	// curveTol controls the visible-error/segment-count tradeoff in the
	// subdivision formula n = 1 + floor((tol*devsq)^(1/4)).
	curveTol = 3.0
)

// DrawCurve approximates the quadratic Bézier p0→p2 (control point p1)
// with line segments and accumulates each via [Raster.DrawLine]. Segment
// count grows with the fourth root of curvature, so even highly curved
// inputs stay cheap.
func (r *Raster) DrawCurve(p0, p1, p2 Point) {
	devx := p0.X - 2*p1.X + p2.X
	devy := p0.Y - 2*p1.Y + p2.Y
	devsq := devx*devx + devy*devy
	if devsq < curveDevsqThreshold {
		r.DrawLine(p0, p2)
		return
	}
	n := 1 + int(math32.Floor(math32.Sqrt(math32.Sqrt(curveTol*devsq))))

	p := p0
	nrecip := 1 / float32(n)
	t := float32(0)
	for i := 0; i < n-1; i++ {
		t += nrecip
		pn := lerp(t, lerp(t, p0, p1), lerp(t, p1, p2))
		r.DrawLine(p, pn)
		p = pn
	}
	// Draw the final segment to p2 itself so accumulated floating-point
	// drift in t cannot pull the endpoint off the true curve end.
	r.DrawLine(p, p2)
}
