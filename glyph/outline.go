package glyph

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/coverage"
)

// outlineBounds computes the bounding box of a glyph outline in pixel
// coordinates. Control points are included, which is conservative for
// curves but cheap and never under-reports.
func outlineBounds(segs sfnt.Segments) (minX, minY, maxX, maxY float32) {
	minX, minY = 1e10, 1e10
	maxX, maxY = -1e10, -1e10

	for _, seg := range segs {
		n := argCount(seg.Op)
		for i := 0; i < n; i++ {
			x := fixedToFloat(seg.Args[i].X)
			y := fixedToFloat(seg.Args[i].Y)
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	return minX, minY, maxX, maxY
}

// argCount returns the number of meaningful points in a segment's Args.
func argCount(op sfnt.SegmentOp) int {
	switch op {
	case sfnt.SegmentOpQuadTo:
		return 2
	case sfnt.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}

// drawOutline accumulates a glyph outline into the raster, translated by
// (dx, dy). Contours are closed implicitly: sfnt segments do not carry an
// explicit close, so each MoveTo (and the end of the outline) closes the
// previous contour back to its start. Cubic segments, which appear in
// CFF-flavored fonts, are approximated by two quadratics.
func drawOutline(r *coverage.Raster, segs sfnt.Segments, dx, dy float32) {
	var pen, start coverage.Point
	open := false

	closeContour := func() {
		if open {
			// No-op if the contour already ends at its start.
			r.Draw(coverage.Line(pen, start))
		}
	}

	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeContour()
			pen = fixedToPoint(seg.Args[0], dx, dy)
			start = pen
			open = true

		case sfnt.SegmentOpLineTo:
			p := fixedToPoint(seg.Args[0], dx, dy)
			r.Draw(coverage.Line(pen, p))
			pen = p

		case sfnt.SegmentOpQuadTo:
			c := fixedToPoint(seg.Args[0], dx, dy)
			p := fixedToPoint(seg.Args[1], dx, dy)
			r.Draw(coverage.Curve(pen, c, p))
			pen = p

		case sfnt.SegmentOpCubeTo:
			c1 := fixedToPoint(seg.Args[0], dx, dy)
			c2 := fixedToPoint(seg.Args[1], dx, dy)
			p := fixedToPoint(seg.Args[2], dx, dy)
			drawCubic(r, pen, c1, c2, p)
			pen = p
		}
	}
	closeContour()
}

// drawCubic approximates the cubic Bézier pen→p (controls c1, c2) with
// two quadratics, split at t=0.5. One split keeps the approximation
// error well under a pixel at glyph rendering sizes while staying on the
// rasterizer's quadratic fast path.
func drawCubic(r *coverage.Raster, p0, c1, c2, p3 coverage.Point) {
	// de Casteljau subdivision at t=0.5.
	a := midpoint(p0, c1)
	b := midpoint(c1, c2)
	c := midpoint(c2, p3)
	d := midpoint(a, b)
	e := midpoint(b, c)
	m := midpoint(d, e)

	// Each cubic half collapses to a quadratic with control point
	// (3*(C1+C2) - P0 - P3) / 4.
	r.Draw(coverage.Curve(p0, quadControl(p0, a, d, m), m))
	r.Draw(coverage.Curve(m, quadControl(m, e, c, p3), p3))
}

func midpoint(p, q coverage.Point) coverage.Point {
	return coverage.Pt((p.X+q.X)*0.5, (p.Y+q.Y)*0.5)
}

func quadControl(p0, c1, c2, p3 coverage.Point) coverage.Point {
	return coverage.Pt(
		(3*(c1.X+c2.X)-p0.X-p3.X)*0.25,
		(3*(c1.Y+c2.Y)-p0.Y-p3.Y)*0.25,
	)
}

// fixedToPoint converts a 26.6 fixed-point segment point to raster
// space, translated by (dx, dy).
func fixedToPoint(p fixed.Point26_6, dx, dy float32) coverage.Point {
	return coverage.Pt(fixedToFloat(p.X)+dx, fixedToFloat(p.Y)+dy)
}

// fixedToFloat converts a fixed.Int26_6 value to float32. The 26.6
// representation uses 6 fractional bits, so we divide by 64.
func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// floatToFixed converts a float32 ppem to fixed.Int26_6.
func floatToFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
