// Package coverage provides an analytic, antialiased scanline rasterizer.
//
// # Overview
//
// coverage converts directed geometric primitives (line segments and
// quadratic Bézier curves) into per-pixel 8-bit coverage bitmaps using
// signed-area accumulation rather than supersampling. It is designed as
// the computational core of a glyph rendering pipeline: numerically
// precise, allocation-light, and fast on the hot per-glyph path.
//
// # Quick Start
//
//	import "github.com/gogpu/coverage"
//
//	// Create a raster sized to the shape being drawn.
//	r := coverage.New(64, 64)
//
//	// Draw the directed edges of a closed contour.
//	r.Draw(coverage.Line(coverage.Pt(10, 10), coverage.Pt(10, 50)))
//	r.Draw(coverage.Line(coverage.Pt(10, 50), coverage.Pt(50, 50)))
//	r.Draw(coverage.Curve(coverage.Pt(50, 50), coverage.Pt(55, 30), coverage.Pt(50, 10)))
//	r.Draw(coverage.Line(coverage.Pt(50, 10), coverage.Pt(10, 10)))
//
//	// Extract the coverage bitmap and reset the raster for the next shape.
//	bitmap := r.ConsumeBitmap()
//
// # Coverage Model
//
// Each draw call writes signed per-pixel delta contributions into an
// accumulation buffer. Overlapping directed edges combine by signed sum,
// which realizes the non-zero winding rule for self-intersecting or
// nested contours. Coverage only materializes when a bitmap is extracted:
// a single row-major prefix-sum pass converts deltas into absolute
// coverage, one byte per pixel, 0 (outside) to 255 (fully covered).
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Geometry must be pre-clipped to the raster's bounds by the caller; the
// hot write path is deliberately branch-free and does not range-check
// individual pixels. See [Raster] for the exact contract.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Raster, Point, Geometry
//   - glyph: font glyph rendering on top of the core rasterizer
//   - cmd/glyphdump: command-line demo rendering shaped text to PNG
package coverage
