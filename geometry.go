package coverage

// Point is a position in raster space.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// lerp linearly interpolates between p and q at parameter t.
// t=0 returns p, t=1 returns q.
func lerp(t float32, p, q Point) Point {
	return Point{
		X: p.X + t*(q.X-p.X),
		Y: p.Y + t*(q.Y-p.Y),
	}
}

// geometryKind discriminates the Geometry variants.
type geometryKind uint8

const (
	kindLine geometryKind = iota
	kindCurve
)

// Geometry is one directed drawing primitive: either a straight line
// segment or a quadratic Bézier curve. Construct values with [Line] or
// [Curve]; the zero Geometry is a degenerate line and draws nothing.
//
// Direction matters: the sign of each edge's contribution to the winding
// sum follows its direction of travel, so a contour's edges must all run
// the same way around the filled region.
type Geometry struct {
	kind geometryKind

	// A is the start point.
	A Point

	// B is the end point for a line, or the control point for a curve.
	B Point

	// C is the end point for a curve. Unused for lines.
	C Point
}

// Line returns the directed line segment from a to b.
func Line(a, b Point) Geometry {
	return Geometry{kind: kindLine, A: a, B: b}
}

// Curve returns the directed quadratic Bézier curve from a to c with
// control point b.
func Curve(a, b, c Point) Geometry {
	return Geometry{kind: kindCurve, A: a, B: b, C: c}
}

// IsLine reports whether g is a line segment.
func (g Geometry) IsLine() bool {
	return g.kind == kindLine
}

// IsCurve reports whether g is a quadratic curve.
func (g Geometry) IsCurve() bool {
	return g.kind == kindCurve
}
