package coverage

import "testing"

// BenchmarkDrawLine measures the per-segment cost of the scanline sweep
// at several edge lengths.
func BenchmarkDrawLine(b *testing.B) {
	lengths := []struct {
		name   string
		p0, p1 Point
	}{
		{"short_steep", Pt(10, 10), Pt(12, 20)},
		{"long_steep", Pt(10, 2), Pt(20, 250)},
		{"long_shallow", Pt(2, 10), Pt(250, 20)},
		{"full_diagonal", Pt(0, 0), Pt(256, 256)},
	}

	for _, tc := range lengths {
		b.Run(tc.name, func(b *testing.B) {
			r := New(256, 256)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				r.DrawLine(tc.p0, tc.p1)
			}
		})
	}
}

func BenchmarkDrawCurve(b *testing.B) {
	curves := []struct {
		name       string
		p0, p1, p2 Point
	}{
		{"near_flat", Pt(10, 10), Pt(20, 10.2), Pt(30, 10)},
		{"gentle", Pt(10, 100), Pt(128, 60), Pt(246, 100)},
		{"tight", Pt(10, 200), Pt(128, -180), Pt(246, 200)},
	}

	for _, tc := range curves {
		b.Run(tc.name, func(b *testing.B) {
			r := New(256, 256)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				r.DrawCurve(tc.p0, tc.p1, tc.p2)
			}
		})
	}
}

// BenchmarkConsumeBitmap measures the prefix-sum finalize pass, which is
// linear in the raster area.
func BenchmarkConsumeBitmap(b *testing.B) {
	sizes := []struct {
		name string
		w, h int
	}{
		{"16x16", 16, 16},
		{"64x64", 64, 64},
		{"256x256", 256, 256},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			r := New(size.w, size.h)
			b.ReportAllocs()
			b.SetBytes(int64(size.w * size.h))
			for i := 0; i < b.N; i++ {
				r.DrawLine(Pt(1, 1), Pt(float32(size.w-1), float32(size.h-1)))
				_ = r.ConsumeBitmap()
			}
		})
	}
}

// BenchmarkGlyphShape approximates a small glyph: a closed contour of
// lines and curves drawn and consumed through one reused raster.
func BenchmarkGlyphShape(b *testing.B) {
	r := New(32, 32)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Draw(Line(Pt(4, 28), Pt(4, 10)))
		r.Draw(Curve(Pt(4, 10), Pt(16, 2), Pt(28, 10)))
		r.Draw(Line(Pt(28, 10), Pt(28, 28)))
		r.Draw(Line(Pt(28, 28), Pt(4, 28)))
		_ = r.ConsumeBitmap()
	}
}
