package gfx

import "lumen/lumenos/surface"

// Circle draws a midpoint circle, plotting the eight symmetric octant points.
func Circle(dst Target, cx, cy, r int, c surface.Color) {
	x, y := 0, r
	d := 1 - r

	for x <= y {
		dst.Set(cx+x, cy+y, c)
		dst.Set(cx-x, cy+y, c)
		dst.Set(cx+x, cy-y, c)
		dst.Set(cx-x, cy-y, c)
		dst.Set(cx+y, cy+x, c)
		dst.Set(cx-y, cy+x, c)
		dst.Set(cx+y, cy-x, c)
		dst.Set(cx-y, cy-x, c)

		if d < 0 {
			d += 2*x + 3
		} else {
			d += 2*(x-y) + 5
			y--
		}
		x++
	}
}

// FillCircle fills a circle by sweeping horizontal spans per octant step.
// A radius of zero fills the single center pixel.
func FillCircle(dst Target, cx, cy, r int, c surface.Color) {
	x, y := 0, r
	d := 1 - r

	for x <= y {
		for i := cx - x; i <= cx+x; i++ {
			dst.Set(i, cy+y, c)
			dst.Set(i, cy-y, c)
		}
		for i := cx - y; i <= cx+y; i++ {
			dst.Set(i, cy+x, c)
			dst.Set(i, cy-x, c)
		}

		if d < 0 {
			d += 2*x + 3
		} else {
			d += 2*(x-y) + 5
			y--
		}
		x++
	}
}

// Ring fills the annulus between rInner and rOuter by distance test.
func Ring(dst Target, cx, cy, rOuter, rInner int, c surface.Color) {
	for y := -rOuter; y <= rOuter; y++ {
		for x := -rOuter; x <= rOuter; x++ {
			d := x*x + y*y
			if d <= rOuter*rOuter && d >= rInner*rInner {
				dst.Set(cx+x, cy+y, c)
			}
		}
	}
}

// Ellipse draws a two-region midpoint ellipse. The region boundary is where
// the tangent slope reaches -1; the region decision variables are seeded in
// floating point and truncated, everything after is integer.
func Ellipse(dst Target, cx, cy, rx, ry int, c surface.Color) {
	rx2 := rx * rx
	ry2 := ry * ry
	twoRx2 := 2 * rx2
	twoRy2 := 2 * ry2
	x, y := 0, ry
	px, py := 0, twoRx2*y

	plot4 := func() {
		dst.Set(cx+x, cy+y, c)
		dst.Set(cx-x, cy+y, c)
		dst.Set(cx+x, cy-y, c)
		dst.Set(cx-x, cy-y, c)
	}

	p := int(float64(ry2) - float64(rx2)*float64(ry) + 0.25*float64(rx2))
	for px < py {
		plot4()
		x++
		px += twoRy2
		if p < 0 {
			p += ry2 + px
		} else {
			y--
			py -= twoRx2
			p += ry2 + px - py
		}
	}

	fx := float64(x) + 0.5
	fy := float64(y) - 1
	p = int(float64(ry2)*fx*fx + float64(rx2)*fy*fy - float64(rx2)*float64(ry2))
	for y >= 0 {
		plot4()
		y--
		py -= twoRx2
		if p > 0 {
			p += rx2 - py
		} else {
			x++
			px += twoRy2
			p += rx2 - py + px
		}
	}
}

// FillEllipse fills by the implicit-equation test.
func FillEllipse(dst Target, cx, cy, rx, ry int, c surface.Color) {
	for y := -ry; y <= ry; y++ {
		for x := -rx; x <= rx; x++ {
			if x*x*ry*ry+y*y*rx*rx <= rx*rx*ry*ry {
				dst.Set(cx+x, cy+y, c)
			}
		}
	}
}

// Triangle outlines the triangle (x0,y0)-(x1,y1)-(x2,y2).
func Triangle(dst Target, x0, y0, x1, y1, x2, y2 int, c surface.Color) {
	Line(dst, x0, y0, x1, y1, c)
	Line(dst, x1, y1, x2, y2, c)
	Line(dst, x2, y2, x0, y0, c)
}

// FillTriangle fills by sorting vertices by y and interpolating two edges
// per scanline. Zero-height segments are skipped, which handles flat-top
// and flat-bottom degenerate cases.
func FillTriangle(dst Target, x0, y0, x1, y1, x2, y2 int, c surface.Color) {
	if y0 > y1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	if y1 > y2 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
	}
	if y0 > y1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	if y0 == y2 {
		return
	}

	for y := y0; y <= y2; y++ {
		var xa, xb int
		if y < y1 {
			if y1 == y0 {
				continue
			}
			xa = x0 + (x1-x0)*(y-y0)/(y1-y0)
			xb = x0 + (x2-x0)*(y-y0)/(y2-y0)
		} else {
			if y2 == y1 {
				xa = x1
			} else {
				xa = x1 + (x2-x1)*(y-y1)/(y2-y1)
			}
			xb = x0 + (x2-x0)*(y-y0)/(y2-y0)
		}
		if xa > xb {
			xa, xb = xb, xa
		}
		for x := xa; x <= xb; x++ {
			dst.Set(x, y, c)
		}
	}
}

// Polygon outlines the vertex list, closing back to the first vertex.
// pts is x,y pairs.
func Polygon(dst Target, pts []int, c surface.Color) {
	n := len(pts) / 2
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		Line(dst, pts[i*2], pts[i*2+1], pts[next*2], pts[next*2+1], c)
	}
}
