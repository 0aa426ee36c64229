package gfx

import "lumen/lumenos/surface"

// Sin approximates sine of an angle in degrees, scaled by 256. The value
// comes from a per-quadrant parabola fold, not a table; the error bound is
// not certified and callers must not assume sub-degree accuracy.
func Sin(angle int) int {
	angle %= 360
	if angle < 0 {
		angle += 360
	}

	q := angle / 90
	a := angle % 90
	if q == 1 || q == 3 {
		a = 90 - a
	}
	x := a * 256 / 90
	y := x * (512 - x) / 256

	if q >= 2 {
		return -y
	}
	return y
}

// Cos is Sin shifted by a quarter turn.
func Cos(angle int) int {
	return Sin(angle + 90)
}

// Arc plots degree steps of a circular arc from startAngle to endAngle,
// counter-clockwise with y growing downwards.
func Arc(dst Target, cx, cy, r, startAngle, endAngle int, c surface.Color) {
	for a := startAngle; a <= endAngle; a++ {
		x := cx + r*Cos(a)/256
		y := cy - r*Sin(a)/256
		dst.Set(x, y, c)
	}
}

// Star outlines a star with the given point count, alternating between the
// outer and inner radius.
func Star(dst Target, cx, cy, rOuter, rInner, points int, c surface.Color) {
	step := 360 / (points * 2)
	px := cx + rOuter*Cos(0)/256
	py := cy - rOuter*Sin(0)/256

	for i := 1; i <= points*2; i++ {
		angle := i * step
		r := rInner
		if i%2 == 0 {
			r = rOuter
		}
		x := cx + r*Cos(angle)/256
		y := cy - r*Sin(angle)/256
		Line(dst, px, py, x, y, c)
		px, py = x, y
	}
}

// FillStar fills the star as a fan of triangles from the center.
func FillStar(dst Target, cx, cy, rOuter, rInner, points int, c surface.Color) {
	step := 360 / (points * 2)

	for i := 0; i < points*2; i++ {
		a1 := i * step
		a2 := (i + 1) * step
		r1 := rInner
		if i%2 == 0 {
			r1 = rOuter
		}
		r2 := rInner
		if (i+1)%2 == 0 {
			r2 = rOuter
		}

		x1 := cx + r1*Cos(a1)/256
		y1 := cy - r1*Sin(a1)/256
		x2 := cx + r2*Cos(a2)/256
		y2 := cy - r2*Sin(a2)/256

		FillTriangle(dst, cx, cy, x1, y1, x2, y2, c)
	}
}

// BezierQuad draws a quadratic Bezier as chained segments sampled at a
// fixed parameter step (t = 0..100 by 2).
func BezierQuad(dst Target, x0, y0, x1, y1, x2, y2 int, c surface.Color) {
	px, py := x0, y0
	for t := 0; t <= 100; t += 2 {
		t2 := t * t
		mt := 100 - t
		mt2 := mt * mt

		x := (mt2*x0 + 2*mt*t*x1 + t2*x2) / 10000
		y := (mt2*y0 + 2*mt*t*y1 + t2*y2) / 10000

		Line(dst, px, py, x, y, c)
		px, py = x, y
	}
}

// BezierCubic draws a cubic Bezier with the same fixed-step subdivision.
func BezierCubic(dst Target, x0, y0, x1, y1, x2, y2, x3, y3 int, c surface.Color) {
	px, py := x0, y0
	for t := 0; t <= 100; t += 2 {
		t2 := t * t
		t3 := t2 * t
		mt := 100 - t
		mt2 := mt * mt
		mt3 := mt2 * mt

		x := (mt3*x0 + 3*mt2*t*x1 + 3*mt*t2*x2 + t3*x3) / 1000000
		y := (mt3*y0 + 3*mt2*t*y1 + 3*mt*t2*y2 + t3*y3) / 1000000

		Line(dst, px, py, x, y, c)
		px, py = x, y
	}
}
