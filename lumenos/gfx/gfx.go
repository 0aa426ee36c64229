// Package gfx is the rendering primitive library. Every routine draws
// through the Target capability, so the same algorithms run against the
// back buffer, a compositor layer, or a directly mapped framebuffer.
// Coordinate and color arithmetic is integer throughout.
package gfx

import "lumen/lumenos/surface"

// Target is a pixel sink. Implementations bounds-check their own accesses;
// primitives never clip beyond relying on that.
type Target interface {
	Size() (w, h int)
	Set(x, y int, c surface.Color)
	At(x, y int) surface.Color
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// HLine draws a horizontal run of length n starting at (x, y).
func HLine(dst Target, x, y, n int, c surface.Color) {
	for i := 0; i < n; i++ {
		dst.Set(x+i, y, c)
	}
}

// VLine draws a vertical run of length n starting at (x, y).
func VLine(dst Target, x, y, n int, c surface.Color) {
	for i := 0; i < n; i++ {
		dst.Set(x, y+i, c)
	}
}

// Line draws with Bresenham's algorithm, endpoints inclusive.
func Line(dst Target, x0, y0, x1, y1 int, c surface.Color) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx - dy

	for {
		dst.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// LineThick draws a line stamping a square brush of the given thickness.
func LineThick(dst Target, x0, y0, x1, y1, thickness int, c surface.Color) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx - dy
	half := thickness / 2

	for {
		for ty := -half; ty <= half; ty++ {
			for tx := -half; tx <= half; tx++ {
				dst.Set(x0+tx, y0+ty, c)
			}
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Rect outlines a w by h rectangle with top-left corner at (x, y).
func Rect(dst Target, x, y, w, h int, c surface.Color) {
	HLine(dst, x, y, w, c)
	HLine(dst, x, y+h-1, w, c)
	VLine(dst, x, y, h, c)
	VLine(dst, x+w-1, y, h, c)
}

// FillRect fills a w by h rectangle with top-left corner at (x, y).
func FillRect(dst Target, x, y, w, h int, c surface.Color) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			dst.Set(x+dx, y+dy, c)
		}
	}
}

// RectRounded outlines a rectangle with quarter-circle corners of radius r.
func RectRounded(dst Target, x, y, w, h, r int, c surface.Color) {
	HLine(dst, x+r, y, w-2*r, c)
	HLine(dst, x+r, y+h-1, w-2*r, c)
	VLine(dst, x, y+r, h-2*r, c)
	VLine(dst, x+w-1, y+r, h-2*r, c)

	corner := func(cx, cy, qx, qy int) {
		px, py := 0, r
		d := 1 - r
		for px <= py {
			dst.Set(cx+qx*py, cy+qy*px, c)
			dst.Set(cx+qx*px, cy+qy*py, c)
			if d < 0 {
				d += 2*px + 3
			} else {
				d += 2*(px-py) + 5
				py--
			}
			px++
		}
	}
	corner(x+r, y+r, -1, -1)
	corner(x+w-r-1, y+r, 1, -1)
	corner(x+r, y+h-r-1, -1, 1)
	corner(x+w-r-1, y+h-r-1, 1, 1)
}
