package gfx

import "lumen/lumenos/surface"

// GradientV fills the whole target with a top-to-bottom gradient.
func GradientV(dst Target, top, bottom surface.Color) {
	w, h := dst.Size()
	for y := 0; y < h; y++ {
		t := uint8(y * 255 / h)
		c := surface.Lerp(top, bottom, t)
		for x := 0; x < w; x++ {
			dst.Set(x, y, c)
		}
	}
}

// GradientH fills the whole target with a left-to-right gradient.
func GradientH(dst Target, left, right surface.Color) {
	w, h := dst.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := uint8(x * 255 / w)
			dst.Set(x, y, surface.Lerp(left, right, t))
		}
	}
}

// Glow fills a disc and fades it into the existing pixels over an extra
// intensity band.
func Glow(dst Target, cx, cy, r int, c surface.Color, intensity int) {
	for y := -r - intensity; y <= r+intensity; y++ {
		for x := -r - intensity; x <= r+intensity; x++ {
			distSq := x*x + y*y
			dist := isqrt(distSq)

			if dist <= r {
				dst.Set(cx+x, cy+y, c)
			} else if dist <= r+intensity {
				fade := uint8(255 - (dist-r)*255/intensity)
				bg := dst.At(cx+x, cy+y)
				dst.Set(cx+x, cy+y, surface.Blend(c, bg, fade))
			}
		}
	}
}

// isqrt is the integer square root by linear probe; glow radii are small.
func isqrt(v int) int {
	d := 0
	for i := 1; i*i <= v; i++ {
		d = i
	}
	return d
}

// Checkerboard fills a w by h region with alternating size-sized squares.
func Checkerboard(dst Target, x, y, w, h, size int, c1, c2 surface.Color) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if (dx/size+dy/size)%2 == 1 {
				dst.Set(x+dx, y+dy, c1)
			} else {
				dst.Set(x+dx, y+dy, c2)
			}
		}
	}
}

// Noise fills a region with grayscale noise from a linear congruential
// generator, deterministic per seed.
func Noise(dst Target, x, y, w, h int, seed uint32) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			seed = seed*1103515245 + 12345
			gray := uint8(seed >> 16)
			dst.Set(x+dx, y+dy, surface.RGB(gray, gray, gray))
		}
	}
}
