package gfx

import "lumen/lumenos/surface"

// Sprite is an ARGB pixel rectangle with a hotspot, used for cursors and
// small decorations. Pixel storage is caller-provided; the library never
// allocates at steady state.
type Sprite struct {
	Pix  []surface.Color
	W, H int
	HotX int
	HotY int
}

// Blit composites the sprite at (x, y), honoring per-pixel alpha.
func Blit(dst Target, sp *Sprite, x, y int) {
	if sp == nil || sp.Pix == nil {
		return
	}
	for sy := 0; sy < sp.H; sy++ {
		for sx := 0; sx < sp.W; sx++ {
			p := sp.Pix[sy*sp.W+sx]
			a := p.A()
			if a == 0 {
				continue
			}
			if a == 255 {
				dst.Set(x+sx, y+sy, p)
				continue
			}
			bg := dst.At(x+sx, y+sy)
			dst.Set(x+sx, y+sy, surface.Blend(p, bg, a))
		}
	}
}

// BlitScaled composites the sprite into a dstW by dstH box with nearest
// neighbor sampling.
func BlitScaled(dst Target, sp *Sprite, x, y, dstW, dstH int) {
	if sp == nil || sp.Pix == nil || dstW == 0 || dstH == 0 {
		return
	}
	for dy := 0; dy < dstH; dy++ {
		sy := dy * sp.H / dstH
		for dx := 0; dx < dstW; dx++ {
			sx := dx * sp.W / dstW
			p := sp.Pix[sy*sp.W+sx]
			a := p.A()
			if a == 0 {
				continue
			}
			bg := dst.At(x+dx, y+dy)
			dst.Set(x+dx, y+dy, surface.Blend(p, bg, a))
		}
	}
}

// BlitRegion composites a sw by sh sub-rectangle of the sprite, sourced at
// (sx, sy), to destination (dx, dy). Out-of-sprite source pixels are skipped.
func BlitRegion(dst Target, sp *Sprite, dx, dy, sx, sy, sw, sh int) {
	if sp == nil || sp.Pix == nil {
		return
	}
	for ry := 0; ry < sh; ry++ {
		for rx := 0; rx < sw; rx++ {
			srcX := sx + rx
			srcY := sy + ry
			if srcX < 0 || srcX >= sp.W || srcY < 0 || srcY >= sp.H {
				continue
			}
			p := sp.Pix[srcY*sp.W+srcX]
			a := p.A()
			if a == 0 {
				continue
			}
			bg := dst.At(dx+rx, dy+ry)
			dst.Set(dx+rx, dy+ry, surface.Blend(p, bg, a))
		}
	}
}

// NewSolidSprite builds a fully opaque single-color sprite in buf, which
// must hold w*h pixels.
func NewSolidSprite(w, h int, c surface.Color, buf []surface.Color) Sprite {
	for i := 0; i < w*h; i++ {
		buf[i] = c | 0xFF000000
	}
	return Sprite{Pix: buf[:w*h], W: w, H: h}
}

// NewGradientSprite builds an opaque two-color gradient sprite in buf,
// vertical or horizontal.
func NewGradientSprite(w, h int, c1, c2 surface.Color, vertical bool, buf []surface.Color) Sprite {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var t uint8
			if vertical {
				t = uint8(y * 255 / h)
			} else {
				t = uint8(x * 255 / w)
			}
			buf[y*w+x] = surface.Lerp(c1, c2, t) | 0xFF000000
		}
	}
	return Sprite{Pix: buf[:w*h], W: w, H: h}
}
