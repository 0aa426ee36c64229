// Package display composites a fixed stack of layers into the gpu back
// buffer. Layers are drawn bottom to top in a fixed order; each carries its
// own ARGB buffer, position, visibility, and an alpha multiplier.
package display

import "lumen/lumenos/surface"

// LayerKind is a layer's slot in the compositing order.
type LayerKind uint8

const (
	LayerBackground LayerKind = iota
	LayerMain
	LayerUi
	LayerOverlay
	LayerCursor
	layerCount
)

func (k LayerKind) String() string {
	switch k {
	case LayerBackground:
		return "background"
	case LayerMain:
		return "main"
	case LayerUi:
		return "ui"
	case LayerOverlay:
		return "overlay"
	case LayerCursor:
		return "cursor"
	default:
		return "invalid"
	}
}

// Layer is one plane of the stack. Pix is a window into the display arena;
// it is handed out at init and never reallocated.
type Layer struct {
	X, Y    int
	W, H    int
	Visible bool
	Alpha   uint8
	Pix     []surface.Color

	dirty bool
}

// Size returns the layer geometry, satisfying the drawing target contract.
func (l *Layer) Size() (int, int) { return l.W, l.H }

// Set writes one pixel. Palette colors carry no alpha channel, so a zero
// alpha is promoted to opaque; translucent draws pass RGBA colors, and
// transparent holes are punched with SetRaw.
func (l *Layer) Set(x, y int, c surface.Color) {
	if x < 0 || y < 0 || x >= l.W || y >= l.H {
		return
	}
	if c.A() == 0 {
		c |= 0xFF000000
	}
	l.Pix[y*l.W+x] = c
	l.dirty = true
}

// SetRaw writes one pixel without touching the alpha channel.
func (l *Layer) SetRaw(x, y int, c surface.Color) {
	if x < 0 || y < 0 || x >= l.W || y >= l.H {
		return
	}
	l.Pix[y*l.W+x] = c
	l.dirty = true
}

// At reads one pixel; out of bounds reads as transparent.
func (l *Layer) At(x, y int) surface.Color {
	if x < 0 || y < 0 || x >= l.W || y >= l.H {
		return 0
	}
	return l.Pix[y*l.W+x]
}

// Clear fills the layer with fully transparent pixels.
func (l *Layer) Clear() {
	for i := range l.Pix {
		l.Pix[i] = 0
	}
	l.dirty = true
}

// Fill floods the layer with an opaque color.
func (l *Layer) Fill(c surface.Color) {
	if c.A() == 0 {
		c |= 0xFF000000
	}
	for i := range l.Pix {
		l.Pix[i] = c
	}
	l.dirty = true
}

// FillRect fills a clipped rectangle within the layer.
func (l *Layer) FillRect(x, y, w, h int, c surface.Color) {
	if c.A() == 0 {
		c |= 0xFF000000
	}
	for yy := y; yy < y+h; yy++ {
		if yy < 0 || yy >= l.H {
			continue
		}
		for xx := x; xx < x+w; xx++ {
			if xx < 0 || xx >= l.W {
				continue
			}
			l.Pix[yy*l.W+xx] = c
		}
	}
	l.dirty = true
}

// Dirty reports whether the layer changed since the last composite.
func (l *Layer) Dirty() bool { return l.dirty }
