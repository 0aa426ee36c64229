package console

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyterm"

	"lumen/lumenos/display"
	"lumen/lumenos/surface"
)

var _ tinyterm.Displayer = (*layerDisplayer)(nil)

// layerDisplayer adapts a compositor layer to the tinyterm display
// contract. Glyph pixels land in the layer's ARGB buffer as opaque
// values; the terminal never reads back.
type layerDisplayer struct {
	layer *display.Layer
}

func (d *layerDisplayer) Size() (x, y int16) {
	w, h := d.layer.Size()
	return int16(w), int16(h)
}

func (d *layerDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.layer.SetRaw(int(x), int(y), surface.RGBA(c.R, c.G, c.B, 255))
}

// Display is a no-op. The compositor picks up the layer on the next
// frame; there is no per-glyph flush.
func (d *layerDisplayer) Display() error { return nil }

func (d *layerDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if c.R == 0 && c.G == 0 && c.B == 0 {
		// The terminal blanks with black; keep those cells transparent so
		// the layers below stay visible between glyphs.
		for yy := int(y); yy < int(y+height); yy++ {
			for xx := int(x); xx < int(x+width); xx++ {
				d.layer.SetRaw(xx, yy, 0)
			}
		}
		return nil
	}
	d.layer.FillRect(int(x), int(y), int(width), int(height), surface.RGB(c.R, c.G, c.B))
	return nil
}

// ScrollUp moves the layer content up by the given pixel count and clears
// the exposed band, so the terminal scrolls instead of blanking when it
// runs past the last row.
func (d *layerDisplayer) ScrollUp(pixels int16, bg color.RGBA) error {
	w, h := d.layer.Size()
	n := int(pixels)
	if n <= 0 {
		return nil
	}
	if n >= h {
		return d.FillRectangle(0, 0, int16(w), int16(h), bg)
	}
	copy(d.layer.Pix[:(h-n)*w], d.layer.Pix[n*w:h*w])
	return d.FillRectangle(0, int16(h-n), int16(w), int16(n), bg)
}

func (d *layerDisplayer) SetScroll(line int16) {
	_ = line
}

func (d *layerDisplayer) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}
