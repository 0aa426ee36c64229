package app

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"lumen/lumenos/surface"
)

// backDisplayer lets tinyfont draw straight onto the pipeline back buffer,
// bypassing the layer stack. Used only on the fatal path, where the
// compositor may be in an arbitrary state.
type backDisplayer struct {
	s *system
}

func (d backDisplayer) Size() (x, y int16) {
	w, h := d.s.disp.Pipeline().Size()
	return int16(w), int16(h)
}

func (d backDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.s.disp.Pipeline().Back.Set(int(x), int(y), surface.RGB(c.R, c.G, c.B))
}

func (d backDisplayer) Display() error { return nil }

// fatalScreen paints the message full screen and pushes it to the device
// directly. Nothing runs after this; the caller halts.
func (s *system) fatalScreen(msg string) {
	pipe := s.disp.Pipeline()
	pipe.Clear(surface.RGB(120, 0, 0))

	d := backDisplayer{s: s}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	font := &proggy.TinySZ8pt7b

	tinyfont.WriteLine(d, font, 8, 16, "lumen: fatal", white)
	tinyfont.WriteLine(d, font, 8, 32, msg, white)

	pipe.Present()
}
