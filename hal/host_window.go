//go:build !tinygo

package hal

import (
	"image"

	"lumen/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window scanning out the virtual front buffer.
// It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error) error {
	h := New().(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Lumen (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(hostWidth, hostHeight)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	img   *image.RGBA
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

// Draw scans the front-buffer aperture out to the window, honoring the boot
// mode's pitch and pixel encoding the way a display controller would.
func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, hostWidth, hostHeight))
		g.fbImg = ebiten.NewImage(hostWidth, hostHeight)
	}

	rec, err := DecodeBootRecord(g.h.rec[:])
	if err != nil {
		return
	}
	pitch := int(rec.FBPitch)
	dst := g.img.Pix
	src := g.h.vram

	for y := 0; y < hostHeight; y++ {
		row := src[y*pitch:]
		for x := 0; x < hostWidth; x++ {
			var r, gg, b uint8
			switch rec.FBBpp {
			case 32:
				o := x * 4
				b, gg, r = row[o], row[o+1], row[o+2]
			case 24:
				o := x * 3
				b, gg, r = row[o], row[o+1], row[o+2]
			case 16:
				o := x * 2
				r, gg, b = rgb888From565(uint16(row[o]) | uint16(row[o+1])<<8)
			}
			j := (y*hostWidth + x) * 4
			dst[j+0] = r
			dst[j+1] = gg
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return hostWidth, hostHeight
}
