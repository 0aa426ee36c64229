package gpu

import (
	"lumen/hal"
	"lumen/lumenos/surface"
)

// vsyncSpin is the pacing loop iteration count. There is no vertical
// blanking interrupt to wait on, so presentation paces itself with a
// fixed busy loop the way the hardware-less original did.
const vsyncSpin = 100000

// Viewport is the pipeline clip rectangle.
type Viewport struct {
	X, Y, W, H int
}

func (v Viewport) contains(x, y int) bool {
	return x >= v.X && y >= v.Y && x < v.X+v.W && y < v.Y+v.H
}

// clipRect intersects the given rect with the viewport.
func (v Viewport) clipRect(x, y, w, h int) (int, int, int, int) {
	if x < v.X {
		w -= v.X - x
		x = v.X
	}
	if y < v.Y {
		h -= v.Y - y
		y = v.Y
	}
	if x+w > v.X+v.W {
		w = v.X + v.W - x
	}
	if y+h > v.Y+v.H {
		h = v.Y + v.H - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return x, y, w, h
}

// Pipeline owns the drawing back buffer and the mapped front buffer and
// moves pixels between them. All drawing lands in the back buffer; nothing
// reaches the device until Present. Not safe for concurrent use.
type Pipeline struct {
	Back  surface.Surface
	Front surface.Surface

	view Viewport

	vsync uint64 // spin-loop sink, keeps the loop from folding away
}

// NewPipeline maps the framebuffer aperture described by a validated boot
// record and allocates a matching back buffer. The front surface uses the
// device pitch; the back buffer is always tightly packed.
func NewPipeline(mem hal.Memory, rec hal.BootRecord) (*Pipeline, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	w := int(rec.FBWidth)
	h := int(rec.FBHeight)
	pitch := int(rec.FBPitch)
	bpp := int(rec.FBBpp)

	fb, err := mem.Map(rec.FBAddr, pitch*h)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		Back:  surface.New(w, h, bpp),
		Front: surface.FromBuffer(fb, w, h, pitch, bpp),
	}
	p.ResetViewport()
	return p, nil
}

// Size returns the back-buffer geometry.
func (p *Pipeline) Size() (int, int) { return p.Back.W, p.Back.H }

// SetViewport installs a clip rectangle, clamped to the buffer.
func (p *Pipeline) SetViewport(x, y, w, h int) {
	full := Viewport{0, 0, p.Back.W, p.Back.H}
	x, y, w, h = full.clipRect(x, y, w, h)
	p.view = Viewport{x, y, w, h}
}

// ResetViewport restores the full-buffer clip.
func (p *Pipeline) ResetViewport() {
	p.view = Viewport{0, 0, p.Back.W, p.Back.H}
}

// View returns the current clip rectangle.
func (p *Pipeline) View() Viewport { return p.view }

// Clipped reports whether a point passes the viewport test.
func (p *Pipeline) Clipped(x, y int) bool { return !p.view.contains(x, y) }

// Clear fills the whole back buffer, ignoring the viewport.
func (p *Pipeline) Clear(c surface.Color) {
	p.Back.Fill(c)
}

// ClearRect fills a viewport-clipped rectangle of the back buffer.
func (p *Pipeline) ClearRect(x, y, w, h int, c surface.Color) {
	x, y, w, h = p.view.clipRect(x, y, w, h)
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			p.Back.Set(xx, yy, c)
		}
	}
}

// Present copies the back buffer to the device row by row. The two buffers
// share geometry but may disagree on pitch, so rows are copied at the back
// buffer's logical width and each side advances by its own pitch.
func (p *Pipeline) Present() {
	rowBytes := p.Back.W * p.Back.BPP / 8
	if rowBytes > p.Back.Pitch {
		rowBytes = p.Back.Pitch
	}
	if rowBytes > p.Front.Pitch {
		rowBytes = p.Front.Pitch
	}
	for y := 0; y < p.Back.H; y++ {
		src := p.Back.Buf[y*p.Back.Pitch:]
		dst := p.Front.Buf[y*p.Front.Pitch:]
		copy(dst[:rowBytes], src[:rowBytes])
	}
}

// PresentRect copies one viewport-clipped rectangle to the device.
func (p *Pipeline) PresentRect(x, y, w, h int) {
	x, y, w, h = p.view.clipRect(x, y, w, h)
	if w == 0 || h == 0 {
		return
	}
	bypp := p.Back.BPP / 8
	for yy := y; yy < y+h; yy++ {
		so := yy*p.Back.Pitch + x*bypp
		do := yy*p.Front.Pitch + x*bypp
		copy(p.Front.Buf[do:do+w*bypp], p.Back.Buf[so:so+w*bypp])
	}
}

// WaitVSync burns a fixed number of iterations. Pacing only, there is no
// synchronization with scanout.
func (p *Pipeline) WaitVSync() {
	for i := 0; i < vsyncSpin; i++ {
		p.vsync++
	}
}
