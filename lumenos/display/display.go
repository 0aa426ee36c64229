package display

import (
	"lumen/lumenos/gpu"
	"lumen/lumenos/surface"
)

const cursorSize = 16

// Display owns the layer stack over one presentation pipeline. All layer
// buffers come from a single arena allocated here and are never
// reallocated. Not safe for concurrent use; the frame loop is the only
// caller.
type Display struct {
	pipe *gpu.Pipeline

	W, H   int
	layers [layerCount]Layer

	frames uint32
	ticks  uint32

	cursorVisible bool
	cursorX       int
	cursorY       int
}

// New builds the stack: four full-screen layers plus the 16x16 cursor.
// Background and Main start visible at full alpha, everything transparent.
func New(pipe *gpu.Pipeline) *Display {
	w, h := pipe.Size()

	d := &Display{
		pipe:    pipe,
		W:       w,
		H:       h,
		cursorX: w / 2,
		cursorY: h / 2,
	}

	arena := make([]surface.Color, 4*w*h+cursorSize*cursorSize)
	for i := LayerBackground; i < LayerCursor; i++ {
		l := &d.layers[i]
		l.W, l.H = w, h
		l.Alpha = 255
		l.Pix = arena[int(i)*w*h : (int(i)+1)*w*h]
	}

	cur := &d.layers[LayerCursor]
	cur.W, cur.H = cursorSize, cursorSize
	cur.Alpha = 255
	cur.X, cur.Y = d.cursorX, d.cursorY
	cur.Pix = arena[4*w*h:]
	drawCursorSprite(cur)

	d.layers[LayerBackground].Visible = true
	d.layers[LayerMain].Visible = true
	return d
}

// Layer returns one layer of the stack for direct drawing.
func (d *Display) Layer(k LayerKind) *Layer {
	return &d.layers[k]
}

// Pipeline exposes the underlying presentation pipeline.
func (d *Display) Pipeline() *gpu.Pipeline { return d.pipe }

func (d *Display) SetVisible(k LayerKind, v bool) {
	d.layers[k].Visible = v
	d.layers[k].dirty = true
}

func (d *Display) SetAlpha(k LayerKind, a uint8) {
	d.layers[k].Alpha = a
	d.layers[k].dirty = true
}

func (d *Display) SetPosition(k LayerKind, x, y int) {
	d.layers[k].X = x
	d.layers[k].Y = y
	d.layers[k].dirty = true
}

// FrameCount returns the number of frames begun so far.
func (d *Display) FrameCount() uint32 { return d.frames }

// Ticks returns the free-running frame tick, handy for animation phase.
func (d *Display) Ticks() uint32 { return d.ticks }

// BeginFrame advances the frame counters.
func (d *Display) BeginFrame() {
	d.frames++
	d.ticks++
}

// Composite flattens the stack into the back buffer. Layers contribute in
// fixed order, bottom to top. A source pixel's alpha is scaled by the layer
// alpha when the layer is translucent; 255 overwrites, 0 is skipped, and
// anything between blends over the accumulated value.
func (d *Display) Composite() {
	for y := 0; y < d.H; y++ {
		for x := 0; x < d.W; x++ {
			var acc surface.Color

			for i := LayerBackground; i < layerCount; i++ {
				l := &d.layers[i]
				if !l.Visible {
					continue
				}
				lx := x - l.X
				ly := y - l.Y
				if lx < 0 || ly < 0 || lx >= l.W || ly >= l.H {
					continue
				}

				src := l.Pix[ly*l.W+lx]
				a := src.A()
				if l.Alpha < 255 {
					a = uint8(uint32(a) * uint32(l.Alpha) / 255)
				}

				switch a {
				case 0:
					// transparent, keep the accumulator
				case 255:
					acc = src
				default:
					acc = surface.Blend(src, acc, a)
				}
			}

			d.pipe.Back.Set(x, y, acc)
		}
	}

	for i := range d.layers {
		d.layers[i].dirty = false
	}
}

// EndFrame composites, presents, and paces.
func (d *Display) EndFrame() {
	d.Composite()
	d.pipe.Present()
	d.pipe.WaitVSync()
}

// PresentDirect pushes the back buffer as-is, skipping compositing. Used
// for raw drawing paths that bypass the layer stack.
func (d *Display) PresentDirect() {
	d.pipe.Present()
}

func (d *Display) SetCursorVisible(v bool) {
	d.layers[LayerCursor].Visible = v
	d.cursorVisible = v
}

func (d *Display) SetCursorPosition(x, y int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= d.W {
		x = d.W - 1
	}
	if y >= d.H {
		y = d.H - 1
	}
	d.cursorX, d.cursorY = x, y
	d.layers[LayerCursor].X = x
	d.layers[LayerCursor].Y = y
}

// CursorPosition returns the current cursor hotspot.
func (d *Display) CursorPosition() (int, int) { return d.cursorX, d.cursorY }
