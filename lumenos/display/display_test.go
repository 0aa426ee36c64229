//go:build !tinygo

package display

import (
	"testing"

	"lumen/hal"
	"lumen/lumenos/gpu"
	"lumen/lumenos/surface"
)

func testDisplay(t *testing.T, w, h int) (*Display, []byte) {
	t.Helper()
	mem := hal.NewVirtualMemory()
	pitch := w * 4
	vram := mem.AddAperture(0xE0000000, pitch*h)
	pipe, err := gpu.NewPipeline(mem, hal.BootRecord{
		Magic:    hal.BootMagic,
		FBAddr:   0xE0000000,
		FBPitch:  uint16(pitch),
		FBWidth:  uint16(w),
		FBHeight: uint16(h),
		FBBpp:    32,
		FBType:   hal.FBTypeRGB,
	})
	if err != nil {
		t.Fatal(err)
	}
	return New(pipe), vram
}

func TestDefaultStack(t *testing.T) {
	d, _ := testDisplay(t, 32, 32)

	if !d.Layer(LayerBackground).Visible || !d.Layer(LayerMain).Visible {
		t.Fatal("background and main should start visible")
	}
	if d.Layer(LayerUi).Visible || d.Layer(LayerOverlay).Visible || d.Layer(LayerCursor).Visible {
		t.Fatal("ui, overlay, and cursor should start hidden")
	}
	for k := LayerBackground; k < LayerCursor; k++ {
		if w, h := d.Layer(k).Size(); w != 32 || h != 32 {
			t.Fatalf("%v layer = %dx%d", k, w, h)
		}
	}
	if w, h := d.Layer(LayerCursor).Size(); w != 16 || h != 16 {
		t.Fatalf("cursor layer = %dx%d", w, h)
	}
}

func TestCompositeBackgroundPassthrough(t *testing.T) {
	d, _ := testDisplay(t, 8, 8)

	d.Layer(LayerBackground).Fill(surface.Red)
	d.Composite()

	if got := d.Pipeline().Back.At(3, 3); got != surface.RGBA(255, 0, 0, 255) {
		t.Fatalf("back buffer = %08x, want opaque red", uint32(got))
	}
}

func TestCompositeLayerAlphaMultiplier(t *testing.T) {
	d, _ := testDisplay(t, 8, 8)

	d.Layer(LayerBackground).Fill(surface.Black)
	d.Layer(LayerMain).Fill(surface.White)
	d.SetAlpha(LayerMain, 128)
	d.Composite()

	got := d.Pipeline().Back.At(0, 0)
	if got.R() != 128 || got.G() != 128 || got.B() != 128 {
		t.Fatalf("back buffer = %08x, want mid gray", uint32(got))
	}
}

func TestCompositeOpaqueOverwrites(t *testing.T) {
	d, _ := testDisplay(t, 8, 8)

	d.Layer(LayerBackground).Fill(surface.Red)
	d.Layer(LayerMain).Set(2, 2, surface.Blue)
	d.Composite()

	if got := d.Pipeline().Back.At(2, 2); got != surface.RGBA(0, 0, 255, 255) {
		t.Fatalf("opaque main pixel = %08x, want blue", uint32(got))
	}
	if got := d.Pipeline().Back.At(5, 5); got.R() != 255 {
		t.Fatalf("transparent main pixel = %08x, want background red", uint32(got))
	}
}

func TestCompositeTranslucentBlends(t *testing.T) {
	d, _ := testDisplay(t, 8, 8)

	d.Layer(LayerBackground).Fill(surface.Black)
	d.Layer(LayerMain).Set(1, 1, surface.RGBA(255, 0, 0, 128))
	d.Composite()

	got := d.Pipeline().Back.At(1, 1)
	if got.R() != 128 || got.G() != 0 {
		t.Fatalf("blended pixel = %08x, want half red", uint32(got))
	}
}

func TestCompositeTranslation(t *testing.T) {
	d, _ := testDisplay(t, 8, 8)

	d.Layer(LayerBackground).Fill(surface.Black)
	d.Layer(LayerMain).Set(0, 0, surface.Green)
	d.SetPosition(LayerMain, 3, 2)
	d.Composite()

	if got := d.Pipeline().Back.At(3, 2); got.G() != 255 {
		t.Fatalf("translated pixel = %08x", uint32(got))
	}
	if got := d.Pipeline().Back.At(0, 0); got.G() != 0 {
		t.Fatalf("origin should show background, got %08x", uint32(got))
	}
}

func TestCompositeHiddenLayerSkipped(t *testing.T) {
	d, _ := testDisplay(t, 8, 8)

	d.Layer(LayerBackground).Fill(surface.Black)
	d.Layer(LayerOverlay).Fill(surface.White)
	d.Composite()

	if got := d.Pipeline().Back.At(4, 4); got.R() != 0 {
		t.Fatal("hidden overlay leaked into the frame")
	}

	d.SetVisible(LayerOverlay, true)
	d.Composite()
	if got := d.Pipeline().Back.At(4, 4); got.R() != 255 {
		t.Fatal("visible overlay missing from the frame")
	}
}

func TestFrameCounters(t *testing.T) {
	d, _ := testDisplay(t, 8, 8)

	for i := 0; i < 3; i++ {
		d.BeginFrame()
	}
	if d.FrameCount() != 3 || d.Ticks() != 3 {
		t.Fatalf("counters = %d/%d, want 3/3", d.FrameCount(), d.Ticks())
	}
}

func TestCursor(t *testing.T) {
	d, _ := testDisplay(t, 32, 32)

	d.Layer(LayerBackground).Fill(surface.Red)
	d.SetCursorVisible(true)
	d.SetCursorPosition(10, 12)
	d.Composite()

	// Top-left of the arrow is a black outline pixel.
	if got := d.Pipeline().Back.At(10, 12); got != surface.Color(0xFF000000) {
		t.Fatalf("cursor outline = %08x, want black", uint32(got))
	}
	// Inside the arrow body the fill is white.
	if got := d.Pipeline().Back.At(11, 16); got != surface.Color(0xFFFFFFFF) {
		t.Fatalf("cursor fill = %08x, want white", uint32(got))
	}
	// Transparent cursor cells show the layer below.
	if got := d.Pipeline().Back.At(25, 12); got.R() != 255 {
		t.Fatal("transparent cursor cell hid the background")
	}

	d.SetCursorPosition(-10, 1000)
	x, y := d.CursorPosition()
	if x != 0 || y != 31 {
		t.Fatalf("cursor clamp = %d,%d", x, y)
	}
}

func TestEndFramePresents(t *testing.T) {
	d, vram := testDisplay(t, 8, 8)

	d.BeginFrame()
	d.Layer(LayerBackground).Fill(surface.Blue)
	d.EndFrame()

	// 32bpp stores little-endian, blue in the first byte.
	if vram[0] != 255 {
		t.Fatalf("vram[0] = %d, want blue channel", vram[0])
	}
}
