//go:build !tinygo

package gpu

import (
	"testing"

	"lumen/hal"
	"lumen/lumenos/pci"
	"lumen/lumenos/surface"
)

func qemuVGA() hal.VirtualPCIFunction {
	return hal.VirtualPCIFunction{
		VendorID: pci.VendorQemu,
		DeviceID: pci.DeviceBochsVGA,
		Class:    pci.ClassDisplay,
		BARs: [6]uint32{
			0: 0xE0000008,
			2: 0xF0000000,
		},
	}
}

func TestDetectEmulatedVga(t *testing.T) {
	vpci := hal.NewVirtualPCI()
	vpci.AddFunction(0, 2, 0, qemuVGA())
	dispi := hal.NewVirtualDispi(5, 16*1024)
	ports := hal.NewVirtualPorts(vpci, dispi)

	bus := pci.NewBus(ports)
	bus.Enumerate()

	a := NewAdapter(ports, bus)
	a.Detect()

	if a.Kind != KindEmulatedVga {
		t.Fatalf("kind = %v, want emulated VGA", a.Kind)
	}
	if a.DispiVersion != 5 {
		t.Fatalf("dispi version = %d, want 5", a.DispiVersion)
	}
	if a.VRAMSize != 16*1024*1024 {
		t.Fatalf("vram = %d, want 16MB", a.VRAMSize)
	}
	if a.FBBase != 0xE0000000 || a.MMIOBase != 0xF0000000 {
		t.Fatalf("apertures = %x/%x", a.FBBase, a.MMIOBase)
	}
	want := uint16(pci.CmdIOSpace | pci.CmdMemSpace | pci.CmdBusMaster)
	if got := vpci.Command(0, 2, 0); got&want != want {
		t.Fatalf("command = %04x, device not enabled", got)
	}
	if !a.HasHWCursor() {
		t.Fatal("emulated VGA should report a hardware cursor")
	}
	if a.HasAccel() {
		t.Fatal("emulated VGA has no blit engine")
	}
}

func TestDetectVRAMZeroFallback(t *testing.T) {
	dispi := hal.NewVirtualDispi(4, 0)
	ports := hal.NewVirtualPorts(dispi)

	a := NewAdapter(ports, nil)
	a.Detect()

	if a.Kind != KindEmulatedVga {
		t.Fatalf("kind = %v, want emulated VGA from direct probe", a.Kind)
	}
	if a.VRAMSize != 16*1024*1024 {
		t.Fatalf("vram = %d, want the 16MB fallback", a.VRAMSize)
	}
}

func TestDetectVendorClassify(t *testing.T) {
	cases := []struct {
		vendor uint16
		want   Kind
	}{
		{pci.VendorNvidia, KindNvidia},
		{pci.VendorAMD, KindAmd},
		{pci.VendorIntel, KindIntel},
		{pci.VendorVMware, KindVmwareSvga},
		{pci.VendorVirtio, KindVirtioGpu},
		{0x5555, KindLegacyVesa},
	}
	for _, tc := range cases {
		vpci := hal.NewVirtualPCI()
		vpci.AddFunction(0, 1, 0, hal.VirtualPCIFunction{
			VendorID: tc.vendor, DeviceID: 0x1, Class: pci.ClassDisplay,
		})
		ports := hal.NewVirtualPorts(vpci)
		bus := pci.NewBus(ports)
		bus.Enumerate()

		a := NewAdapter(ports, bus)
		a.Detect()
		if a.Kind != tc.want {
			t.Fatalf("vendor %04x: kind = %v, want %v", tc.vendor, a.Kind, tc.want)
		}
	}
}

func TestDetectLegacyFallback(t *testing.T) {
	ports := hal.NewVirtualPorts() // empty bus, everything floats high
	a := NewAdapter(ports, nil)
	a.Detect()

	if a.Kind != KindLegacyVesa {
		t.Fatalf("kind = %v, want legacy fallback", a.Kind)
	}
	if a.DispiVersion != 0xFFFF {
		t.Fatalf("dispi version = %04x, want unset", a.DispiVersion)
	}
}

func TestSetModeSequence(t *testing.T) {
	dispi := hal.NewVirtualDispi(5, 16*1024)
	ports := hal.NewVirtualPorts(dispi)
	a := NewAdapter(ports, nil)
	a.Detect()

	if err := a.SetMode(640, 480, 32); err != nil {
		t.Fatal(err)
	}

	regs := []struct {
		index int
		want  uint16
	}{
		{1, 640},          // x resolution
		{2, 480},          // y resolution
		{3, 32},           // depth
		{6, 640},          // virtual width
		{7, 960},          // virtual height, doubled for the flip page
		{8, 0},            // x offset
		{9, 0},            // y offset
		{4, 0x01 | 0x40},  // enabled with the linear framebuffer flag
	}
	for _, r := range regs {
		if got := dispi.Reg(r.index); got != r.want {
			t.Fatalf("reg %#x = %d, want %d", r.index, got, r.want)
		}
	}

	if a.Pitch != 640*4 {
		t.Fatalf("pitch = %d, want %d", a.Pitch, 640*4)
	}
}

func TestSetModeRejectsBadGeometry(t *testing.T) {
	dispi := hal.NewVirtualDispi(5, 16*1024)
	ports := hal.NewVirtualPorts(dispi)
	a := NewAdapter(ports, nil)
	a.Detect()

	before := ports.WriteCount()
	if err := a.SetMode(0, 480, 32); err != ErrUnsupported {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
	if err := a.SetMode(640, 480, 15); err != ErrUnsupported {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
	if ports.WriteCount() != before {
		t.Fatal("rejected mode set still touched registers")
	}
}

func TestSetModeUnsupportedKind(t *testing.T) {
	ports := hal.NewVirtualPorts()
	a := NewAdapter(ports, nil)
	a.Detect() // legacy fallback

	before := ports.WriteCount()
	if err := a.SetMode(800, 600, 32); err != ErrUnsupported {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
	if ports.WriteCount() != before {
		t.Fatal("unsupported adapter still touched registers")
	}
	if a.Width != 0 || a.Pitch != 0 {
		t.Fatal("geometry changed on a failed mode set")
	}
}

func TestFlip(t *testing.T) {
	dispi := hal.NewVirtualDispi(5, 16*1024)
	ports := hal.NewVirtualPorts(dispi)
	a := NewAdapter(ports, nil)
	a.Detect()

	if err := a.Flip(1); err != ErrNoMode {
		t.Fatalf("flip before mode set: err = %v, want ErrNoMode", err)
	}
	if err := a.SetMode(640, 480, 32); err != nil {
		t.Fatal(err)
	}
	if err := a.Flip(1); err != nil {
		t.Fatal(err)
	}
	if got := dispi.Reg(9); got != 480 {
		t.Fatalf("y offset = %d, want 480", got)
	}
	if err := a.Flip(0); err != nil {
		t.Fatal(err)
	}
	if got := dispi.Reg(9); got != 0 {
		t.Fatalf("y offset = %d, want 0", got)
	}
}

func testRecord(w, h, pitch int, bpp uint8) hal.BootRecord {
	return hal.BootRecord{
		Magic:    hal.BootMagic,
		FBAddr:   0xE0000000,
		FBPitch:  uint16(pitch),
		FBWidth:  uint16(w),
		FBHeight: uint16(h),
		FBBpp:    bpp,
		FBType:   hal.FBTypeRGB,
	}
}

func testPipeline(t *testing.T, w, h, pitch int, bpp uint8) (*Pipeline, []byte) {
	t.Helper()
	mem := hal.NewVirtualMemory()
	vram := mem.AddAperture(0xE0000000, pitch*h)
	p, err := NewPipeline(mem, testRecord(w, h, pitch, bpp))
	if err != nil {
		t.Fatal(err)
	}
	return p, vram
}

func TestPipelineBackBufferGeometry(t *testing.T) {
	p, _ := testPipeline(t, 800, 600, 800*4, 32)

	if len(p.Back.Buf) != 800*600*4 {
		t.Fatalf("back buffer = %d bytes, want %d", len(p.Back.Buf), 800*600*4)
	}
	w, h := p.Size()
	if w != 800 || h != 600 {
		t.Fatalf("size = %dx%d", w, h)
	}
}

func TestPipelineRejectsBadRecord(t *testing.T) {
	mem := hal.NewVirtualMemory()
	rec := testRecord(800, 600, 800*4, 32)
	rec.FBAddr = 0
	if _, err := NewPipeline(mem, rec); err == nil {
		t.Fatal("pipeline accepted a record without a framebuffer")
	}
}

func TestPresentHonorsPitches(t *testing.T) {
	// Device pitch padded past the tight row width.
	const devicePitch = 16*4 + 32
	p, vram := testPipeline(t, 16, 4, devicePitch, 32)

	p.Back.Set(0, 0, surface.RGB(255, 0, 0))
	p.Back.Set(15, 3, surface.RGB(0, 0, 255))
	p.Present()

	// Row 3 starts at the device pitch, not the tight one.
	o := 3*devicePitch + 15*4
	if vram[o] != 255 || vram[o+2] != 0 {
		t.Fatalf("pixel (15,3) landed wrong: % x", vram[o:o+4])
	}
	if vram[2] != 255 {
		t.Fatalf("pixel (0,0) red channel = %d", vram[2])
	}
	// Padding bytes between rows stay untouched.
	if vram[16*4] != 0 {
		t.Fatal("present wrote into row padding")
	}
}

func TestPresentRectClips(t *testing.T) {
	p, vram := testPipeline(t, 16, 16, 16*4, 32)

	p.Back.Fill(surface.RGB(0, 255, 0))
	p.SetViewport(4, 4, 8, 8)
	p.PresentRect(0, 0, 16, 16)

	inside := (5*16 + 5) * 4
	outside := (1*16 + 1) * 4
	if vram[inside+1] != 255 {
		t.Fatal("viewport interior not presented")
	}
	if vram[outside+1] != 0 {
		t.Fatal("present leaked outside the viewport")
	}
}

func TestClearRectViewport(t *testing.T) {
	p, _ := testPipeline(t, 16, 16, 16*4, 32)

	p.SetViewport(0, 0, 8, 16)
	p.ClearRect(0, 0, 16, 16, surface.RGB(9, 9, 9))

	if p.Back.At(7, 0) != surface.RGB(9, 9, 9) {
		t.Fatal("clear missed the viewport interior")
	}
	if p.Back.At(8, 0) != 0 {
		t.Fatal("clear escaped the viewport")
	}
	if p.Clipped(3, 3) || !p.Clipped(12, 3) {
		t.Fatal("point clip test disagrees with the viewport")
	}
}

func TestViewportReset(t *testing.T) {
	p, _ := testPipeline(t, 16, 16, 16*4, 32)
	p.SetViewport(-5, -5, 100, 100) // clamps to the buffer
	if v := p.View(); v.X != 0 || v.Y != 0 || v.W != 16 || v.H != 16 {
		t.Fatalf("clamped viewport = %+v", v)
	}
	p.SetViewport(2, 2, 4, 4)
	p.ResetViewport()
	if v := p.View(); v.W != 16 || v.H != 16 {
		t.Fatalf("reset viewport = %+v", v)
	}
}
