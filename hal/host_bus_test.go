//go:build !tinygo

package hal

import "testing"

func TestVirtualPortsFloatHigh(t *testing.T) {
	p := NewVirtualPorts()
	if v := p.Inw(0x1CF); v != 0xFFFF {
		t.Fatalf("Inw on empty bus: got %#x", v)
	}
	if v := p.Inl(0xCFC); v != 0xFFFFFFFF {
		t.Fatalf("Inl on empty bus: got %#x", v)
	}
}

func TestVirtualPCIConfigCycle(t *testing.T) {
	vp := NewVirtualPCI()
	vp.AddFunction(0, 3, 0, VirtualPCIFunction{
		VendorID: 0x1234,
		DeviceID: 0x1111,
		Class:    0x03,
	})
	p := NewVirtualPorts(vp)

	addr := uint32(0x80000000) | 3<<11
	p.Outl(0xCF8, addr)
	if v := p.Inl(0xCFC); v != 0x11111234 {
		t.Fatalf("vendor/device word: got %#x", v)
	}

	// Absent slot reads all-ones.
	p.Outl(0xCF8, uint32(0x80000000)|4<<11)
	if v := p.Inl(0xCFC); v != 0xFFFFFFFF {
		t.Fatalf("absent slot: got %#x", v)
	}

	// Config writes persist (command register).
	p.Outl(0xCF8, addr|0x04)
	p.Outl(0xCFC, 0x0007)
	if got := vp.Command(0, 3, 0); got != 0x0007 {
		t.Fatalf("command register: got %#x", got)
	}
}

func TestVirtualDispiRegisterFile(t *testing.T) {
	d := NewVirtualDispi(5, 16*1024)
	p := NewVirtualPorts(d)

	p.Outw(0x1CE, 0x0)
	if v := p.Inw(0x1CF); v != 0xB0C5 {
		t.Fatalf("identity register: got %#x", v)
	}

	p.Outw(0x1CE, 0x1)
	p.Outw(0x1CF, 1024)
	if v := p.Inw(0x1CF); v != 1024 {
		t.Fatalf("xres readback: got %d", v)
	}

	p.Outw(0x1CE, 0xA)
	if v := p.Inw(0x1CF); v != 256 {
		t.Fatalf("video memory register: got %d (want 16MB/64KB)", v)
	}
}

func TestVirtualMemoryApertures(t *testing.T) {
	m := NewVirtualMemory()
	buf := m.AddAperture(0xE0000000, 4096)

	got, err := m.Map(0xE0000100, 16)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	got[0] = 0xAB
	if buf[0x100] != 0xAB {
		t.Fatal("mapped slice does not alias the aperture")
	}

	if _, err := m.Map(0xD0000000, 16); err == nil {
		t.Fatal("expected error for unmapped address")
	}
	if _, err := m.Map(0xE0000000, 8192); err == nil {
		t.Fatal("expected error for range past aperture end")
	}
}
