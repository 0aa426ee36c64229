//go:build !tinygo

package pci

import (
	"testing"

	"lumen/hal"
)

func testBus(build func(*hal.VirtualPCI)) (*Bus, *hal.VirtualPCI) {
	vpci := hal.NewVirtualPCI()
	build(vpci)
	return NewBus(hal.NewVirtualPorts(vpci)), vpci
}

func TestEnumerateFindsFunctions(t *testing.T) {
	b, _ := testBus(func(v *hal.VirtualPCI) {
		v.AddFunction(0, 0, 0, hal.VirtualPCIFunction{
			VendorID: 0x8086, DeviceID: 0x1237, Class: 0x06,
		})
		v.AddFunction(0, 2, 0, hal.VirtualPCIFunction{
			VendorID: 0x1234, DeviceID: 0x1111, Class: 0x03,
		})
	})
	b.Enumerate()

	devs := b.Devices()
	if len(devs) != 2 {
		t.Fatalf("devices = %d, want 2", len(devs))
	}
	if devs[0].VendorID != 0x8086 || devs[0].Slot != 0 {
		t.Fatalf("first device = %04x at slot %d", devs[0].VendorID, devs[0].Slot)
	}
	if devs[1].DeviceID != 0x1111 || devs[1].Slot != 2 {
		t.Fatalf("second device = %04x at slot %d", devs[1].DeviceID, devs[1].Slot)
	}
}

func TestEnumerateIdempotent(t *testing.T) {
	b, _ := testBus(func(v *hal.VirtualPCI) {
		v.AddFunction(0, 1, 0, hal.VirtualPCIFunction{VendorID: 0x10DE, DeviceID: 0x2000, Class: 0x03})
	})
	b.Enumerate()
	b.Enumerate()

	if n := len(b.Devices()); n != 1 {
		t.Fatalf("devices after re-scan = %d, want 1", n)
	}
}

func TestEnumerateMultiFunction(t *testing.T) {
	b, _ := testBus(func(v *hal.VirtualPCI) {
		v.AddFunction(0, 4, 0, hal.VirtualPCIFunction{
			VendorID: 0x8086, DeviceID: 0x100, HeaderType: 0x80,
		})
		v.AddFunction(0, 4, 3, hal.VirtualPCIFunction{
			VendorID: 0x8086, DeviceID: 0x103,
		})
		// Function on a single-function device must not be probed in.
		v.AddFunction(0, 5, 0, hal.VirtualPCIFunction{
			VendorID: 0x8086, DeviceID: 0x200,
		})
		v.AddFunction(0, 5, 1, hal.VirtualPCIFunction{
			VendorID: 0x8086, DeviceID: 0x201,
		})
	})
	b.Enumerate()

	devs := b.Devices()
	if len(devs) != 3 {
		t.Fatalf("devices = %d, want 3", len(devs))
	}
	if devs[1].Func != 3 || devs[1].DeviceID != 0x103 {
		t.Fatalf("multi-function sibling = fn%d dev %04x", devs[1].Func, devs[1].DeviceID)
	}
	for _, d := range devs {
		if d.DeviceID == 0x201 {
			t.Fatal("function 1 of single-function device was recorded")
		}
	}
}

func TestEnumerateCapsAtMaxDevices(t *testing.T) {
	b, _ := testBus(func(v *hal.VirtualPCI) {
		// Five 8-function devices make 40 functions on the bus.
		for slot := uint8(0); slot < 5; slot++ {
			v.AddFunction(0, slot, 0, hal.VirtualPCIFunction{
				VendorID: 0x1AF4, DeviceID: 0x1000 + uint16(slot), HeaderType: 0x80,
			})
			for fn := uint8(1); fn < 8; fn++ {
				v.AddFunction(0, slot, fn, hal.VirtualPCIFunction{
					VendorID: 0x1AF4, DeviceID: 0x1000 + uint16(slot),
				})
			}
		}
	})
	b.Enumerate()

	if n := len(b.Devices()); n != MaxDevices {
		t.Fatalf("devices = %d, want cap %d", n, MaxDevices)
	}
}

func TestBARDecoding(t *testing.T) {
	b, _ := testBus(func(v *hal.VirtualPCI) {
		v.AddFunction(0, 2, 0, hal.VirtualPCIFunction{
			VendorID: 0x1234, DeviceID: 0x1111, Class: 0x03,
			BARs: [6]uint32{
				0xE0000008,       // 32-bit memory, prefetchable
				0x0000C001,       // I/O
				0xF000000C,       // 64-bit memory, low half
				0x00000001 << 1,  // 64-bit memory, high half (addr bit 33)
				0,                // unused
				0xFEB00000,       // 32-bit memory
			},
		})
	})
	b.Enumerate()

	d, err := b.FindByIDs(0x1234, 0x1111)
	if err != nil {
		t.Fatal(err)
	}
	if d.BARs[0].Kind != BARMem32 || d.BARs[0].Addr != 0xE0000000 {
		t.Fatalf("bar0 = %v addr %x", d.BARs[0].Kind, d.BARs[0].Addr)
	}
	if d.BARs[1].Kind != BARIo || d.BARs[1].Addr != 0xC000 {
		t.Fatalf("bar1 = %v addr %x", d.BARs[1].Kind, d.BARs[1].Addr)
	}
	if d.BARs[2].Kind != BARMem64 || d.BARs[2].Addr != 0x2F0000000 {
		t.Fatalf("bar2 = %v addr %x", d.BARs[2].Kind, d.BARs[2].Addr)
	}
	if d.BARs[3].Kind != BARUnused {
		t.Fatalf("bar3 should be consumed by the 64-bit region, got %v", d.BARs[3].Kind)
	}
	if d.BARs[5].Kind != BARMem32 || d.BARs[5].Addr != 0xFEB00000 {
		t.Fatalf("bar5 = %v addr %x", d.BARs[5].Kind, d.BARs[5].Addr)
	}
}

func TestFindDisplayPrefersVGA(t *testing.T) {
	b, _ := testBus(func(v *hal.VirtualPCI) {
		v.AddFunction(0, 1, 0, hal.VirtualPCIFunction{
			VendorID: 0x10DE, DeviceID: 0x2204, Class: 0x03, Subclass: 0x02,
		})
		v.AddFunction(0, 2, 0, hal.VirtualPCIFunction{
			VendorID: 0x1234, DeviceID: 0x1111, Class: 0x03, Subclass: 0x00,
		})
	})
	b.Enumerate()

	d, err := b.FindDisplay()
	if err != nil {
		t.Fatal(err)
	}
	if d.VendorID != 0x1234 {
		t.Fatalf("display = %04x, want the VGA-subclass device", d.VendorID)
	}
}

func TestFindDisplayFallsBackTo3D(t *testing.T) {
	b, _ := testBus(func(v *hal.VirtualPCI) {
		v.AddFunction(0, 1, 0, hal.VirtualPCIFunction{
			VendorID: 0x10DE, DeviceID: 0x2204, Class: 0x03, Subclass: 0x02,
		})
	})
	b.Enumerate()

	d, err := b.FindDisplay()
	if err != nil {
		t.Fatal(err)
	}
	if d.VendorID != 0x10DE {
		t.Fatalf("display = %04x, want the 3D controller", d.VendorID)
	}
}

func TestFindNotFound(t *testing.T) {
	b, _ := testBus(func(v *hal.VirtualPCI) {})
	b.Enumerate()

	if _, err := b.FindByIDs(0x1234, 0x1111); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := b.FindDisplay(); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestEnablePreservesCommandBits(t *testing.T) {
	b, vpci := testBus(func(v *hal.VirtualPCI) {
		v.AddFunction(0, 2, 0, hal.VirtualPCIFunction{
			VendorID: 0x1234, DeviceID: 0x1111, Class: 0x03,
		})
	})
	vpci.SetCommand(0, 2, 0, 0x0140) // unrelated bits already set
	b.Enumerate()

	d, err := b.FindByIDs(0x1234, 0x1111)
	if err != nil {
		t.Fatal(err)
	}
	b.Enable(d)

	want := uint16(0x0140 | CmdIOSpace | CmdMemSpace | CmdBusMaster)
	if got := vpci.Command(0, 2, 0); got != want {
		t.Fatalf("command = %04x, want %04x", got, want)
	}
}

func TestNames(t *testing.T) {
	if VendorName(0x1234) != "QEMU/Bochs" {
		t.Fatal("vendor name for 0x1234")
	}
	if VendorName(0xABCD) != "Unknown" {
		t.Fatal("vendor name for unknown id")
	}
	if ClassName(0x03, 0x00) != "VGA Controller" {
		t.Fatal("class name for VGA")
	}
	if ClassName(0x02, 0x00) != "Other Device" {
		t.Fatal("class name for non-display")
	}
}
