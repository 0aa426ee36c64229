// Package pci discovers devices on configuration bus 0 through the legacy
// 0xCF8/0xCFC mechanism and classifies their resource regions.
package pci

import (
	"errors"

	"lumen/hal"
)

const (
	configAddrPort = 0x0CF8
	configDataPort = 0x0CFC

	configEnable = 0x80000000

	// Configuration space register offsets.
	regVendorID      = 0x00
	regDeviceID      = 0x02
	regCommand       = 0x04
	regRevisionID    = 0x08
	regProgIF        = 0x09
	regSubclass      = 0x0A
	regClass         = 0x0B
	regHeaderType    = 0x0E
	regBAR0          = 0x10
	regInterruptLine = 0x3C
	regInterruptPin  = 0x3D

	// Command register bits.
	CmdIOSpace   = 0x0001
	CmdMemSpace  = 0x0002
	CmdBusMaster = 0x0004

	// Display controller class and subclasses.
	ClassDisplay = 0x03
	SubclassVGA  = 0x00
	Subclass3D   = 0x02

	headerMultiFunction = 0x80

	// MaxDevices caps the device table; enumeration past it silently
	// truncates, so callers must not assume full bus coverage.
	MaxDevices = 32

	maxSlots = 32
	maxFuncs = 8
)

// Known display vendor IDs.
const (
	VendorAMD    = 0x1002
	VendorNvidia = 0x10DE
	VendorIntel  = 0x8086
	VendorVMware = 0x15AD
	VendorQemu   = 0x1234
	VendorVirtio = 0x1AF4
	VendorBochs  = 0x1234
	VendorRedHat = 0x1B36

	DeviceBochsVGA = 0x1111
)

var ErrNotFound = errors.New("pci: no matching device")

// BARKind classifies a resource region.
type BARKind uint8

const (
	BARUnused BARKind = iota
	BARIo
	BARMem32
	BARMem64
)

// BAR is one device resource region. A 64-bit memory region consumes two
// consecutive slots; the second slot stays BARUnused. Size is best-effort
// and may be zero (the size probe is not implemented, see readBARSize).
type BAR struct {
	Kind BARKind
	Addr uint64
	Size uint32
}

// Device is one discovered configuration-space function. Populated once
// during enumeration and never mutated afterwards, except for the command
// register through Enable.
type Device struct {
	Bus  uint8
	Slot uint8
	Func uint8

	VendorID uint16
	DeviceID uint16

	Class      uint8
	Subclass   uint8
	ProgIF     uint8
	Revision   uint8
	HeaderType uint8
	IntLine    uint8
	IntPin     uint8

	BARs [6]BAR
}

// Bus owns the device table for one enumeration pass.
type Bus struct {
	ports hal.Ports
	devs  []Device
}

// NewBus returns an empty bus over the given port accessor.
func NewBus(p hal.Ports) *Bus {
	return &Bus{ports: p, devs: make([]Device, 0, MaxDevices)}
}

func configAddr(bus, slot, fn, offset uint8) uint32 {
	return configEnable |
		uint32(bus)<<16 |
		uint32(slot)<<11 |
		uint32(fn)<<8 |
		uint32(offset&0xFC)
}

func (b *Bus) read32(bus, slot, fn, offset uint8) uint32 {
	b.ports.Outl(configAddrPort, configAddr(bus, slot, fn, offset))
	return b.ports.Inl(configDataPort)
}

func (b *Bus) read16(bus, slot, fn, offset uint8) uint16 {
	return uint16(b.read32(bus, slot, fn, offset) >> ((offset & 2) * 8))
}

func (b *Bus) read8(bus, slot, fn, offset uint8) uint8 {
	return uint8(b.read32(bus, slot, fn, offset) >> ((offset & 3) * 8))
}

func (b *Bus) write32(bus, slot, fn, offset uint8, v uint32) {
	b.ports.Outl(configAddrPort, configAddr(bus, slot, fn, offset))
	b.ports.Outl(configDataPort, v)
}

func (b *Bus) write16(bus, slot, fn, offset uint8, v uint16) {
	shift := (offset & 2) * 8
	tmp := b.read32(bus, slot, fn, offset)
	tmp &^= 0xFFFF << shift
	tmp |= uint32(v) << shift
	b.ports.Outl(configDataPort, tmp)
}

// readBARSize would probe a region's size with the write-ones/read-back
// sequence. The probe is deliberately not implemented: it momentarily
// disconnects the region, and nothing downstream consumes the size yet.
func (b *Bus) readBARSize(bus, slot, fn, bar uint8) uint32 {
	_ = bus
	_ = slot
	_ = fn
	_ = bar
	return 0
}

// Enumerate scans bus 0, slots 0-31, probing functions 1-7 only on devices
// with the multi-function header bit. Re-running resets the table and
// reproduces the same result for unchanged hardware.
func (b *Bus) Enumerate() {
	b.devs = b.devs[:0]

	for slot := uint8(0); slot < maxSlots; slot++ {
		vendor := b.read16(0, slot, 0, regVendorID)
		if vendor == 0xFFFF || vendor == 0x0000 {
			continue
		}

		b.record(0, slot, 0)

		header := b.read8(0, slot, 0, regHeaderType)
		if header&headerMultiFunction != 0 {
			for fn := uint8(1); fn < maxFuncs; fn++ {
				if b.read16(0, slot, fn, regVendorID) != 0xFFFF {
					b.record(0, slot, fn)
				}
			}
		}

		if len(b.devs) >= MaxDevices {
			break
		}
	}
}

func (b *Bus) record(bus, slot, fn uint8) {
	vendor := b.read16(bus, slot, fn, regVendorID)
	if vendor == 0xFFFF {
		return
	}
	if len(b.devs) >= MaxDevices {
		return
	}

	d := Device{
		Bus:        bus,
		Slot:       slot,
		Func:       fn,
		VendorID:   vendor,
		DeviceID:   b.read16(bus, slot, fn, regDeviceID),
		Class:      b.read8(bus, slot, fn, regClass),
		Subclass:   b.read8(bus, slot, fn, regSubclass),
		ProgIF:     b.read8(bus, slot, fn, regProgIF),
		Revision:   b.read8(bus, slot, fn, regRevisionID),
		HeaderType: b.read8(bus, slot, fn, regHeaderType),
		IntLine:    b.read8(bus, slot, fn, regInterruptLine),
		IntPin:     b.read8(bus, slot, fn, regInterruptPin),
	}

	// Resource regions exist only on standard (type 0) headers.
	if d.HeaderType&0x7F == 0 {
		for i := uint8(0); i < 6; i++ {
			raw := b.read32(bus, slot, fn, regBAR0+i*4)
			size := b.readBARSize(bus, slot, fn, i)

			switch {
			case raw == 0:
				d.BARs[i] = BAR{Kind: BARUnused}
			case raw&0x1 != 0:
				d.BARs[i] = BAR{Kind: BARIo, Addr: uint64(raw &^ 0x3), Size: size}
			case raw&0x6 == 0x4:
				hi := b.read32(bus, slot, fn, regBAR0+(i+1)*4)
				d.BARs[i] = BAR{
					Kind: BARMem64,
					Addr: uint64(hi)<<32 | uint64(raw&^0xF),
					Size: size,
				}
				i++ // upper half consumes the next slot
			default:
				d.BARs[i] = BAR{Kind: BARMem32, Addr: uint64(raw &^ 0xF), Size: size}
			}
		}
	}

	b.devs = append(b.devs, d)
}

// Devices returns the table in registration order (= scan order).
func (b *Bus) Devices() []Device { return b.devs }

// FindByIDs returns the first device with the given vendor/device pair.
func (b *Bus) FindByIDs(vendor, device uint16) (*Device, error) {
	for i := range b.devs {
		if b.devs[i].VendorID == vendor && b.devs[i].DeviceID == device {
			return &b.devs[i], nil
		}
	}
	return nil, ErrNotFound
}

// FindByClass returns the first device with the given class/subclass pair.
func (b *Bus) FindByClass(class, subclass uint8) (*Device, error) {
	for i := range b.devs {
		if b.devs[i].Class == class && b.devs[i].Subclass == subclass {
			return &b.devs[i], nil
		}
	}
	return nil, ErrNotFound
}

// FindDisplay returns the first display controller, preferring the VGA
// subclass over 3D controllers.
func (b *Bus) FindDisplay() (*Device, error) {
	if d, err := b.FindByClass(ClassDisplay, SubclassVGA); err == nil {
		return d, nil
	}
	return b.FindByClass(ClassDisplay, Subclass3D)
}

// Enable sets the I/O-space, memory-space, and bus-master bits in the
// device's command register, preserving everything else. This is the only
// mutating configuration transaction the stack issues.
func (b *Bus) Enable(d *Device) {
	cmd := b.read16(d.Bus, d.Slot, d.Func, regCommand)
	cmd |= CmdIOSpace | CmdMemSpace | CmdBusMaster
	b.write16(d.Bus, d.Slot, d.Func, regCommand, cmd)
}

// VendorName names known display vendors for log output.
func VendorName(vendor uint16) string {
	switch vendor {
	case VendorAMD:
		return "AMD/ATI"
	case VendorNvidia:
		return "NVIDIA"
	case VendorIntel:
		return "Intel"
	case VendorVMware:
		return "VMware"
	case VendorQemu:
		return "QEMU/Bochs"
	case VendorVirtio:
		return "VirtIO"
	case VendorRedHat:
		return "Red Hat"
	default:
		return "Unknown"
	}
}

// ClassName names display-class devices for log output.
func ClassName(class, subclass uint8) string {
	if class == ClassDisplay {
		switch subclass {
		case 0x00:
			return "VGA Controller"
		case 0x01:
			return "XGA Controller"
		case 0x02:
			return "3D Controller"
		default:
			return "Display Controller"
		}
	}
	return "Other Device"
}
