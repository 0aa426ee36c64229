// Package gpu drives the display adapter: detection over the PCI bus,
// mode setting on the Bochs-dispi register file, and the back-to-front
// presentation pipeline.
package gpu

import (
	"errors"

	"lumen/hal"
	"lumen/lumenos/pci"
)

// Bochs/QEMU dispi index/data ports and register file.
const (
	dispiIndexPort = 0x01CE
	dispiDataPort  = 0x01CF

	dispiRegID         = 0x0
	dispiRegXRes       = 0x1
	dispiRegYRes       = 0x2
	dispiRegBPP        = 0x3
	dispiRegEnable     = 0x4
	dispiRegBank       = 0x5
	dispiRegVirtWidth  = 0x6
	dispiRegVirtHeight = 0x7
	dispiRegXOffset    = 0x8
	dispiRegYOffset    = 0x9
	dispiRegVideoMem   = 0xA

	dispiIDMin = 0xB0C0
	dispiIDMax = 0xB0C5

	dispiDisabled = 0x00
	dispiEnabled  = 0x01
	dispiLFB      = 0x40

	// defaultVRAM is assumed when the video memory register reads zero.
	defaultVRAM = 16 * 1024 * 1024
)

var (
	ErrUnsupported = errors.New("gpu: operation not supported by this adapter")
	ErrNoMode      = errors.New("gpu: no video mode configured")
)

// Kind classifies the detected adapter.
type Kind uint8

const (
	KindNone Kind = iota
	KindLegacyVesa
	KindEmulatedVga
	KindVmwareSvga
	KindVirtioGpu
	KindIntel
	KindAmd
	KindNvidia
)

func (k Kind) String() string {
	switch k {
	case KindLegacyVesa:
		return "legacy VESA"
	case KindEmulatedVga:
		return "emulated VGA"
	case KindVmwareSvga:
		return "VMware SVGA"
	case KindVirtioGpu:
		return "VirtIO GPU"
	case KindIntel:
		return "Intel graphics"
	case KindAmd:
		return "AMD graphics"
	case KindNvidia:
		return "NVIDIA graphics"
	default:
		return "none"
	}
}

// Adapter is the detected display device. Detect fills the identity and
// aperture fields; SetMode fills the geometry. Not safe for concurrent use.
type Adapter struct {
	ports hal.Ports
	bus   *pci.Bus

	Kind   Kind
	Device *pci.Device

	// DispiVersion holds the low digit of the identity register when the
	// dispi interface is present, 0xFFFF otherwise.
	DispiVersion uint16
	VRAMSize     uint32

	FBBase   uint64
	MMIOBase uint64

	Width  int
	Height int
	BPP    int
	Pitch  int
}

// NewAdapter builds an undetected adapter. bus may be nil, in which case
// detection skips the PCI pass and goes straight to the I/O probe.
func NewAdapter(ports hal.Ports, bus *pci.Bus) *Adapter {
	return &Adapter{ports: ports, bus: bus, DispiVersion: 0xFFFF}
}

func (a *Adapter) dispiWrite(index, v uint16) {
	a.ports.Outw(dispiIndexPort, index)
	a.ports.Outw(dispiDataPort, v)
}

func (a *Adapter) dispiRead(index uint16) uint16 {
	a.ports.Outw(dispiIndexPort, index)
	return a.ports.Inw(dispiDataPort)
}

// probeDispi checks for the Bochs register file. The identity register is
// read-only, so probing does not disturb a live mode.
func (a *Adapter) probeDispi() bool {
	id := a.dispiRead(dispiRegID)
	if id < dispiIDMin || id > dispiIDMax {
		return false
	}
	a.DispiVersion = id - dispiIDMin

	vram := uint32(a.dispiRead(dispiRegVideoMem)) * 64 * 1024
	if vram == 0 {
		vram = defaultVRAM
	}
	a.VRAMSize = vram
	return true
}

func classify(vendor uint16) Kind {
	switch vendor {
	case pci.VendorAMD:
		return KindAmd
	case pci.VendorNvidia:
		return KindNvidia
	case pci.VendorIntel:
		return KindIntel
	case pci.VendorVMware:
		return KindVmwareSvga
	case pci.VendorVirtio:
		return KindVirtioGpu
	default:
		return KindLegacyVesa
	}
}

// Detect resolves the adapter. Resolution order: a PCI display controller
// if the bus has one, then a bare dispi probe, then the legacy fallback
// where geometry must come from the boot record. Detect never fails; the
// worst outcome is KindLegacyVesa with no aperture.
func (a *Adapter) Detect() {
	if a.bus != nil {
		if d, err := a.bus.FindDisplay(); err == nil {
			a.Device = d
			a.bus.Enable(d)

			if d.BARs[0].Kind == pci.BARMem32 || d.BARs[0].Kind == pci.BARMem64 {
				a.FBBase = d.BARs[0].Addr
			}
			if d.BARs[2].Kind == pci.BARMem32 || d.BARs[2].Kind == pci.BARMem64 {
				a.MMIOBase = d.BARs[2].Addr
			}

			if d.VendorID == pci.VendorQemu && a.probeDispi() {
				a.Kind = KindEmulatedVga
			} else {
				a.Kind = classify(d.VendorID)
			}
			return
		}
	}

	if a.probeDispi() {
		a.Kind = KindEmulatedVga
		return
	}

	a.Kind = KindLegacyVesa
}

// HasHWCursor reports whether the adapter exposes a hardware cursor plane.
// Only the emulated VGA does, and even there the compositor keeps using the
// software cursor layer; the flag is informational.
func (a *Adapter) HasHWCursor() bool { return a.Kind == KindEmulatedVga }

// HasAccel reports whether the adapter has a 2D blit engine the driver can
// use. None of the supported adapters do; the dispi interface is a dumb
// framebuffer, and everything else is driven through firmware modes.
func (a *Adapter) HasAccel() bool { return false }

// SetMode programs w by h at the given depth. Only the emulated VGA accepts
// mode changes; every other kind returns ErrUnsupported without touching a
// register, and the caller keeps the boot-record geometry. The virtual
// resolution reserves a second page below the visible one for Flip.
func (a *Adapter) SetMode(w, h, bpp int) error {
	if a.Kind != KindEmulatedVga {
		return ErrUnsupported
	}
	if w <= 0 || h <= 0 || (bpp != 16 && bpp != 24 && bpp != 32) {
		return ErrUnsupported
	}

	a.dispiWrite(dispiRegEnable, dispiDisabled)
	a.dispiWrite(dispiRegXRes, uint16(w))
	a.dispiWrite(dispiRegYRes, uint16(h))
	a.dispiWrite(dispiRegBPP, uint16(bpp))
	a.dispiWrite(dispiRegVirtWidth, uint16(w))
	a.dispiWrite(dispiRegVirtHeight, uint16(2*h))
	a.dispiWrite(dispiRegXOffset, 0)
	a.dispiWrite(dispiRegYOffset, 0)
	a.dispiWrite(dispiRegEnable, dispiEnabled|dispiLFB)

	a.Width = w
	a.Height = h
	a.BPP = bpp
	a.Pitch = w * bpp / 8
	return nil
}

// Flip retargets scanout to the given page by moving the vertical offset.
// Page 0 is the visible boot page, page 1 the reserve under it.
func (a *Adapter) Flip(page int) error {
	if a.Kind != KindEmulatedVga {
		return ErrUnsupported
	}
	if a.Height == 0 {
		return ErrNoMode
	}
	a.dispiWrite(dispiRegYOffset, uint16(page*a.Height))
	return nil
}

// AdoptRecordGeometry takes the mode geometry from a validated boot record,
// for adapters that cannot be reprogrammed.
func (a *Adapter) AdoptRecordGeometry(r hal.BootRecord) {
	a.Width = int(r.FBWidth)
	a.Height = int(r.FBHeight)
	a.BPP = int(r.FBBpp)
	a.Pitch = int(r.FBPitch)
	if a.FBBase == 0 {
		a.FBBase = uint64(r.FBAddr)
	}
}
