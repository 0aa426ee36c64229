//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

// Default virtual machine: one enumerable display adapter with the emulated
// VGA register file, VRAM sized for two pages of the boot mode.
const (
	hostWidth  = 800
	hostHeight = 600
	hostBpp    = 32

	hostVRAMBase = 0xE0000000
	hostMMIOBase = 0xF0000000
)

type hostHAL struct {
	logger *hostLogger
	ports  *VirtualPorts
	pci    *VirtualPCI
	dispi  *VirtualDispi
	mem    *VirtualMemory
	vram   []byte
	rec    [BootRecordBytes]byte
	t      *hostTime
}

// New returns a host HAL backed by virtual hardware.
func New() HAL {
	pitch := hostWidth * (hostBpp / 8)

	pci := NewVirtualPCI()
	pci.AddFunction(0, 0, 0, VirtualPCIFunction{
		VendorID: 0x8086,
		DeviceID: 0x1237,
		Class:    0x06, // host bridge
	})
	pci.AddFunction(0, 2, 0, VirtualPCIFunction{
		VendorID: 0x1234,
		DeviceID: 0x1111,
		Class:    0x03, // display, VGA subclass
		BARs: [6]uint32{
			0: hostVRAMBase | 0x8, // prefetchable 32-bit memory
			2: hostMMIOBase,
		},
	})
	dispi := NewVirtualDispi(5, 16*1024)

	mem := NewVirtualMemory()
	vram := mem.AddAperture(hostVRAMBase, pitch*hostHeight*2)

	h := &hostHAL{
		logger: &hostLogger{w: os.Stdout},
		ports:  NewVirtualPorts(pci, dispi),
		pci:    pci,
		dispi:  dispi,
		mem:    mem,
		vram:   vram,
		t:      newHostTime(),
	}

	rec := BootRecord{
		Magic:    BootMagic,
		FBAddr:   hostVRAMBase,
		FBPitch:  uint16(pitch),
		FBWidth:  hostWidth,
		FBHeight: hostHeight,
		FBBpp:    hostBpp,
		FBType:   FBTypeRGB,
	}
	_ = rec.Encode(h.rec[:])

	return h
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) Ports() Ports   { return h.ports }
func (h *hostHAL) Memory() Memory { return h.mem }
func (h *hostHAL) Time() Time     { return h.t }

func (h *hostHAL) BootRecord() ([]byte, error) {
	out := make([]byte, BootRecordBytes)
	copy(out, h.rec[:])
	return out, nil
}

func (h *hostHAL) Halt() {
	h.logger.WriteLineString("hal: halted")
	select {}
}

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
