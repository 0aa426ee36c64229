//go:build !tinygo

package hal

import "sync"

// portDevice is a device claiming a set of I/O ports on the virtual bus.
type portDevice interface {
	claims(port uint16) bool
	outw(port uint16, v uint16)
	inw(port uint16) uint16
	outl(port uint16, v uint32)
	inl(port uint16) uint32
}

// VirtualPorts is the host-side I/O port space. Devices are attached once at
// construction; unclaimed ports float high like an empty bus.
type VirtualPorts struct {
	mu   sync.Mutex
	devs []portDevice

	writes uint64
}

func NewVirtualPorts(devs ...portDevice) *VirtualPorts {
	return &VirtualPorts{devs: devs}
}

// Attach adds a device to the port space.
func (p *VirtualPorts) Attach(d portDevice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.devs = append(p.devs, d)
}

// WriteCount reports how many write transactions have been issued, across
// all devices. Useful to assert that a code path touched no register.
func (p *VirtualPorts) WriteCount() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

func (p *VirtualPorts) find(port uint16) portDevice {
	for _, d := range p.devs {
		if d.claims(port) {
			return d
		}
	}
	return nil
}

func (p *VirtualPorts) Outw(port uint16, v uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writes++
	if d := p.find(port); d != nil {
		d.outw(port, v)
	}
}

func (p *VirtualPorts) Inw(port uint16) uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if d := p.find(port); d != nil {
		return d.inw(port)
	}
	return 0xFFFF
}

func (p *VirtualPorts) Outl(port uint16, v uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writes++
	if d := p.find(port); d != nil {
		d.outl(port, v)
	}
}

func (p *VirtualPorts) Inl(port uint16) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if d := p.find(port); d != nil {
		return d.inl(port)
	}
	return 0xFFFFFFFF
}

// ---- virtual PCI configuration space ----

const (
	vpciAddrPort = 0x0CF8
	vpciDataPort = 0x0CFC
)

// VirtualPCIFunction describes one config-space function on the virtual bus.
type VirtualPCIFunction struct {
	VendorID   uint16
	DeviceID   uint16
	Class      uint8
	Subclass   uint8
	ProgIF     uint8
	Revision   uint8
	HeaderType uint8
	IntLine    uint8
	IntPin     uint8
	BARs       [6]uint32
}

// space renders the function as 16 little-endian config words.
func (f VirtualPCIFunction) space() [16]uint32 {
	var w [16]uint32
	w[0] = uint32(f.DeviceID)<<16 | uint32(f.VendorID)
	w[1] = 0 // status/command, starts cleared
	w[2] = uint32(f.Class)<<24 | uint32(f.Subclass)<<16 | uint32(f.ProgIF)<<8 | uint32(f.Revision)
	w[3] = uint32(f.HeaderType) << 16
	for i := 0; i < 6; i++ {
		w[4+i] = f.BARs[i]
	}
	w[15] = uint32(f.IntPin)<<8 | uint32(f.IntLine)
	return w
}

// VirtualPCI emulates the 0xCF8/0xCFC configuration mechanism over a set of
// functions. Absent functions read as all-ones.
type VirtualPCI struct {
	addr  uint32
	funcs map[uint16]*[16]uint32
}

func NewVirtualPCI() *VirtualPCI {
	return &VirtualPCI{funcs: make(map[uint16]*[16]uint32)}
}

func vpciKey(bus, slot, fn uint8) uint16 {
	return uint16(bus)<<8 | uint16(slot&0x1F)<<3 | uint16(fn&0x07)
}

// AddFunction places a function at bus/slot/fn.
func (p *VirtualPCI) AddFunction(bus, slot, fn uint8, f VirtualPCIFunction) {
	w := f.space()
	p.funcs[vpciKey(bus, slot, fn)] = &w
}

// Command returns the current command register of a function, for asserting
// enable-bit behavior.
func (p *VirtualPCI) Command(bus, slot, fn uint8) uint16 {
	if w, ok := p.funcs[vpciKey(bus, slot, fn)]; ok {
		return uint16(w[1])
	}
	return 0xFFFF
}

// SetCommand seeds the command register, preserving the status half.
func (p *VirtualPCI) SetCommand(bus, slot, fn uint8, cmd uint16) {
	if w, ok := p.funcs[vpciKey(bus, slot, fn)]; ok {
		w[1] = w[1]&0xFFFF0000 | uint32(cmd)
	}
}

func (p *VirtualPCI) claims(port uint16) bool {
	return port >= vpciAddrPort && port < vpciDataPort+4
}

func (p *VirtualPCI) decode() (*[16]uint32, int, bool) {
	if p.addr&0x80000000 == 0 {
		return nil, 0, false
	}
	bus := uint8(p.addr >> 16)
	slot := uint8(p.addr>>11) & 0x1F
	fn := uint8(p.addr>>8) & 0x07
	w, ok := p.funcs[vpciKey(bus, slot, fn)]
	if !ok {
		return nil, 0, false
	}
	return w, int(p.addr&0xFC) / 4, true
}

func (p *VirtualPCI) outl(port uint16, v uint32) {
	switch port {
	case vpciAddrPort:
		p.addr = v
	case vpciDataPort:
		if w, i, ok := p.decode(); ok {
			w[i] = v
		}
	}
}

func (p *VirtualPCI) inl(port uint16) uint32 {
	if port != vpciDataPort {
		return 0xFFFFFFFF
	}
	w, i, ok := p.decode()
	if !ok {
		return 0xFFFFFFFF
	}
	return w[i]
}

func (p *VirtualPCI) outw(port uint16, v uint16) { _ = port; _ = v }
func (p *VirtualPCI) inw(port uint16) uint16     { _ = port; return 0xFFFF }

// ---- virtual Bochs dispi adapter ----

const (
	vdispiIndexPort = 0x01CE
	vdispiDataPort  = 0x01CF

	vdispiRegID       = 0x0
	vdispiRegVideoMem = 0xA
)

// VirtualDispi emulates the index/data register file of the QEMU standard
// VGA adapter. The register contents are plain storage; SetMode sequencing
// is asserted by reading them back.
type VirtualDispi struct {
	index uint16
	regs  [16]uint16

	writes uint64
}

// NewVirtualDispi creates the register file. version selects the identity
// register value 0xB0C0+version; vramKB seeds the video memory register
// (64KB units).
func NewVirtualDispi(version uint16, vramKB uint32) *VirtualDispi {
	d := &VirtualDispi{}
	d.regs[vdispiRegID] = 0xB0C0 + version
	d.regs[vdispiRegVideoMem] = uint16(vramKB / 64)
	return d
}

// Reg returns a register by index.
func (d *VirtualDispi) Reg(index int) uint16 { return d.regs[index&0xF] }

// WriteCount reports data-register writes.
func (d *VirtualDispi) WriteCount() uint64 { return d.writes }

func (d *VirtualDispi) claims(port uint16) bool {
	return port == vdispiIndexPort || port == vdispiDataPort
}

func (d *VirtualDispi) outw(port uint16, v uint16) {
	switch port {
	case vdispiIndexPort:
		d.index = v
	case vdispiDataPort:
		if d.index != vdispiRegID {
			d.regs[d.index&0xF] = v
		}
		d.writes++
	}
}

func (d *VirtualDispi) inw(port uint16) uint16 {
	if port != vdispiDataPort {
		return 0xFFFF
	}
	return d.regs[d.index&0xF]
}

func (d *VirtualDispi) outl(port uint16, v uint32) { _ = port; _ = v }
func (d *VirtualDispi) inl(port uint16) uint32     { _ = port; return 0xFFFFFFFF }
