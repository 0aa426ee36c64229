//go:build !tinygo

package hal

import "sync"

type vregion struct {
	base uint32
	buf  []byte
}

// VirtualMemory is the host-side physical address space: a fixed set of
// apertures created up front, no allocation afterwards.
type VirtualMemory struct {
	mu      sync.Mutex
	regions []vregion
}

func NewVirtualMemory() *VirtualMemory {
	return &VirtualMemory{}
}

// AddAperture reserves size bytes at base and returns the backing slice.
func (m *VirtualMemory) AddAperture(base uint32, size int) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, size)
	m.regions = append(m.regions, vregion{base: base, buf: buf})
	return buf
}

// Map returns the slice covering [addr, addr+size). The range must lie
// entirely within one aperture.
func (m *VirtualMemory) Map(addr uint32, size int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.regions {
		if addr < r.base {
			continue
		}
		off := int(addr - r.base)
		if off+size <= len(r.buf) {
			return r.buf[off : off+size : off+size], nil
		}
	}
	return nil, ErrUnmapped
}
