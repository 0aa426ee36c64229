package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ErrUnmapped is returned when a physical address range has no backing aperture.
var ErrUnmapped = errors.New("address range not mapped")

// Ports issues word-sized transactions on the legacy I/O port space.
//
// Reads from unclaimed ports float high (0xFFFF / 0xFFFFFFFF), matching
// how an empty bus behaves.
type Ports interface {
	Outw(port uint16, v uint16)
	Inw(port uint16) uint16
	Outl(port uint16, v uint32)
	Inl(port uint16) uint32
}

// Memory maps physical address ranges to byte slices (device apertures).
type Memory interface {
	Map(addr uint32, size int) ([]byte, error)
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; frame pacing lives above the HAL.
type Time interface {
	Ticks() <-chan uint64
}

// HAL is the only contact point between the graphics stack and the hardware.
type HAL interface {
	Logger() Logger
	Ports() Ports
	Memory() Memory

	// BootRecord returns the raw boot-time handoff record as laid down by
	// the bootstrap stage. The layout is decoded by DecodeBootRecord.
	BootRecord() ([]byte, error)

	Time() Time

	// Halt stops forward progress. There is no supervisor to report to;
	// this never returns.
	Halt()
}
