//go:build tinygo

package hal

// Port and aperture access need target-specific assembly that no current
// TinyGo target provides for this machine class; everything is stubbed the
// same way unported peripherals are.

type stubPorts struct{}

func (stubPorts) Outw(port uint16, v uint16) { _ = port; _ = v }
func (stubPorts) Inw(port uint16) uint16     { _ = port; return 0xFFFF }
func (stubPorts) Outl(port uint16, v uint32) { _ = port; _ = v }
func (stubPorts) Inl(port uint16) uint32     { _ = port; return 0xFFFFFFFF }

type stubMemory struct{}

func (stubMemory) Map(addr uint32, size int) ([]byte, error) {
	_ = addr
	_ = size
	return nil, ErrNotImplemented
}

type stubTime struct{}

func (stubTime) Ticks() <-chan uint64 { return nil }

type nullLogger struct{}

func (nullLogger) WriteLineString(s string) { _ = s }
func (nullLogger) WriteLineBytes(b []byte)  { _ = b }

type stubHAL struct{}

// New returns the baremetal stub HAL.
func New() HAL { return stubHAL{} }

func (stubHAL) Logger() Logger { return nullLogger{} }
func (stubHAL) Ports() Ports   { return stubPorts{} }
func (stubHAL) Memory() Memory { return stubMemory{} }
func (stubHAL) Time() Time     { return stubTime{} }

func (stubHAL) BootRecord() ([]byte, error) { return nil, ErrNotImplemented }

func (stubHAL) Halt() {
	for {
	}
}
