package hal

import (
	"encoding/binary"
	"errors"
)

// The bootstrap stage leaves a 28-byte handoff record at a fixed physical
// address before jumping to the main image. The layout is a wire contract
// shared with the assembly bootloader and must match it bit for bit.
const (
	BootRecordBytes = 28

	// BootMagic is "LUM1" in little-endian byte order.
	BootMagic = 0x314D554C

	// BootRecordAddr is the physical address of the record.
	BootRecordAddr = 0x00007E00

	// FBTypeRGB is the only pixel layout tag the bootloader negotiates.
	FBTypeRGB = 1
)

var ErrBadBootRecord = errors.New("invalid boot handoff record")

// BootRecord is the decoded boot-time handoff record.
type BootRecord struct {
	Magic         uint32
	BootDrive     uint8
	KernelPhys    uint32
	KernelSectors uint32
	FBAddr        uint32
	FBPitch       uint16
	FBWidth       uint16
	FBHeight      uint16
	FBBpp         uint8
	FBType        uint8
}

// DecodeBootRecord parses the raw record bytes. It does not validate the
// contents; call Validate before trusting the framebuffer fields.
func DecodeBootRecord(b []byte) (BootRecord, error) {
	if len(b) < BootRecordBytes {
		return BootRecord{}, ErrBadBootRecord
	}
	var r BootRecord
	r.Magic = binary.LittleEndian.Uint32(b[0:])
	r.BootDrive = b[4]
	// bytes 5..7 are padding
	r.KernelPhys = binary.LittleEndian.Uint32(b[8:])
	r.KernelSectors = binary.LittleEndian.Uint32(b[12:])
	r.FBAddr = binary.LittleEndian.Uint32(b[16:])
	r.FBPitch = binary.LittleEndian.Uint16(b[20:])
	r.FBWidth = binary.LittleEndian.Uint16(b[22:])
	r.FBHeight = binary.LittleEndian.Uint16(b[24:])
	r.FBBpp = b[26]
	r.FBType = b[27]
	return r, nil
}

// Encode writes the record into b, which must hold BootRecordBytes.
func (r BootRecord) Encode(b []byte) error {
	if len(b) < BootRecordBytes {
		return ErrBadBootRecord
	}
	binary.LittleEndian.PutUint32(b[0:], r.Magic)
	b[4] = r.BootDrive
	b[5], b[6], b[7] = 0, 0, 0
	binary.LittleEndian.PutUint32(b[8:], r.KernelPhys)
	binary.LittleEndian.PutUint32(b[12:], r.KernelSectors)
	binary.LittleEndian.PutUint32(b[16:], r.FBAddr)
	binary.LittleEndian.PutUint16(b[20:], r.FBPitch)
	binary.LittleEndian.PutUint16(b[22:], r.FBWidth)
	binary.LittleEndian.PutUint16(b[24:], r.FBHeight)
	b[26] = r.FBBpp
	b[27] = r.FBType
	return nil
}

// Validate rejects records without a usable framebuffer. A zero address or
// geometry is unrecoverable: there is nothing to render into.
func (r BootRecord) Validate() error {
	if r.Magic != BootMagic {
		return ErrBadBootRecord
	}
	if r.FBAddr == 0 || r.FBWidth == 0 || r.FBHeight == 0 {
		return ErrBadBootRecord
	}
	switch r.FBBpp {
	case 16, 24, 32:
	default:
		return ErrBadBootRecord
	}
	return nil
}
