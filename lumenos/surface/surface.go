// Package surface is the format-aware pixel model shared by the back buffer,
// the device front buffer, and anything else that looks like a linear pixel
// buffer. Accesses are bounds-checked and silently dropped out of range;
// that is the contract, not an error path.
package surface

import "encoding/binary"

// Supported encodings by bits per pixel.
const (
	BPP16 = 16 // RGB565
	BPP24 = 24 // RGB888, B,G,R byte order
	BPP32 = 32 // XRGB8888
)

// Surface describes a linear pixel buffer. Pitch is bytes per row and may
// exceed W times the pixel size.
type Surface struct {
	Buf   []byte
	W     int
	H     int
	Pitch int
	BPP   int
}

// New allocates a process-owned surface with a tight pitch, zeroed.
func New(w, h, bpp int) Surface {
	pitch := w * bpp / 8
	return Surface{
		Buf:   make([]byte, pitch*h),
		W:     w,
		H:     h,
		Pitch: pitch,
		BPP:   bpp,
	}
}

// FromBuffer wraps an existing buffer, typically a device aperture.
func FromBuffer(buf []byte, w, h, pitch, bpp int) Surface {
	return Surface{Buf: buf, W: w, H: h, Pitch: pitch, BPP: bpp}
}

// Size reports the logical pixel dimensions.
func (s *Surface) Size() (int, int) { return s.W, s.H }

// Set stores a pixel, down-converting for 16/24bpp targets. Out-of-range
// coordinates are a no-op.
func (s *Surface) Set(x, y int, c Color) {
	if x < 0 || x >= s.W || y < 0 || y >= s.H {
		return
	}
	row := s.Buf[y*s.Pitch:]
	switch s.BPP {
	case BPP32:
		binary.LittleEndian.PutUint32(row[x*4:], uint32(c))
	case BPP24:
		o := x * 3
		row[o+0] = c.B()
		row[o+1] = c.G()
		row[o+2] = c.R()
	case BPP16:
		r5 := uint16(c.R()>>3) & 0x1F
		g6 := uint16(c.G()>>2) & 0x3F
		b5 := uint16(c.B()>>3) & 0x1F
		binary.LittleEndian.PutUint16(row[x*2:], r5<<11|g6<<5|b5)
	}
}

// At loads a pixel, up-converting for 16bpp by left shift; the 16bpp round
// trip loses the low channel bits. Out-of-range coordinates read as 0.
func (s *Surface) At(x, y int) Color {
	if x < 0 || x >= s.W || y < 0 || y >= s.H {
		return 0
	}
	row := s.Buf[y*s.Pitch:]
	switch s.BPP {
	case BPP32:
		return Color(binary.LittleEndian.Uint32(row[x*4:]))
	case BPP24:
		o := x * 3
		return RGB(row[o+2], row[o+1], row[o+0])
	case BPP16:
		v := binary.LittleEndian.Uint16(row[x*2:])
		return RGB(uint8((v>>11)&0x1F)<<3, uint8((v>>5)&0x3F)<<2, uint8(v&0x1F)<<3)
	}
	return 0
}

// SetAlpha composites c onto the existing pixel by its alpha channel. Full
// alpha bypasses the blend, zero alpha bypasses even the read.
func (s *Surface) SetAlpha(x, y int, c Color) {
	a := c.A()
	if a == 0 {
		return
	}
	if a == 255 {
		s.Set(x, y, c)
		return
	}
	s.Set(x, y, Blend(c, s.At(x, y), a))
}

// Fill stores c in every pixel, with a word-fill fast path for 32bpp.
func (s *Surface) Fill(c Color) {
	if s.BPP == BPP32 && s.Pitch == s.W*4 {
		for x := 0; x < s.W; x++ {
			binary.LittleEndian.PutUint32(s.Buf[x*4:], uint32(c))
		}
		row := s.Buf[:s.W*4]
		for y := 1; y < s.H; y++ {
			copy(s.Buf[y*s.Pitch:], row)
		}
		return
	}
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			s.Set(x, y, c)
		}
	}
}
