package surface

// Color is a packed ARGB value. Drawing code passes these around by value;
// surfaces down-convert on store when the target is not 32bpp.
type Color uint32

// RGB packs an opaque-channel-free color (alpha 0, like a raw pixel value).
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGBA packs a color with an explicit alpha channel.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }
func (c Color) A() uint8 { return uint8(c >> 24) }

// Blend composites fg over bg with straight alpha: each channel is
// (fg*a + bg*(255-a))/255. The result carries no alpha channel.
func Blend(fg, bg Color, alpha uint8) Color {
	a := uint32(alpha)
	inv := 255 - a
	r := (uint32(fg.R())*a + uint32(bg.R())*inv) / 255
	g := (uint32(fg.G())*a + uint32(bg.G())*inv) / 255
	b := (uint32(fg.B())*a + uint32(bg.B())*inv) / 255
	return RGB(uint8(r), uint8(g), uint8(b))
}

// Lerp interpolates from c1 (t=0) to c2 (t=255).
func Lerp(c1, c2 Color, t uint8) Color {
	tt := uint32(t)
	inv := 255 - tt
	r := (uint32(c1.R())*inv + uint32(c2.R())*tt) / 255
	g := (uint32(c1.G())*inv + uint32(c2.G())*tt) / 255
	b := (uint32(c1.B())*inv + uint32(c2.B())*tt) / 255
	return RGB(uint8(r), uint8(g), uint8(b))
}

// Darken subtracts amount from each channel, clamping at zero.
func Darken(c Color, amount uint8) Color {
	return RGB(subClamp(c.R(), amount), subClamp(c.G(), amount), subClamp(c.B(), amount))
}

// Lighten adds amount to each channel, clamping at 255.
func Lighten(c Color, amount uint8) Color {
	return RGB(addClamp(c.R(), amount), addClamp(c.G(), amount), addClamp(c.B(), amount))
}

func subClamp(v, d uint8) uint8 {
	if v < d {
		return 0
	}
	return v - d
}

func addClamp(v, d uint8) uint8 {
	if int(v)+int(d) > 255 {
		return 255
	}
	return v + d
}

// FromHSV converts h in degrees (any sign), s and v in 0..255, using the
// standard six-region decomposition in integer arithmetic.
func FromHSV(h int, s, v uint8) Color {
	if s == 0 {
		return RGB(v, v, v)
	}

	h %= 360
	if h < 0 {
		h += 360
	}
	region := h / 60
	remainder := (h - region*60) * 255 / 60

	p := uint8((int(v) * (255 - int(s))) / 255)
	q := uint8((int(v) * (255 - (int(s)*remainder)/255)) / 255)
	t := uint8((int(v) * (255 - (int(s)*(255-remainder))/255)) / 255)

	switch region {
	case 0:
		return RGB(v, t, p)
	case 1:
		return RGB(q, v, p)
	case 2:
		return RGB(p, v, t)
	case 3:
		return RGB(p, q, v)
	case 4:
		return RGB(t, p, v)
	default:
		return RGB(v, p, q)
	}
}

// Common palette.
var (
	Black     = RGB(0, 0, 0)
	White     = RGB(255, 255, 255)
	Red       = RGB(255, 0, 0)
	Green     = RGB(0, 255, 0)
	Blue      = RGB(0, 0, 255)
	Yellow    = RGB(255, 255, 0)
	Cyan      = RGB(0, 255, 255)
	Magenta   = RGB(255, 0, 255)
	Orange    = RGB(255, 165, 0)
	Purple    = RGB(128, 0, 128)
	Pink      = RGB(255, 192, 203)
	Gray      = RGB(128, 128, 128)
	DarkGray  = RGB(64, 64, 64)
	LightGray = RGB(192, 192, 192)

	NeonPink   = RGB(255, 16, 240)
	NeonBlue   = RGB(0, 255, 255)
	NeonGreen  = RGB(57, 255, 20)
	NeonPurple = RGB(191, 0, 255)
	DarkBG     = RGB(10, 10, 25)
)
