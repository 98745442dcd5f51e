package core

// Color represents a foreground color for a screen cell or canvas primitive.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorGray
)

// RGB returns the 24-bit value used by raster hosts.
func (c Color) RGB() (r, g, b uint8) {
	switch c {
	case ColorBlack:
		return 0x00, 0x00, 0x00
	case ColorRed:
		return 0xaa, 0x00, 0x00
	case ColorGreen:
		return 0x00, 0xaa, 0x00
	case ColorYellow:
		return 0xaa, 0xaa, 0x00
	case ColorCyan:
		return 0x00, 0xaa, 0xaa
	case ColorWhite:
		return 0xcc, 0xcc, 0xcc
	case ColorBrightRed:
		return 0xff, 0x00, 0x00
	case ColorBrightGreen:
		return 0x00, 0xff, 0x00
	case ColorBrightYellow:
		return 0xff, 0xff, 0x00
	case ColorBrightCyan:
		return 0x00, 0xff, 0xff
	case ColorGray:
		return 0x80, 0x80, 0x80
	default:
		return 0xff, 0xff, 0xff
	}
}
