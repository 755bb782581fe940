package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPink
	ColorPeach
	ColorGold
)

// Palette is the ordered set of distinct colours games cycle through when
// they need one colour per label.
var Palette = []Color{
	ColorRed,
	ColorPeach,
	ColorOrange,
	ColorBrightRed,
	ColorGold,
	ColorBrightYellow,
	ColorGreen,
	ColorCyan,
	ColorBrightBlue,
	ColorMagenta,
	ColorPink,
	ColorBrightGreen,
}

// PaletteColor returns the palette colour for a 1-based label.
func PaletteColor(label int) Color {
	if label < 1 {
		return ColorDefault
	}
	return Palette[(label-1)%len(Palette)]
}
