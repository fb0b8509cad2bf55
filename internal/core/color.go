package core

// Color is a logical foreground color for a screen cell. The platform layer
// maps it to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// Scene element colors.
const (
	ColorBlock     = ColorCyan
	ColorHome      = ColorBrightYellow
	ColorGuide     = ColorGray
	ColorShadow    = ColorMagenta
	ColorOverlay   = ColorGreen
	ColorHighlight = ColorOrange
)
