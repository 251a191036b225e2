package core

// Color is a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the terminal layer.
type Color uint8

// Palette for board elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorGray
	ColorOrange
)

// Semantic aliases used by board renderers.
const (
	ColorWall    = ColorGray
	ColorHunter  = ColorRed
	ColorPrey    = ColorCyan
	ColorSight   = ColorYellow
	ColorHUD     = ColorDefault
	ColorCapture = ColorMagenta
)
