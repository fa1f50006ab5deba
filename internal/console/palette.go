package console

import (
	"github.com/fatih/color"
)

// ColorName identifies a named terminal color.
type ColorName string

// Supported color names.
const (
	ColorBlue    ColorName = ColorName("blue")
	ColorRed     ColorName = ColorName("red")
	ColorYellow  ColorName = ColorName("yellow")
	ColorCyan    ColorName = ColorName("cyan")
	ColorGreen   ColorName = ColorName("green")
	ColorMagenta ColorName = ColorName("magenta")
	ColorWhite   ColorName = ColorName("white")
	ColorGray    ColorName = ColorName("gray")
)

var colorAttributeMapping = map[ColorName]color.Attribute{
	ColorBlue:    color.FgBlue,
	ColorRed:     color.FgRed,
	ColorYellow:  color.FgYellow,
	ColorCyan:    color.FgCyan,
	ColorGreen:   color.FgGreen,
	ColorMagenta: color.FgMagenta,
	ColorWhite:   color.FgWhite,
	ColorGray:    color.FgHiBlack,
}

// Palette applies ANSI styles to text. A disabled palette returns text unchanged.
type Palette struct {
	enabled bool
}

// NewPalette constructs a palette with styling explicitly enabled or disabled.
func NewPalette(enabled bool) Palette {
	return Palette{enabled: enabled}
}

// DetectPalette enables styling when standard output is a color-capable terminal and NO_COLOR is unset.
func DetectPalette() Palette {
	return NewPalette(!color.NoColor)
}

// Enabled reports whether the palette emits escape sequences.
func (palette Palette) Enabled() bool {
	return palette.enabled
}

// KnownColor reports whether the color name is supported.
func KnownColor(name ColorName) bool {
	_, known := colorAttributeMapping[name]
	return known
}

// Paint renders text in the named color. Unknown names fall back to white.
func (palette Palette) Paint(name ColorName, text string) string {
	attribute, known := colorAttributeMapping[name]
	if !known {
		attribute = color.FgWhite
	}
	return palette.render(text, attribute)
}

// Dim renders text with reduced intensity.
func (palette Palette) Dim(text string) string {
	return palette.render(text, color.Faint)
}

func (palette Palette) render(text string, attributes ...color.Attribute) string {
	styled := color.New(attributes...)
	if palette.enabled {
		styled.EnableColor()
	} else {
		styled.DisableColor()
	}
	return styled.Sprint(text)
}
