package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// frameTheme wraps an existing theme with a pitch-black backdrop and
// tighter padding so the artwork, not the chrome, fills the screen.
type frameTheme struct {
	fyne.Theme
}

var _ fyne.Theme = (*frameTheme)(nil)

// Size overrides the default theme size for padding.
func (t *frameTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNamePadding {
		return 2.0
	}
	return t.Theme.Size(name)
}

func (t *frameTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNameBackground {
		return color.Black
	}
	return t.Theme.Color(name, theme.VariantDark)
}

func (t *frameTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.Theme.Font(style)
}

func (t *frameTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.Theme.Icon(name)
}

// NewFrameTheme wraps baseTheme for full-screen artwork display.
func NewFrameTheme(baseTheme fyne.Theme) fyne.Theme {
	return &frameTheme{Theme: baseTheme}
}
