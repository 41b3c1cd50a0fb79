package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PrintQuoteTheme wraps the default Fyne theme with compact sizing overrides.
type PrintQuoteTheme struct {
	base fyne.Theme
}

// NewPrintQuoteTheme creates a PrintQuoteTheme following the system
// light/dark variant.
func NewPrintQuoteTheme() *PrintQuoteTheme {
	return &PrintQuoteTheme{base: theme.DefaultTheme()}
}

// Color delegates to the base theme.
func (t *PrintQuoteTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *PrintQuoteTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *PrintQuoteTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense form layout.
func (t *PrintQuoteTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 16
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
