// Package ui provides the LoadTwin viewer UI components.
//
// This file defines a custom compact Fyne theme for a dense dashboard layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// LoadTwinTheme wraps the default Fyne theme with compact sizing overrides
// and a fixed light/dark variant chosen in the settings.
type LoadTwinTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool // follow the variant requested by the OS
}

// NewLoadTwinTheme creates a theme that follows the system variant.
func NewLoadTwinTheme() *LoadTwinTheme {
	return &LoadTwinTheme{
		base:   theme.DefaultTheme(),
		system: true,
	}
}

// NewLoadTwinThemeFromName maps a config theme name ("light", "dark",
// "system") to a theme.
func NewLoadTwinThemeFromName(name string) *LoadTwinTheme {
	t := NewLoadTwinTheme()
	t.SetName(name)
	return t
}

// SetName updates the theme variant from a config theme name. Unknown
// names follow the system.
func (t *LoadTwinTheme) SetName(name string) {
	switch name {
	case "light":
		t.variant, t.system = theme.VariantLight, false
	case "dark":
		t.variant, t.system = theme.VariantDark, false
	default:
		t.system = true
	}
}

// Color delegates to the base theme with the stored variant.
func (t *LoadTwinTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.system {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *LoadTwinTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *LoadTwinTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense dashboard layout.
func (t *LoadTwinTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
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
