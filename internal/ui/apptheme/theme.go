// Package apptheme forces a light or dark variant when the user picks an
// explicit theme instead of "auto".
package apptheme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"tomatick/internal/core/model"
)

type forcedVariant struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// Apply sets the app theme for the given settings value. "auto" keeps the
// system-driven default.
func Apply(app fyne.App, themeName string) {
	switch themeName {
	case model.ThemeLight:
		app.Settings().SetTheme(&forcedVariant{base: theme.DefaultTheme(), variant: theme.VariantLight})
	case model.ThemeDark:
		app.Settings().SetTheme(&forcedVariant{base: theme.DefaultTheme(), variant: theme.VariantDark})
	default:
		app.Settings().SetTheme(theme.DefaultTheme())
	}
}

func (forced *forcedVariant) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return forced.base.Color(name, forced.variant)
}

func (forced *forcedVariant) Font(style fyne.TextStyle) fyne.Resource {
	return forced.base.Font(style)
}

func (forced *forcedVariant) Icon(name fyne.ThemeIconName) fyne.Resource {
	return forced.base.Icon(name)
}

func (forced *forcedVariant) Size(name fyne.ThemeSizeName) float32 {
	return forced.base.Size(name)
}
