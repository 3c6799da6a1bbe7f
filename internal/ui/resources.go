package ui

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

const (
	AppIcon = "source-editor.svg"
)

//go:embed assets/icon.svg
var appIconSVG []byte

// LogoResource is the embedded application icon
var LogoResource = fyne.NewStaticResource(AppIcon, appIconSVG)

// LoadLogoResource returns the application icon
func LoadLogoResource() fyne.Resource {
	return LogoResource
}
