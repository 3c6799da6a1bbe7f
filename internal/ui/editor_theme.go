package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/source-editor/internal/model"
)

// ColorNameLogInfo colors informational activity log entries
const ColorNameLogInfo fyne.ThemeColorName = "logInfo"

// palette holds the colors that differ from the default theme for one variant
type palette map[fyne.ThemeColorName]color.Color

var (
	brandBlue = color.NRGBA{R: 0x19, G: 0x76, B: 0xd2, A: 0xff}

	lightPalette = palette{
		theme.ColorNamePrimary:    brandBlue,
		theme.ColorNameHyperlink:  color.NRGBA{R: 0x15, G: 0x65, B: 0xc0, A: 0xff},
		theme.ColorNameSuccess:    color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff},
		theme.ColorNameWarning:    color.NRGBA{R: 0xb2, G: 0x6a, B: 0x00, A: 0xff}, // amber is unreadable on white
		theme.ColorNameError:      color.NRGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff},
		theme.ColorNameBackground: color.NRGBA{R: 0xf7, G: 0xf8, B: 0xfa, A: 0xff},
		theme.ColorNameForeground: color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff},
		ColorNameLogInfo:          color.NRGBA{R: 0x54, G: 0x6e, B: 0x7a, A: 0xff},
	}

	darkPalette = palette{
		theme.ColorNamePrimary:    brandBlue,
		theme.ColorNameHyperlink:  color.NRGBA{R: 0x64, G: 0xb5, B: 0xf6, A: 0xff},
		theme.ColorNameSuccess:    color.NRGBA{R: 0x66, G: 0xbb, B: 0x6a, A: 0xff},
		theme.ColorNameWarning:    color.NRGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff},
		theme.ColorNameError:      color.NRGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff},
		theme.ColorNameBackground: color.NRGBA{R: 0x16, G: 0x18, B: 0x1c, A: 0xff},
		theme.ColorNameForeground: color.NRGBA{R: 0xec, G: 0xef, B: 0xf1, A: 0xff},
		ColorNameLogInfo:          color.NRGBA{R: 0x90, G: 0xa4, B: 0xae, A: 0xff},
	}
)

// editorSizes tightens spacing so long app lists and the activity log fit
// without scrolling. Text sizes stay at the defaults.
var editorSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:         3,
	theme.SizeNameInnerPadding:    6,
	theme.SizeNameLineSpacing:     2,
	theme.SizeNameScrollBar:       10,
	theme.SizeNameInputRadius:     4,
	theme.SizeNameSelectionRadius: 2,
	theme.SizeNameCaptionText:     11,
}

// EditorTheme is the application theme: the default theme with the editor's
// palette, dense spacing and severity colors for the activity log.
type EditorTheme struct{}

// NewEditorTheme creates the application theme
func NewEditorTheme() fyne.Theme {
	return &EditorTheme{}
}

// Color returns the palette color for name, falling back to the default theme
func (t *EditorTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	p := lightPalette
	if variant == theme.VariantDark {
		p = darkPalette
	}
	if c, ok := p[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (t *EditorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *EditorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns the dense spacing values
func (t *EditorTheme) Size(name fyne.ThemeSizeName) float32 {
	if size, ok := editorSizes[name]; ok {
		return size
	}
	return theme.DefaultTheme().Size(name)
}

// SeverityColorName maps an activity log severity to the theme color used to
// render it
func SeverityColorName(severity model.Severity) fyne.ThemeColorName {
	switch severity {
	case model.SeveritySuccess:
		return theme.ColorNameSuccess
	case model.SeverityWarning:
		return theme.ColorNameWarning
	case model.SeverityError:
		return theme.ColorNameError
	default:
		return ColorNameLogInfo
	}
}
