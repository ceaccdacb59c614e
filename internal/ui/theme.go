package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/stellaris-music/internal/model"
)

// spaceTheme tightens the default theme and tints it for the game
type spaceTheme struct {
	fyne.Theme
}

// NewCompactTheme creates the application theme
func NewCompactTheme() fyne.Theme {
	return &spaceTheme{Theme: theme.DefaultTheme()}
}

// Color returns theme colors
func (t *spaceTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.RGBA{R: 0, G: 150, B: 136, A: 255}
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 12, G: 16, B: 30, A: 255}
		}
	}
	return t.Theme.Color(name, variant)
}

// Size returns theme sizes with compact adjustments
func (t *spaceTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameText:
		return 13
	}
	return t.Theme.Size(name)
}

// statusColorName maps a conversion status to the theme color used for its label
func statusColorName(status model.TaskStatus) fyne.ThemeColorName {
	switch status {
	case model.TaskStatusCompleted:
		return theme.ColorNameSuccess
	case model.TaskStatusError:
		return theme.ColorNameError
	case model.TaskStatusConverting:
		return theme.ColorNamePrimary
	default:
		return theme.ColorNameForeground
	}
}

// statusIcon returns the short marker shown next to a track
func statusIcon(status model.TaskStatus) string {
	switch status {
	case model.TaskStatusCompleted:
		return IconDone
	case model.TaskStatusError:
		return IconError
	case model.TaskStatusConverting:
		return IconWorking
	default:
		return IconMusic
	}
}
