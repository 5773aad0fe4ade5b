// Package ui  Shortcuts for keyboard actions
package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const brightnessKeyStep = 0.1

func (a *App) buildKeyboardShortcuts() {
	// ctrl+q to quit application
	a.MainWin.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyQ,
		Modifier: a.mainModKey,
	}, func(_ fyne.Shortcut) { a.app.Quit() })

	a.MainWin.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyRight:
			a.controller.LoadNext()
		case fyne.KeyLeft:
			a.controller.LoadPrevious()
		case fyne.KeyP, fyne.KeySpace:
			a.controller.ToggleSlideshow()
		case fyne.KeyC:
			a.controller.ToggleControls()
		case fyne.KeyF:
			a.controls.toggleFavorite()
		case fyne.KeyUp:
			a.controller.SetBrightness(a.controller.Brightness() + brightnessKeyStep)
		case fyne.KeyDown:
			a.controller.SetBrightness(a.controller.Brightness() - brightnessKeyStep)
		case fyne.KeyQ:
			a.app.Quit()
		case fyne.KeyEscape:
			a.controller.HideControls()
		}
	})
}
