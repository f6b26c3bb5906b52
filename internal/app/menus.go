package app

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"zukus-desktop/internal/config"
)

func (a *Application) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Quit", func() {
			a.fyneApp.Quit()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("About "+config.AppName, a.aboutText(), a.window)
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

func (a *Application) aboutText() string {
	return fmt.Sprintf("%s %s\nBackend commands exposed: %d", config.AppName, a.version, a.registry.Len())
}
