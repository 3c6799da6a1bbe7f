package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/source-editor/internal/config"
	"github.com/ytget/source-editor/internal/links"
	"github.com/ytget/source-editor/internal/logging"
	"github.com/ytget/source-editor/internal/repository"
	"github.com/ytget/source-editor/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.source-editor"
	AppName = "Source Editor"
)

func main() {
	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.SetIcon(ui.LoadLogoResource())

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewEditorTheme())

	settings := config.NewSettings(myApp)
	logger := logging.NewStderr(settings.GetLogLevel())
	logger.Info("starting", "app", AppName, "version", version)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Initialize services
	session := repository.NewSession(
		repository.WithClipboard(ui.FyneClipboard(myApp)),
		repository.WithLogger(logger),
	)
	manager := links.NewManager(settings.LinkStore())

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, session, manager, logger)

	// Show and run
	myWindow.ShowAndRun()
}
