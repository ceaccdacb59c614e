package main

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/stellaris-music/internal/config"
	"github.com/ytget/stellaris-music/internal/convert"
	"github.com/ytget/stellaris-music/internal/ui"
	"github.com/ytget/stellaris-music/internal/workflow"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.stellaris-music"
	AppName = "Stellaris Music Adder"
)

func main() {
	slog.Info("starting", slog.String("app", AppName), slog.String("version", version))

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	converter := convert.NewService(convert.WithFFmpegCommand(settings.GetFFmpegPath()))
	coordinator := workflow.NewCoordinator(converter,
		workflow.WithMaxParallel(settings.GetMaxParallelConversions()),
		workflow.WithFolders(settings.GetOutputDirectory(), settings.GetGameMusicDirectory()),
	)

	ui.NewRootUI(myWindow, settings, coordinator, converter)

	myWindow.ShowAndRun()
}
