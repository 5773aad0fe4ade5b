// Package ui  Setup for the ArtFrame application
package ui

import (
	"flag"
	"log"
	"runtime"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"artframe/internal/config"
	"artframe/internal/favorites"
	"artframe/internal/provider"
	"artframe/internal/session"
	"artframe/internal/wakelock"
)

var (
	genreFlag    = flag.String("genre", config.GenreMountains.String(), "starting image genre")
	intervalFlag = flag.Float64("interval", 30, "slideshow interval in seconds")
	pausedFlag   = flag.Bool("paused", false, "start with the slideshow paused")
	dbDirFlag    = flag.String("dbdir", "", "directory for the favorites database")
)

// App represents the whole application with its window, widgets and the
// session controller driving them.
type App struct {
	app     fyne.App
	MainWin fyne.Window

	controller *session.Controller
	gestures   *session.Gestures
	favs       *favorites.DB

	display  *Display
	controls *Controls

	mainModKey fyne.KeyModifier
}

func (a *App) renderState(st session.State) {
	a.display.Render(st)
	a.controls.Refresh(st)
}

// CreateApplication wires the whole frame together and runs it.
func CreateApplication() {
	flag.Parse()

	fyneApp := app.NewWithID("io.github.artframe")
	fyneApp.Settings().SetTheme(NewFrameTheme(fyneApp.Settings().Theme()))

	ui := &App{app: fyneApp}
	if runtime.GOOS == "darwin" {
		ui.mainModKey = fyne.KeyModifierSuper
	} else {
		ui.mainModKey = fyne.KeyModifierControl
	}

	// Route everything through the activity log once the UI is up;
	// messages from initialization land on the console instead.
	appLoggerFunc := func(message string) {
		if ui.controls != nil && ui.controls.ActivityLog() != nil {
			fyne.Do(func() { ui.controls.ActivityLog().Add(message) })
		} else {
			log.Printf("EarlyLog: %s", message)
		}
	}

	var err error
	ui.favs, err = favorites.NewDB(*dbDirFlag, appLoggerFunc)
	if err != nil {
		log.Fatalf("Failed to initialize favorites database: %v", err)
	}

	cfg := config.Default()
	if genre, err := config.ParseGenre(*genreFlag); err == nil {
		cfg.Genre = genre
	} else {
		log.Printf("Ignoring %v, starting with %s", err, cfg.Genre)
	}
	cfg.Interval = time.Duration(*intervalFlag * float64(time.Second))
	cfg.Slideshow = !*pausedFlag
	cfg = cfg.Normalize()

	prov := provider.New(appLoggerFunc)
	loader := provider.NewLoader(nil, appLoggerFunc)

	ui.controller = session.NewController(cfg, prov, loader,
		session.WithLogger(appLoggerFunc),
		session.WithWakeLock(wakelock.New(appLoggerFunc)),
		session.WithOnState(func(st session.State) {
			fyne.Do(func() { ui.renderState(st) })
		}),
	)
	ui.gestures = session.NewGestures(session.GestureCallbacks{
		OnNext:           ui.controller.LoadNext,
		OnPrevious:       ui.controller.LoadPrevious,
		OnToggleControls: ui.controller.ToggleControls,
		Brightness:       ui.controller.Brightness,
		SetBrightness:    ui.controller.SetBrightness,
	})

	ui.MainWin = fyneApp.NewWindow("ArtFrame")
	ui.MainWin.SetCloseIntercept(func() {
		ui.controller.Stop()
		log.Println("Closing favorites database...")
		if err := ui.favs.Close(); err != nil {
			log.Printf("Error closing favorites database: %v", err)
		}
		ui.MainWin.Close()
	})

	ui.display = NewDisplay()
	ui.controls = NewControls(ui.controller, ui.favs)
	area := NewGestureArea(ui.display.Object(), ui.gestures)

	ui.MainWin.SetContent(container.NewStack(
		area,
		container.NewBorder(nil, ui.controls.Root(), nil, nil),
	))
	ui.buildKeyboardShortcuts()

	ui.MainWin.CenterOnScreen()
	ui.MainWin.SetFullScreen(true)

	ui.controller.Start()
	ui.MainWin.ShowAndRun()
}
