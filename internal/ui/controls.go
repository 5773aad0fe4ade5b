package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"artframe/internal/config"
	"artframe/internal/favorites"
	"artframe/internal/session"
)

// Controls is the transient overlay: a button row for navigation and
// play/pause plus tabs for genres, filters and settings. Every control
// routes through the session controller; visibility is driven by the
// controller's state snapshots.
type Controls struct {
	controller *session.Controller
	favs       *favorites.DB
	activity   *ActivityLog

	root       *fyne.Container
	playBtn    *widget.Button
	favBtn     *widget.Button
	genreBtns  map[config.Genre]*widget.Button
	filterBtns map[config.FilterPreset]*widget.Button

	intervalSlider  *widget.Slider
	intervalLabel   *widget.Label
	widthSlider     *widget.Slider
	styleSelect     *widget.Select
	brightnessLabel *widget.Label

	// guards the sliders against echoing state refreshes back into the
	// controller
	updating bool
}

func NewControls(controller *session.Controller, favs *favorites.DB) *Controls {
	c := &Controls{
		controller: controller,
		favs:       favs,
		genreBtns:  make(map[config.Genre]*widget.Button),
		filterBtns: make(map[config.FilterPreset]*widget.Button),
	}

	tabs := container.NewAppTabs(
		container.NewTabItem("Genres", c.buildGenreGrid()),
		container.NewTabItem("Filters", c.buildFilterGrid()),
		container.NewTabItem("Settings", c.buildSettings()),
	)
	c.root = container.NewVBox(widget.NewSeparator(), c.buildButtonRow(), tabs)
	c.root.Hide()
	return c
}

// Root returns the overlay object, hidden until the first state arrives.
func (c *Controls) Root() fyne.CanvasObject {
	return c.root
}

// ActivityLog exposes the log sink built into the settings tab.
func (c *Controls) ActivityLog() *ActivityLog {
	return c.activity
}

func (c *Controls) buildButtonRow() *fyne.Container {
	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), c.controller.LoadPrevious)
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), c.controller.LoadNext)
	c.playBtn = widget.NewButtonWithIcon("", theme.MediaPauseIcon(), c.controller.ToggleSlideshow)
	c.favBtn = widget.NewButtonWithIcon("", theme.CheckButtonIcon(), c.toggleFavorite)
	hide := widget.NewButtonWithIcon("", theme.CancelIcon(), c.controller.HideControls)

	return container.NewHBox(prev, next, c.playBtn, c.favBtn, layout.NewSpacer(), hide)
}

func (c *Controls) buildGenreGrid() fyne.CanvasObject {
	buttons := make([]fyne.CanvasObject, 0, len(config.Genres))
	for _, g := range config.Genres {
		genre := g
		btn := widget.NewButton(genre.String(), func() {
			c.controller.SetGenre(genre)
		})
		c.genreBtns[genre] = btn
		buttons = append(buttons, btn)
	}
	return container.NewGridWithColumns(4, buttons...)
}

func (c *Controls) buildFilterGrid() fyne.CanvasObject {
	buttons := make([]fyne.CanvasObject, 0, len(config.FilterPresets))
	for _, f := range config.FilterPresets {
		preset := f
		btn := widget.NewButton(preset.String(), func() {
			c.controller.SetFilterPreset(preset)
		})
		c.filterBtns[preset] = btn
		buttons = append(buttons, btn)
	}
	return container.NewGridWithColumns(5, buttons...)
}

func (c *Controls) buildSettings() fyne.CanvasObject {
	c.intervalLabel = widget.NewLabel("Interval: 30s")
	c.intervalSlider = widget.NewSlider(5, 300)
	c.intervalSlider.Step = 5
	c.intervalSlider.OnChanged = func(v float64) {
		if c.updating {
			return
		}
		c.controller.SetInterval(time.Duration(v) * time.Second)
	}

	c.widthSlider = widget.NewSlider(0, config.MaxFrameWidth)
	c.widthSlider.Step = 4
	c.widthSlider.OnChanged = func(v float64) {
		if c.updating {
			return
		}
		c.controller.SetFrameWidth(float32(v))
	}

	styleNames := make([]string, 0, len(config.FrameStyles))
	for _, fs := range config.FrameStyles {
		styleNames = append(styleNames, fs.String())
	}
	c.styleSelect = widget.NewSelect(styleNames, func(name string) {
		if c.updating {
			return
		}
		if fs, err := config.ParseFrameStyle(name); err == nil {
			c.controller.SetFrameStyle(fs)
		}
	})

	c.brightnessLabel = widget.NewLabel("Brightness: 100%")

	logLabel := widget.NewLabel("")
	logLabel.Truncation = fyne.TextTruncateEllipsis
	upBtn := widget.NewButtonWithIcon("", theme.MoveUpIcon(), nil)
	downBtn := widget.NewButtonWithIcon("", theme.MoveDownIcon(), nil)
	c.activity = NewActivityLog(logLabel, upBtn, downBtn, DefaultMaxLogMessages)
	upBtn.OnTapped = c.activity.ShowPrevious
	downBtn.OnTapped = c.activity.ShowNext

	return container.NewVBox(
		c.intervalLabel,
		c.intervalSlider,
		widget.NewLabel("Frame width"),
		c.widthSlider,
		container.NewHBox(widget.NewLabel("Frame style"), c.styleSelect, layout.NewSpacer(), c.brightnessLabel),
		container.NewBorder(nil, nil, nil, container.NewHBox(upBtn, downBtn), logLabel),
	)
}

func (c *Controls) toggleFavorite() {
	if c.favs == nil {
		return
	}
	pic := c.controller.Current()
	if pic == nil {
		return
	}
	fav, err := c.favs.IsFavorite(pic.Ref.URL)
	if err != nil {
		return
	}
	if fav {
		err = c.favs.Remove(pic.Ref.URL)
	} else {
		err = c.favs.Add(pic.Ref)
	}
	if err == nil {
		c.refreshFavorite(pic.Ref.URL)
	}
}

func (c *Controls) refreshFavorite(url string) {
	if c.favs == nil || url == "" {
		c.favBtn.SetIcon(theme.CheckButtonIcon())
		return
	}
	if fav, err := c.favs.IsFavorite(url); err == nil && fav {
		c.favBtn.SetIcon(theme.CheckButtonCheckedIcon())
	} else {
		c.favBtn.SetIcon(theme.CheckButtonIcon())
	}
}

// Refresh mirrors a state snapshot into the widgets. Must run on the UI
// thread.
func (c *Controls) Refresh(st session.State) {
	c.updating = true
	defer func() { c.updating = false }()

	if st.Config.Slideshow {
		c.playBtn.SetIcon(theme.MediaPauseIcon())
	} else {
		c.playBtn.SetIcon(theme.MediaPlayIcon())
	}

	for g, btn := range c.genreBtns {
		if g == st.Config.Genre {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
	for f, btn := range c.filterBtns {
		if f == st.Config.FilterPreset {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}

	secs := st.Config.Interval.Seconds()
	c.intervalLabel.SetText(fmt.Sprintf("Interval: %.0fs", secs))
	if c.intervalSlider.Value != secs {
		c.intervalSlider.SetValue(secs)
	}
	if c.widthSlider.Value != float64(st.Config.FrameWidth) {
		c.widthSlider.SetValue(float64(st.Config.FrameWidth))
	}
	if c.styleSelect.Selected != st.Config.FrameStyle.String() {
		c.styleSelect.SetSelected(st.Config.FrameStyle.String())
	}
	c.brightnessLabel.SetText(fmt.Sprintf("Brightness: %.0f%%", st.Config.Brightness*100))

	if st.Picture != nil {
		c.refreshFavorite(st.Picture.Ref.URL)
	} else {
		c.refreshFavorite("")
	}

	if st.ControlsVisible {
		c.root.Show()
	} else {
		c.root.Hide()
	}
}
