// Package config holds the display settings for the art frame: the image
// genre, the slideshow timing, and the cosmetic frame/filter presets.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Genre is a stock-landscape image category. Its slug parameterizes the
// image host query.
type Genre int

const (
	GenreMountains Genre = iota
	GenreForest
	GenreCoast
	GenreDesert
	GenreLakes
	GenreAurora
	GenreCanyon
	GenreMeadow
)

// Genres lists every selectable genre in display order.
var Genres = []Genre{
	GenreMountains, GenreForest, GenreCoast, GenreDesert,
	GenreLakes, GenreAurora, GenreCanyon, GenreMeadow,
}

var genreNames = map[Genre]string{
	GenreMountains: "Mountains",
	GenreForest:    "Forest",
	GenreCoast:     "Coast",
	GenreDesert:    "Desert",
	GenreLakes:     "Lakes",
	GenreAurora:    "Aurora",
	GenreCanyon:    "Canyon",
	GenreMeadow:    "Meadow",
}

func (g Genre) String() string {
	if name, ok := genreNames[g]; ok {
		return name
	}
	return "Mountains"
}

// Slug returns the lowercase form used in image URLs.
func (g Genre) Slug() string {
	return strings.ToLower(g.String())
}

// ParseGenre resolves a genre by name or slug.
func ParseGenre(s string) (Genre, error) {
	for g, name := range genreNames {
		if strings.EqualFold(s, name) {
			return g, nil
		}
	}
	return GenreMountains, fmt.Errorf("unknown genre %q", s)
}

// FrameStyle selects the border/background treatment around the image.
type FrameStyle int

const (
	FrameNone FrameStyle = iota
	FrameThinBlack
	FrameGalleryWhite
	FrameGold
	FrameWalnut
	FrameOak
)

// FrameStyles lists every selectable frame style in display order.
var FrameStyles = []FrameStyle{
	FrameNone, FrameThinBlack, FrameGalleryWhite, FrameGold, FrameWalnut, FrameOak,
}

var frameStyleNames = map[FrameStyle]string{
	FrameNone:         "None",
	FrameThinBlack:    "Thin Black",
	FrameGalleryWhite: "Gallery White",
	FrameGold:         "Gold",
	FrameWalnut:       "Walnut",
	FrameOak:          "Oak",
}

func (f FrameStyle) String() string {
	if name, ok := frameStyleNames[f]; ok {
		return name
	}
	return "None"
}

// ParseFrameStyle resolves a frame style by name.
func ParseFrameStyle(s string) (FrameStyle, error) {
	for f, name := range frameStyleNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return FrameNone, fmt.Errorf("unknown frame style %q", s)
}

// FilterPreset selects a fixed compositing filter applied to the image.
type FilterPreset int

const (
	FilterNone FilterPreset = iota
	FilterNoir
	FilterSepia
	FilterVivid
	FilterFaded
)

// FilterPresets lists every selectable filter preset in display order.
var FilterPresets = []FilterPreset{
	FilterNone, FilterNoir, FilterSepia, FilterVivid, FilterFaded,
}

var filterPresetNames = map[FilterPreset]string{
	FilterNone:  "None",
	FilterNoir:  "Noir",
	FilterSepia: "Sepia",
	FilterVivid: "Vivid",
	FilterFaded: "Faded",
}

func (f FilterPreset) String() string {
	if name, ok := filterPresetNames[f]; ok {
		return name
	}
	return "None"
}

// ParseFilterPreset resolves a filter preset by name.
func ParseFilterPreset(s string) (FilterPreset, error) {
	for f, name := range filterPresetNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return FilterNone, fmt.Errorf("unknown filter preset %q", s)
}

const (
	// MinBrightness and MaxBrightness bound the global brightness multiplier.
	MinBrightness = 0.1
	MaxBrightness = 2.0

	// MinInterval is the shortest allowed slideshow interval.
	MinInterval = time.Second

	// MaxFrameWidth bounds the frame border in pixels.
	MaxFrameWidth = 120
)

// Config is the full set of display settings. All fields are independently
// mutable; Interval only matters while Slideshow is on.
type Config struct {
	Genre        Genre
	Slideshow    bool
	Interval     time.Duration
	FrameStyle   FrameStyle
	FilterPreset FilterPreset
	FrameWidth   float32
	Brightness   float64
}

// Default returns the settings the frame starts with.
func Default() Config {
	return Config{
		Genre:        GenreMountains,
		Slideshow:    true,
		Interval:     30 * time.Second,
		FrameStyle:   FrameGalleryWhite,
		FilterPreset: FilterNone,
		FrameWidth:   24,
		Brightness:   1.0,
	}
}

// ClampBrightness forces b into the supported range.
func ClampBrightness(b float64) float64 {
	if b < MinBrightness {
		return MinBrightness
	}
	if b > MaxBrightness {
		return MaxBrightness
	}
	return b
}

// ClampInterval floors d at the minimum slideshow interval.
func ClampInterval(d time.Duration) time.Duration {
	if d < MinInterval {
		return MinInterval
	}
	return d
}

// ClampFrameWidth bounds w to the supported border widths.
func ClampFrameWidth(w float32) float32 {
	if w < 0 {
		return 0
	}
	if w > MaxFrameWidth {
		return MaxFrameWidth
	}
	return w
}

// Normalize returns a copy of c with every numeric field clamped.
func (c Config) Normalize() Config {
	c.Brightness = ClampBrightness(c.Brightness)
	c.Interval = ClampInterval(c.Interval)
	c.FrameWidth = ClampFrameWidth(c.FrameWidth)
	return c
}
