// Package frame turns the cosmetic presets into concrete rendering
// ingredients: border colors for the frame styles and pixel transforms
// for the filter presets.
package frame

import (
	"image/color"

	"artframe/internal/config"
)

// Style is the resolved look of a frame border. Mat is a thin inner
// accent stroke drawn between the border and the picture.
type Style struct {
	Border  color.NRGBA
	Mat     color.NRGBA
	ShowMat bool
}

var styles = map[config.FrameStyle]Style{
	config.FrameNone: {
		Border: color.NRGBA{0, 0, 0, 0},
	},
	config.FrameThinBlack: {
		Border: color.NRGBA{22, 22, 24, 255},
	},
	config.FrameGalleryWhite: {
		Border: color.NRGBA{245, 245, 242, 255},
	},
	config.FrameGold: {
		Border:  color.NRGBA{198, 162, 72, 255},
		Mat:     color.NRGBA{240, 234, 214, 255},
		ShowMat: true,
	},
	config.FrameWalnut: {
		Border:  color.NRGBA{89, 56, 38, 255},
		Mat:     color.NRGBA{233, 226, 211, 255},
		ShowMat: true,
	},
	config.FrameOak: {
		Border:  color.NRGBA{176, 142, 98, 255},
		Mat:     color.NRGBA{238, 232, 219, 255},
		ShowMat: true,
	},
}

// StyleFor maps a frame style preset to its colors. Unknown values fall
// back to the bare style.
func StyleFor(s config.FrameStyle) Style {
	if st, ok := styles[s]; ok {
		return st
	}
	return styles[config.FrameNone]
}

// Visible reports whether the style draws anything at all.
func (s Style) Visible() bool {
	return s.Border.A > 0
}
