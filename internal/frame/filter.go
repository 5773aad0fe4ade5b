package frame

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"artframe/internal/config"
)

// channelFunc transforms one pixel's color channels in [0, 255].
type channelFunc func(r, g, b float64) (float64, float64, float64)

func luma(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

func noir(r, g, b float64) (float64, float64, float64) {
	y := luma(r, g, b)
	y = (y-128)*1.25 + 128
	return y, y, y
}

// Classic sepia tone matrix.
func sepia(r, g, b float64) (float64, float64, float64) {
	return 0.393*r + 0.769*g + 0.189*b,
		0.349*r + 0.686*g + 0.168*b,
		0.272*r + 0.534*g + 0.131*b
}

func vivid(r, g, b float64) (float64, float64, float64) {
	y := luma(r, g, b)
	const sat = 1.35
	return y + (r-y)*sat, y + (g-y)*sat, y + (b-y)*sat
}

func faded(r, g, b float64) (float64, float64, float64) {
	y := luma(r, g, b)
	const sat = 0.7
	r = y + (r-y)*sat
	g = y + (g-y)*sat
	b = y + (b-y)*sat
	// Lift the blacks and pull the highlights for the washed-out look.
	return r*0.85 + 28, g*0.85 + 28, b*0.85 + 28
}

func channelFuncFor(p config.FilterPreset) channelFunc {
	switch p {
	case config.FilterNoir:
		return noir
	case config.FilterSepia:
		return sepia
	case config.FilterVivid:
		return vivid
	case config.FilterFaded:
		return faded
	default:
		return nil
	}
}

// Apply renders img through the filter preset and the brightness
// multiplier and returns a fresh RGBA image. The source is never
// modified. A nil img returns nil.
func Apply(img image.Image, preset config.FilterPreset, brightness float64) *image.RGBA {
	if img == nil {
		return nil
	}
	brightness = config.ClampBrightness(brightness)

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Src)

	fn := channelFuncFor(preset)
	if fn == nil && brightness == 1.0 {
		return dst
	}

	pix := dst.Pix
	for i := 0; i < len(pix); i += 4 {
		r := float64(pix[i])
		g := float64(pix[i+1])
		b := float64(pix[i+2])
		if fn != nil {
			r, g, b = fn(r, g, b)
		}
		pix[i] = clamp8(r * brightness)
		pix[i+1] = clamp8(g * brightness)
		pix[i+2] = clamp8(b * brightness)
	}
	return dst
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
