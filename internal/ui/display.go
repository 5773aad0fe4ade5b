package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"artframe/internal/config"
	"artframe/internal/frame"
	"artframe/internal/provider"
	"artframe/internal/session"
)

// matStroke is the visible accent ring width for styles that carry a mat.
const matStroke float32 = 6

// frameLayout insets the picture by the frame width; the border and mat
// rectangles behind it become the visible frame.
type frameLayout struct {
	frameWidth float32
	showMat    bool
}

func (fl *frameLayout) MinSize(_ []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(100, 100)
}

func (fl *frameLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	border, mat, img := objects[0], objects[1], objects[2]

	border.Move(fyne.NewPos(0, 0))
	border.Resize(size)

	w := fl.frameWidth
	if 2*w > size.Width-20 || 2*w > size.Height-20 {
		// Window smaller than the frame; give the picture some room.
		w = 0
	}

	if fl.showMat && w > matStroke {
		inset := w - matStroke
		mat.Move(fyne.NewPos(inset, inset))
		mat.Resize(fyne.NewSize(size.Width-2*inset, size.Height-2*inset))
	} else {
		mat.Move(fyne.NewPos(0, 0))
		mat.Resize(fyne.NewSize(0, 0))
	}

	img.Move(fyne.NewPos(w, w))
	img.Resize(fyne.NewSize(size.Width-2*w, size.Height-2*w))
}

// Display renders the current picture inside its frame, or a pulsing
// placeholder while the first image is still on its way. All methods
// must run on the UI thread.
type Display struct {
	border  *canvas.Rectangle
	mat     *canvas.Rectangle
	image   *canvas.Image
	loading *canvas.Text
	pulse   *fyne.Animation
	layout  *frameLayout
	root    fyne.CanvasObject

	// last filter inputs, so repeated state updates skip the pixel pass
	lastPicture    *provider.Picture
	lastPreset     config.FilterPreset
	lastBrightness float64
}

func NewDisplay() *Display {
	d := &Display{
		border:  canvas.NewRectangle(color.Black),
		mat:     canvas.NewRectangle(color.Transparent),
		image:   &canvas.Image{},
		loading: canvas.NewText("Loading…", color.NRGBA{200, 200, 200, 255}),
		layout:  &frameLayout{},
	}
	d.image.FillMode = canvas.ImageFillContain
	d.loading.TextSize = 28
	d.loading.Alignment = fyne.TextAlignCenter

	framed := container.New(d.layout, d.border, d.mat, d.image)
	d.root = container.NewStack(framed, container.NewCenter(d.loading))

	d.pulse = canvas.NewColorRGBAAnimation(
		color.NRGBA{200, 200, 200, 255},
		color.NRGBA{200, 200, 200, 60},
		1200*time.Millisecond,
		func(c color.Color) {
			d.loading.Color = c
			canvas.Refresh(d.loading)
		},
	)
	d.pulse.RepeatCount = fyne.AnimationRepeatForever
	d.pulse.AutoReverse = true
	return d
}

// Object returns the renderable root.
func (d *Display) Object() fyne.CanvasObject {
	return d.root
}

// Render applies a state snapshot: frame colors, filtered pixels and the
// placeholder visibility.
func (d *Display) Render(st session.State) {
	style := frame.StyleFor(st.Config.FrameStyle)
	width := st.Config.FrameWidth
	if !style.Visible() {
		width = 0
		d.border.FillColor = color.Black
	} else {
		d.border.FillColor = style.Border
	}
	d.mat.FillColor = style.Mat
	d.layout.frameWidth = width
	d.layout.showMat = style.ShowMat

	if st.Picture == nil {
		d.image.Image = nil
		d.loading.Show()
		d.pulse.Start()
	} else {
		if st.Picture != d.lastPicture ||
			st.Config.FilterPreset != d.lastPreset ||
			st.Config.Brightness != d.lastBrightness {
			d.image.Image = frame.Apply(st.Picture.Image, st.Config.FilterPreset, st.Config.Brightness)
			d.lastPicture = st.Picture
			d.lastPreset = st.Config.FilterPreset
			d.lastBrightness = st.Config.Brightness
		}
		d.pulse.Stop()
		d.loading.Hide()
	}

	d.root.Refresh()
}
