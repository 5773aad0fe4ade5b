package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"artframe/internal/session"
)

// GestureArea is a custom widget wrapping the display content. It feeds
// raw tap and drag events into the session gesture recognizer, which
// decides whether they mean navigation, a controls toggle or a
// brightness swipe.
type GestureArea struct {
	widget.BaseWidget
	content  fyne.CanvasObject
	gestures *session.Gestures

	dragging bool
}

// NewGestureArea wraps content with gesture recognition.
func NewGestureArea(content fyne.CanvasObject, gestures *session.Gestures) *GestureArea {
	ga := &GestureArea{
		content:  content,
		gestures: gestures,
	}
	ga.ExtendBaseWidget(ga)
	return ga
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (ga *GestureArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ga.content)
}

// Tapped forwards the tap position for zone classification.
func (ga *GestureArea) Tapped(ev *fyne.PointEvent) {
	ga.gestures.Tap(ev.Position.X, ga.Size().Width)
}

// Dragged feeds swipe deltas. The first event of a drag cancels any
// pending single tap and anchors the swipe at the touch origin.
func (ga *GestureArea) Dragged(ev *fyne.DragEvent) {
	if !ga.dragging {
		ga.dragging = true
		ga.gestures.CancelPendingTap()
		ga.gestures.DragStart(ev.Position.X-ev.Dragged.DX, ga.Size().Width)
	}
	ga.gestures.Drag(ev.Dragged.DX, ev.Dragged.DY)
}

// DragEnd finishes the current swipe.
func (ga *GestureArea) DragEnd() {
	ga.dragging = false
	ga.gestures.DragEnd()
}

var _ fyne.Widget = (*GestureArea)(nil)
var _ fyne.Tappable = (*GestureArea)(nil)
var _ fyne.Draggable = (*GestureArea)(nil)
