package session

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyZone(t *testing.T) {
	const width = 1000
	tests := []struct {
		x    float32
		zone Zone
	}{
		{0, ZoneLeft},
		{349, ZoneLeft},
		{350, ZoneCenter},
		{500, ZoneCenter},
		{649, ZoneCenter},
		{650, ZoneRight},
		{999, ZoneRight},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.zone, ClassifyZone(tc.x, width), "x=%v", tc.x)
	}
}

type gestureCounters struct {
	next, prev, toggle atomic.Int32
	brightness         atomic.Value // float64
}

func newTestGestures(window time.Duration, base float64) (*Gestures, *gestureCounters) {
	c := &gestureCounters{}
	c.brightness.Store(base)
	g := NewGestures(GestureCallbacks{
		OnNext:           func() { c.next.Add(1) },
		OnPrevious:       func() { c.prev.Add(1) },
		OnToggleControls: func() { c.toggle.Add(1) },
		Brightness:       func() float64 { return c.brightness.Load().(float64) },
		SetBrightness:    func(b float64) { c.brightness.Store(b) },
	})
	g.SetDoubleTapWindow(window)
	return g, c
}

func TestDoubleTapRightNavigatesNext(t *testing.T) {
	g, c := newTestGestures(60*time.Millisecond, 1.0)

	g.Tap(900, 1000)
	g.Tap(910, 1000)

	assert.Equal(t, int32(1), c.next.Load())
	assert.Equal(t, int32(0), c.prev.Load())

	// The suppressed single tap must never resolve into a controls toggle.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), c.toggle.Load())
}

func TestDoubleTapLeftNavigatesBack(t *testing.T) {
	g, c := newTestGestures(60*time.Millisecond, 1.0)

	g.Tap(100, 1000)
	g.Tap(120, 1000)

	assert.Equal(t, int32(1), c.prev.Load())
	assert.Equal(t, int32(0), c.next.Load())
}

func TestDoubleTapCenterDoesNothing(t *testing.T) {
	g, c := newTestGestures(60*time.Millisecond, 1.0)

	g.Tap(500, 1000)
	g.Tap(510, 1000)

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), c.next.Load())
	assert.Equal(t, int32(0), c.prev.Load())
	assert.Equal(t, int32(0), c.toggle.Load())
}

func TestCrossZoneTapsDoNotCombine(t *testing.T) {
	g, c := newTestGestures(60*time.Millisecond, 1.0)

	g.Tap(100, 1000) // left
	g.Tap(900, 1000) // right, within the window

	assert.Equal(t, int32(0), c.next.Load())
	assert.Equal(t, int32(0), c.prev.Load())

	// The second tap starts its own window and resolves as a single tap.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), c.toggle.Load())
}

func TestSingleTapTogglesControlsAfterWindow(t *testing.T) {
	g, c := newTestGestures(60*time.Millisecond, 1.0)

	g.Tap(500, 1000)
	assert.Equal(t, int32(0), c.toggle.Load(), "toggle must wait out the window")

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), c.toggle.Load())
}

func TestBrightnessSwipeUp(t *testing.T) {
	g, c := newTestGestures(60*time.Millisecond, 1.0)

	g.DragStart(700, 1000) // right 40% of the view
	g.Drag(0, -150)        // upward
	g.DragEnd()

	assert.InDelta(t, 1.5, c.brightness.Load().(float64), 0.001)
}

func TestBrightnessSwipeIncremental(t *testing.T) {
	g, c := newTestGestures(60*time.Millisecond, 1.0)

	g.DragStart(800, 1000)
	g.Drag(0, -60)
	g.Drag(0, -60)
	g.Drag(0, -30)
	g.DragEnd()

	// Proportional to total displacement, not per-event resets.
	assert.InDelta(t, 1.5, c.brightness.Load().(float64), 0.001)
}

func TestLeftSideDragIgnored(t *testing.T) {
	g, c := newTestGestures(60*time.Millisecond, 1.0)

	g.DragStart(200, 1000)
	g.Drag(0, -150)
	g.DragEnd()

	assert.InDelta(t, 1.0, c.brightness.Load().(float64), 0.001)
}

func TestHorizontalDragIgnored(t *testing.T) {
	g, c := newTestGestures(60*time.Millisecond, 1.0)

	g.DragStart(700, 1000)
	g.Drag(50, -5) // commits as horizontal
	g.Drag(0, -150)
	g.DragEnd()

	assert.InDelta(t, 1.0, c.brightness.Load().(float64), 0.001)
}

func TestDeadzoneSuppressesJitter(t *testing.T) {
	g, c := newTestGestures(60*time.Millisecond, 1.0)

	g.DragStart(700, 1000)
	g.Drag(0, -4)
	g.DragEnd()

	assert.InDelta(t, 1.0, c.brightness.Load().(float64), 0.001)
}

func TestCancelPendingTap(t *testing.T) {
	g, c := newTestGestures(60*time.Millisecond, 1.0)

	g.Tap(500, 1000)
	g.CancelPendingTap()

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), c.toggle.Load())
}
