package session

import (
	"sync"
	"time"
)

// Zone is a horizontal screen region a tap landed in.
type Zone int

const (
	ZoneLeft Zone = iota
	ZoneCenter
	ZoneRight
)

const (
	// Tap-zone thresholds as fractions of the view width.
	leftZoneFraction  = 0.35
	rightZoneFraction = 0.65

	// DefaultDoubleTapWindow is how long a tap waits for its twin before
	// resolving as a single tap.
	DefaultDoubleTapWindow = 300 * time.Millisecond

	// Brightness swipes must start in the right portion of the view.
	swipeZoneFraction = 0.6

	// swipeDeadzone ignores jitter before a drag counts as a swipe.
	swipeDeadzone = 10.0

	// swipeSensitivity divides vertical displacement into brightness.
	swipeSensitivity = 300.0
)

// ClassifyZone maps a horizontal position to its tap zone.
func ClassifyZone(x, width float32) Zone {
	if width <= 0 {
		return ZoneCenter
	}
	frac := x / width
	switch {
	case frac < leftZoneFraction:
		return ZoneLeft
	case frac < rightZoneFraction:
		return ZoneCenter
	default:
		return ZoneRight
	}
}

// GestureCallbacks wire recognized gestures to the session controller.
type GestureCallbacks struct {
	OnNext           func()
	OnPrevious       func()
	OnToggleControls func()

	// Brightness returns the multiplier at swipe start; SetBrightness
	// applies the adjusted value (clamping is the receiver's job).
	Brightness    func() float64
	SetBrightness func(float64)
}

// Gestures turns raw tap/drag events into navigation, controls-toggle and
// brightness actions. A second tap in the same zone within the window is a
// double-tap and cancels the pending single-tap; taps in different zones
// never combine.
type Gestures struct {
	mu        sync.Mutex
	callbacks GestureCallbacks
	window    time.Duration

	pendingZone  Zone
	pendingTimer *time.Timer
	havePending  bool

	swipeActive    bool
	swipeDecided   bool
	swipeVertical  bool
	swipeTotalX    float32
	swipeTotalY    float32
	baseBrightness float64
}

// NewGestures constructs a recognizer with the standard 300ms window.
func NewGestures(cb GestureCallbacks) *Gestures {
	return &Gestures{callbacks: cb, window: DefaultDoubleTapWindow}
}

// SetDoubleTapWindow overrides the disambiguation window (tests).
func (g *Gestures) SetDoubleTapWindow(d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.window = d
}

// Tap feeds a tap at horizontal position x in a view of the given width.
func (g *Gestures) Tap(x, width float32) {
	zone := ClassifyZone(x, width)

	g.mu.Lock()
	if g.havePending {
		samezone := g.pendingZone == zone
		g.pendingTimer.Stop()
		g.havePending = false
		if samezone {
			g.mu.Unlock()
			switch zone {
			case ZoneRight:
				if g.callbacks.OnNext != nil {
					g.callbacks.OnNext()
				}
			case ZoneLeft:
				if g.callbacks.OnPrevious != nil {
					g.callbacks.OnPrevious()
				}
			}
			return
		}
		// Different zone: the first tap is abandoned and this tap starts
		// its own window.
	}

	g.pendingZone = zone
	g.havePending = true
	g.pendingTimer = time.AfterFunc(g.window, func() {
		g.mu.Lock()
		if !g.havePending {
			g.mu.Unlock()
			return
		}
		g.havePending = false
		g.mu.Unlock()
		if g.callbacks.OnToggleControls != nil {
			g.callbacks.OnToggleControls()
		}
	})
	g.mu.Unlock()
}

// CancelPendingTap drops an unresolved single tap, e.g. when a drag starts.
func (g *Gestures) CancelPendingTap() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.havePending {
		g.pendingTimer.Stop()
		g.havePending = false
	}
}

// DragStart begins a possible brightness swipe at (x, y). Only touches
// starting in the right portion of the view qualify.
func (g *Gestures) DragStart(x, width float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.swipeActive = width > 0 && x >= width*swipeZoneFraction
	g.swipeDecided = false
	g.swipeVertical = false
	g.swipeTotalX = 0
	g.swipeTotalY = 0
	if g.swipeActive && g.callbacks.Brightness != nil {
		g.baseBrightness = g.callbacks.Brightness()
	}
}

// Drag accumulates movement deltas. Once displacement leaves the deadzone
// the gesture commits to vertical (brightness) or horizontal (ignored).
func (g *Gestures) Drag(dx, dy float32) {
	g.mu.Lock()
	if !g.swipeActive {
		g.mu.Unlock()
		return
	}
	g.swipeTotalX += dx
	g.swipeTotalY += dy

	if !g.swipeDecided {
		ax, ay := abs32(g.swipeTotalX), abs32(g.swipeTotalY)
		if ax < swipeDeadzone && ay < swipeDeadzone {
			g.mu.Unlock()
			return
		}
		g.swipeDecided = true
		g.swipeVertical = ay > ax
	}
	if !g.swipeVertical {
		g.mu.Unlock()
		return
	}

	target := g.baseBrightness + float64(-g.swipeTotalY)/swipeSensitivity
	set := g.callbacks.SetBrightness
	g.mu.Unlock()

	if set != nil {
		set(target)
	}
}

// DragEnd finishes the current swipe.
func (g *Gestures) DragEnd() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.swipeActive = false
	g.swipeDecided = false
	g.swipeVertical = false
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
