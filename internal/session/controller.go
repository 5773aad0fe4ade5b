package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"artframe/internal/config"
	"artframe/internal/provider"
)

const (
	// DefaultHistoryCapacity bounds the in-memory navigation history.
	DefaultHistoryCapacity = 100

	// DefaultSettleDelay coalesces rapid genre changes before reloading.
	DefaultSettleDelay = 250 * time.Millisecond

	// DefaultControlsTimeout hides the controls after inactivity.
	DefaultControlsTimeout = 4 * time.Second
)

// LoggerFunc defines a function signature for logging messages.
type LoggerFunc func(message string)

// Fetcher resolves a fresh image reference for a genre.
type Fetcher interface {
	Fetch(ctx context.Context, genre config.Genre) (provider.ImageRef, error)
}

// PictureLoader downloads and decodes a reference off-screen.
type PictureLoader interface {
	Load(ctx context.Context, ref provider.ImageRef) (*provider.Picture, error)
}

// WakeLock keeps the display from sleeping while held. Implementations
// must tolerate repeated Acquire/Release calls.
type WakeLock interface {
	Acquire() error
	Release()
}

// State is a snapshot of everything the presentation layer renders.
type State struct {
	Config          config.Config
	Picture         *provider.Picture
	Loading         bool
	ControlsVisible bool
	HistoryLen      int
	HistoryIndex    int
}

// Controller is the image session controller. It owns the current picture,
// the in-flight guard, the navigation history, the slideshow ticker and
// the controls auto-hide timer, and tears all of them down on Stop.
type Controller struct {
	mu sync.Mutex

	cfg     config.Config
	fetcher Fetcher
	loader  PictureLoader
	wake    WakeLock
	logger  LoggerFunc
	onState func(State)

	current    *provider.Picture
	history    *History
	loading    bool
	generating bool

	// generation invalidates in-flight loads when the genre changes or
	// the controller stops; stale results are dropped on arrival.
	generation    uint64
	pendingReload bool

	started         bool
	tickerStop      chan struct{}
	settleDelay     time.Duration
	settleTimer     *time.Timer
	controlsVisible bool
	controlsTimeout time.Duration
	hideTimer       *time.Timer
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger installs a log sink.
func WithLogger(l LoggerFunc) Option {
	return func(c *Controller) { c.logger = l }
}

// WithWakeLock installs the screen wake lock used while running.
func WithWakeLock(w WakeLock) Option {
	return func(c *Controller) { c.wake = w }
}

// WithOnState installs the state callback fired after every change.
func WithOnState(f func(State)) Option {
	return func(c *Controller) { c.onState = f }
}

// WithHistoryCapacity overrides the history bound.
func WithHistoryCapacity(n int) Option {
	return func(c *Controller) { c.history = NewHistory(n) }
}

// WithSettleDelay overrides the genre-change settling delay.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Controller) { c.settleDelay = d }
}

// WithControlsTimeout overrides the controls auto-hide delay.
func WithControlsTimeout(d time.Duration) Option {
	return func(c *Controller) { c.controlsTimeout = d }
}

// NewController constructs a stopped controller; call Start to begin.
func NewController(cfg config.Config, fetcher Fetcher, loader PictureLoader, opts ...Option) *Controller {
	c := &Controller{
		cfg:             cfg.Normalize(),
		fetcher:         fetcher,
		loader:          loader,
		history:         NewHistory(DefaultHistoryCapacity),
		settleDelay:     DefaultSettleDelay,
		controlsTimeout: DefaultControlsTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) logMessage(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger(fmt.Sprintf(format, args...))
	}
}

// snapshotLocked builds a State; callers hold c.mu.
func (c *Controller) snapshotLocked() State {
	return State{
		Config:          c.cfg,
		Picture:         c.current,
		Loading:         c.loading,
		ControlsVisible: c.controlsVisible,
		HistoryLen:      c.history.Len(),
		HistoryIndex:    c.history.Index(),
	}
}

// notifyLocked snapshots state under the lock and fires the callback
// outside it.
func (c *Controller) notifyLocked() {
	if c.onState == nil {
		return
	}
	st := c.snapshotLocked()
	cb := c.onState
	c.mu.Unlock()
	cb(st)
	c.mu.Lock()
}

// Start acquires the wake lock, starts the slideshow ticker and forces an
// initial load when nothing is on screen yet.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.acquireWakeLocked()
	c.restartTickerLocked()
	needLoad := c.current == nil && !c.generating
	c.mu.Unlock()

	if needLoad {
		c.LoadNext()
	}
}

// Stop tears down timers, invalidates in-flight loads and releases the
// wake lock. The controller can be restarted.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return
	}
	c.started = false
	c.generation++
	c.pendingReload = false
	c.stopTickerLocked()
	if c.settleTimer != nil {
		c.settleTimer.Stop()
		c.settleTimer = nil
	}
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
	if c.wake != nil {
		c.wake.Release()
	}
}

func (c *Controller) acquireWakeLocked() {
	if c.wake == nil {
		return
	}
	if err := c.wake.Acquire(); err != nil {
		// Non-fatal: the frame still works, the screen may just sleep.
		c.logMessage("wake lock unavailable: %v", err)
	}
}

// Config returns the current settings.
func (c *Controller) Config() config.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Current returns the picture on screen, or nil.
func (c *Controller) Current() *provider.Picture {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// LoadNext advances to a fresh image. It is a no-op while another load is
// in flight.
func (c *Controller) LoadNext() {
	c.mu.Lock()
	if c.generating {
		c.mu.Unlock()
		return
	}
	c.generating = true
	c.loading = true
	gen := c.generation
	genre := c.cfg.Genre
	c.notifyLocked()
	c.mu.Unlock()

	go c.runNext(gen, genre)
}

func (c *Controller) runNext(gen uint64, genre config.Genre) {
	ctx := context.Background()

	ref, err := c.fetcher.Fetch(ctx, genre)
	if err != nil {
		c.logMessage("fetch failed for %s: %v", genre, err)
		c.finishLoad(gen, nil, false)
		return
	}

	pic, err := c.loader.Load(ctx, ref)
	if err != nil {
		c.logMessage("preload failed for %s: %v", ref.URL, err)
		c.finishLoad(gen, nil, false)
		return
	}
	c.finishLoad(gen, pic, true)
}

// LoadPrevious redisplays the most recent history entry. It is a no-op on
// empty history or while a load is in flight.
func (c *Controller) LoadPrevious() {
	c.mu.Lock()
	if c.generating {
		c.mu.Unlock()
		return
	}
	ref, ok := c.history.Back()
	if !ok {
		c.mu.Unlock()
		return
	}
	c.generating = true
	c.loading = true
	gen := c.generation
	c.notifyLocked()
	c.mu.Unlock()

	go func() {
		pic, err := c.loader.Load(context.Background(), ref)
		if err != nil {
			c.logMessage("reload of %s failed: %v", ref.URL, err)
			c.finishLoad(gen, nil, false)
			return
		}
		c.finishLoad(gen, pic, false)
	}()
}

// finishLoad commits or discards a completed load. archive controls
// whether the replaced picture is pushed onto history (forward loads yes,
// history re-displays no).
func (c *Controller) finishLoad(gen uint64, pic *provider.Picture, archive bool) {
	c.mu.Lock()
	if gen != c.generation {
		// Superseded mid-flight; drop the result and honor any reload
		// that was waiting on the single-flight guard.
		c.generating = false
		c.loading = false
		reload := c.pendingReload
		c.pendingReload = false
		c.notifyLocked()
		c.mu.Unlock()
		if reload {
			c.LoadNext()
		}
		return
	}

	c.generating = false
	c.loading = false
	if pic != nil {
		if archive && c.current != nil {
			c.history.Push(c.current.Ref)
		}
		c.current = pic
	}
	reload := c.pendingReload
	c.pendingReload = false
	c.notifyLocked()
	c.mu.Unlock()

	if reload {
		c.LoadNext()
	}
}

// SetGenre switches the image category. The in-flight load (if any) is
// invalidated and a reload is scheduled after a short settling delay so
// rapid taps through the genre grid coalesce into one request.
func (c *Controller) SetGenre(g config.Genre) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cfg.Genre == g {
		c.touchControlsLocked()
		return
	}
	c.cfg.Genre = g
	c.generation++
	c.pendingReload = false
	c.restartTickerLocked()
	c.touchControlsLocked()

	if c.settleTimer != nil {
		c.settleTimer.Stop()
	}
	c.settleTimer = time.AfterFunc(c.settleDelay, c.settledReload)
	c.notifyLocked()
}

func (c *Controller) settledReload() {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return
	}
	if c.generating {
		c.pendingReload = true
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.LoadNext()
}

// SetSlideshow enables or disables automatic advancement. Resuming also
// re-acquires the wake lock, mirroring how the display is expected to stay
// awake while the show runs.
func (c *Controller) SetSlideshow(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cfg.Slideshow == on {
		c.touchControlsLocked()
		return
	}
	c.cfg.Slideshow = on
	if on && c.started {
		c.acquireWakeLocked()
	}
	c.restartTickerLocked()
	c.touchControlsLocked()
	c.notifyLocked()
}

// ToggleSlideshow flips the slideshow flag.
func (c *Controller) ToggleSlideshow() {
	c.SetSlideshow(!c.Config().Slideshow)
}

// SetInterval changes the slideshow period and restarts the cycle.
func (c *Controller) SetInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d = config.ClampInterval(d)
	if c.cfg.Interval == d {
		c.touchControlsLocked()
		return
	}
	c.cfg.Interval = d
	c.restartTickerLocked()
	c.touchControlsLocked()
	c.notifyLocked()
}

// SetFrameStyle changes the frame treatment.
func (c *Controller) SetFrameStyle(f config.FrameStyle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.FrameStyle = f
	c.touchControlsLocked()
	c.notifyLocked()
}

// SetFilterPreset changes the compositing filter.
func (c *Controller) SetFilterPreset(f config.FilterPreset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.FilterPreset = f
	c.touchControlsLocked()
	c.notifyLocked()
}

// SetFrameWidth changes the border width.
func (c *Controller) SetFrameWidth(w float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.FrameWidth = config.ClampFrameWidth(w)
	c.touchControlsLocked()
	c.notifyLocked()
}

// SetBrightness sets the global brightness multiplier, clamped.
func (c *Controller) SetBrightness(b float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.Brightness = config.ClampBrightness(b)
	c.notifyLocked()
}

// Brightness returns the current brightness multiplier.
func (c *Controller) Brightness() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Brightness
}

// ToggleControls flips the controls overlay and arms the auto-hide timer.
func (c *Controller) ToggleControls() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controlsVisible = !c.controlsVisible
	c.touchControlsLocked()
	c.notifyLocked()
}

// HideControls dismisses the overlay immediately.
func (c *Controller) HideControls() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.controlsVisible {
		return
	}
	c.controlsVisible = false
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
	c.notifyLocked()
}

// ControlsVisible reports whether the overlay is showing.
func (c *Controller) ControlsVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controlsVisible
}

// touchControlsLocked resets the auto-hide countdown; any interaction or
// config update keeps the overlay up a little longer.
func (c *Controller) touchControlsLocked() {
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
	if !c.controlsVisible {
		return
	}
	c.hideTimer = time.AfterFunc(c.controlsTimeout, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.controlsVisible {
			return
		}
		c.controlsVisible = false
		c.hideTimer = nil
		c.notifyLocked()
	})
}

// History returns (len, index) for display purposes.
func (c *Controller) History() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Len(), c.history.Index()
}

// restartTickerLocked tears down the old slideshow loop and starts a new
// one when the slideshow is enabled. Exactly one loop runs at a time.
func (c *Controller) restartTickerLocked() {
	c.stopTickerLocked()
	if !c.started || !c.cfg.Slideshow {
		return
	}
	stop := make(chan struct{})
	c.tickerStop = stop
	interval := c.cfg.Interval

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.LoadNext()
			case <-stop:
				return
			}
		}
	}()
}

func (c *Controller) stopTickerLocked() {
	if c.tickerStop != nil {
		close(c.tickerStop)
		c.tickerStop = nil
	}
}
