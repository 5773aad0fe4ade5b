package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"testing"
	"time"

	"artframe/internal/config"
	"artframe/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	mu    sync.Mutex
	calls int
}

func (f *stubFetcher) Fetch(_ context.Context, g config.Genre) (provider.ImageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return provider.ImageRef{
		URL:   fmt.Sprintf("https://example.test/seed/%s-%04d/1920/1080", g.Slug(), f.calls),
		Genre: g,
	}, nil
}

func (f *stubFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type stubLoader struct {
	mu      sync.Mutex
	gate    chan struct{}
	failing bool
	loads   []provider.ImageRef
}

func (l *stubLoader) Load(_ context.Context, ref provider.ImageRef) (*provider.Picture, error) {
	l.mu.Lock()
	gate := l.gate
	l.mu.Unlock()
	if gate != nil {
		<-gate
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads = append(l.loads, ref)
	if l.failing {
		return nil, errors.New("decode failed")
	}
	return &provider.Picture{Ref: ref, Image: image.NewRGBA(image.Rect(0, 0, 1, 1))}, nil
}

func (l *stubLoader) setFailing(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failing = v
}

func idle(c *Controller) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.generating
}

func waitIdle(t *testing.T, c *Controller) {
	t.Helper()
	require.Eventually(t, func() bool { return idle(c) }, 2*time.Second, 5*time.Millisecond)
}

func newTestController(t *testing.T, cfg config.Config, opts ...Option) (*Controller, *stubFetcher, *stubLoader) {
	t.Helper()
	fetcher := &stubFetcher{}
	loader := &stubLoader{}
	opts = append(opts, WithSettleDelay(5*time.Millisecond))
	c := NewController(cfg, fetcher, loader, opts...)
	t.Cleanup(c.Stop)
	return c, fetcher, loader
}

func TestLoadNextArchivesHistory(t *testing.T) {
	c, _, _ := newTestController(t, config.Default())

	const n = 4
	for i := 0; i < n; i++ {
		c.LoadNext()
		waitIdle(t, c)
	}

	length, index := c.History()
	assert.Equal(t, n-1, length, "first load has no predecessor to archive")
	assert.Equal(t, n-2, index)
	require.NotNil(t, c.Current())
	assert.Contains(t, c.Current().Ref.URL, fmt.Sprintf("-%04d/", n))
}

func TestLoadPreviousThenNextKeepsDisplayedRef(t *testing.T) {
	c, _, _ := newTestController(t, config.Default())

	for i := 0; i < 3; i++ {
		c.LoadNext()
		waitIdle(t, c)
	}
	second := c.history.Refs()[1] // the second image shown

	c.LoadPrevious()
	waitIdle(t, c)
	assert.Equal(t, second, c.Current().Ref)
	_, index := c.History()
	assert.Equal(t, 0, index)

	c.LoadNext()
	waitIdle(t, c)

	refs := c.history.Refs()
	require.Len(t, refs, 2)
	assert.Equal(t, second, refs[1], "re-displayed image must be archived, not lost")
}

func TestLoadPreviousOnEmptyHistoryIsNoop(t *testing.T) {
	c, fetcher, _ := newTestController(t, config.Default())

	c.LoadPrevious()
	time.Sleep(50 * time.Millisecond)
	assert.Nil(t, c.Current())
	assert.Equal(t, 0, fetcher.count())
}

func TestLoadNextSingleFlight(t *testing.T) {
	c, fetcher, loader := newTestController(t, config.Default())
	gate := make(chan struct{})
	loader.gate = gate

	c.LoadNext()
	require.Eventually(t, func() bool { return fetcher.count() == 1 }, time.Second, 5*time.Millisecond)

	c.LoadNext() // in flight: must be a no-op
	c.LoadNext()
	close(gate)
	waitIdle(t, c)

	assert.Equal(t, 1, fetcher.count(), "overlapping loads must not issue extra requests")

	c.LoadNext()
	waitIdle(t, c)
	assert.Equal(t, 2, fetcher.count())
}

func TestLoadFailureKeepsPreviousImage(t *testing.T) {
	c, _, loader := newTestController(t, config.Default())

	c.LoadNext()
	waitIdle(t, c)
	shown := c.Current().Ref

	loader.setFailing(true)
	c.LoadNext()
	waitIdle(t, c)

	assert.Equal(t, shown, c.Current().Ref, "failed load must not change the display")
	length, _ := c.History()
	assert.Equal(t, 0, length)

	c.mu.Lock()
	loading := c.loading
	c.mu.Unlock()
	assert.False(t, loading)
}

func TestStaleGenerationDiscarded(t *testing.T) {
	var mu sync.Mutex
	var seen []State
	record := func(st State) {
		mu.Lock()
		seen = append(seen, st)
		mu.Unlock()
	}

	cfg := config.Default()
	cfg.Slideshow = false
	c, _, loader := newTestController(t, cfg, WithOnState(record))
	gate := make(chan struct{})
	loader.gate = gate

	c.Start() // kicks off the initial (mountains) load, held at the gate
	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.generating
	}, time.Second, 5*time.Millisecond)

	c.SetGenre(config.GenreForest)
	time.Sleep(30 * time.Millisecond) // let the settle timer queue the reload
	close(gate)

	require.Eventually(t, func() bool {
		return idle(c) && c.Current() != nil
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, config.GenreForest, c.Current().Ref.Genre)

	mu.Lock()
	defer mu.Unlock()
	for _, st := range seen {
		if st.Picture != nil {
			assert.Equal(t, config.GenreForest, st.Picture.Ref.Genre,
				"a stale-generation picture must never reach the display")
		}
	}
}

func TestGenreChangeRestartsTickerWithoutDuplicates(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	cfg := config.Default()
	cfg.Interval = time.Second
	c, fetcher, _ := newTestController(t, cfg)

	c.Start()
	waitIdle(t, c) // initial load: 1 fetch

	time.Sleep(400 * time.Millisecond)
	c.SetGenre(config.GenreCanyon) // settle reload: 2nd fetch, ticker restarts
	time.Sleep(1600 * time.Millisecond)

	// One tick of the restarted cycle has fired by now; a leftover ticker
	// from before the genre change would have added another.
	assert.Equal(t, 3, fetcher.count())

	c.Stop()
	waitIdle(t, c)
	after := fetcher.count()
	time.Sleep(1300 * time.Millisecond)
	assert.Equal(t, after, fetcher.count(), "no loads may fire after teardown")
}

func TestControlsAutoHide(t *testing.T) {
	c, _, _ := newTestController(t, config.Default(), WithControlsTimeout(200*time.Millisecond))

	c.ToggleControls()
	assert.True(t, c.ControlsVisible())

	time.Sleep(100 * time.Millisecond)
	c.SetFrameWidth(30) // interaction resets the countdown
	time.Sleep(150 * time.Millisecond)
	assert.True(t, c.ControlsVisible(), "reset countdown must not have expired yet")

	require.Eventually(t, func() bool { return !c.ControlsVisible() }, time.Second, 10*time.Millisecond)
}

func TestBrightnessClamped(t *testing.T) {
	c, _, _ := newTestController(t, config.Default())

	c.SetBrightness(5)
	assert.Equal(t, config.MaxBrightness, c.Brightness())

	c.SetBrightness(0.001)
	assert.Equal(t, config.MinBrightness, c.Brightness())
}

func TestStartForcesInitialLoad(t *testing.T) {
	cfg := config.Default()
	cfg.Slideshow = false
	c, _, _ := newTestController(t, cfg)

	c.Start()
	require.Eventually(t, func() bool { return c.Current() != nil }, 2*time.Second, 5*time.Millisecond)
}

type stubWake struct {
	mu       sync.Mutex
	acquires int
	releases int
	fail     bool
}

func (w *stubWake) Acquire() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.acquires++
	if w.fail {
		return errors.New("screensaver service unavailable")
	}
	return nil
}

func (w *stubWake) Release() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.releases++
}

func TestWakeLockLifecycle(t *testing.T) {
	wake := &stubWake{}
	cfg := config.Default()
	cfg.Slideshow = false
	c, _, _ := newTestController(t, cfg, WithWakeLock(wake))

	c.Start()
	c.SetSlideshow(true) // resuming the show re-acquires
	c.Stop()

	wake.mu.Lock()
	defer wake.mu.Unlock()
	assert.Equal(t, 2, wake.acquires)
	assert.Equal(t, 1, wake.releases)
}

func TestWakeLockFailureIsSwallowed(t *testing.T) {
	var mu sync.Mutex
	var logged []string
	logger := func(msg string) {
		mu.Lock()
		logged = append(logged, msg)
		mu.Unlock()
	}

	wake := &stubWake{fail: true}
	cfg := config.Default()
	cfg.Slideshow = false
	c, _, _ := newTestController(t, cfg, WithWakeLock(wake), WithLogger(logger))

	c.Start() // must not panic or block
	require.Eventually(t, func() bool { return c.Current() != nil }, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, logged)
}
