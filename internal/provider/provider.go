// Package provider resolves and loads stock landscape photographs from a
// public image host.
package provider

import (
	"context"
	"fmt"
	"time"

	"artframe/internal/config"

	"github.com/google/uuid"
)

const (
	// DefaultHost serves seeded stock photographs.
	DefaultHost = "picsum.photos"

	// ImageWidth and ImageHeight are the requested photograph dimensions.
	ImageWidth  = 1920
	ImageHeight = 1080

	// DefaultFetchDelay paces resolution so rapid navigation does not
	// hammer the host.
	DefaultFetchDelay = 600 * time.Millisecond

	seedSuffixLen = 8
)

// LoggerFunc defines a function signature for logging messages.
type LoggerFunc func(message string)

// ImageRef is an opaque locator for a single photograph, together with the
// genre it was derived from. It has no identity beyond the URL string.
type ImageRef struct {
	URL   string
	Genre config.Genre
}

// Provider produces image references for a genre. Each call yields a new
// pseudo-random variant; there is no caching and no dedup guarantee
// against immediate repeats.
type Provider struct {
	host    string
	width   int
	height  int
	delay   time.Duration
	newSeed func() string
	logger  LoggerFunc
}

// Option customizes a Provider.
type Option func(*Provider)

// WithHost overrides the image host.
func WithHost(host string) Option {
	return func(p *Provider) { p.host = host }
}

// WithFetchDelay overrides the pacing delay. Zero disables pacing.
func WithFetchDelay(d time.Duration) Option {
	return func(p *Provider) { p.delay = d }
}

// WithSeedFunc overrides the random seed source.
func WithSeedFunc(f func() string) Option {
	return func(p *Provider) { p.newSeed = f }
}

// New constructs a Provider. logger may be nil.
func New(logger LoggerFunc, opts ...Option) *Provider {
	p := &Provider{
		host:   DefaultHost,
		width:  ImageWidth,
		height: ImageHeight,
		delay:  DefaultFetchDelay,
		logger: logger,
		newSeed: func() string {
			return uuid.NewString()[:seedSuffixLen]
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) logMessage(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger(fmt.Sprintf(format, args...))
	}
}

// Resolve constructs a fresh image reference for the genre.
func (p *Provider) Resolve(genre config.Genre) ImageRef {
	seed := fmt.Sprintf("%s-%s", genre.Slug(), p.newSeed())
	return ImageRef{
		URL:   fmt.Sprintf("https://%s/seed/%s/%d/%d", p.host, seed, p.width, p.height),
		Genre: genre,
	}
}

// Fetch resolves a reference after the pacing delay. The only failure mode
// is cancellation of ctx.
func (p *Provider) Fetch(ctx context.Context, genre config.Genre) (ImageRef, error) {
	if p.delay > 0 {
		t := time.NewTimer(p.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			p.logMessage("fetch for %s cancelled: %v", genre, ctx.Err())
			return ImageRef{}, ctx.Err()
		}
	}
	ref := p.Resolve(genre)
	p.logMessage("resolved %s image: %s", genre, ref.URL)
	return ref, nil
}
