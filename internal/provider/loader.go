package provider

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Picture is a fully decoded photograph ready for display.
type Picture struct {
	Ref      ImageRef
	Image    image.Image
	EXIFData map[string]string
}

// Loader downloads and decodes image references off-screen, so the frame
// never shows a half-loaded or broken picture.
type Loader struct {
	client *http.Client
	logger LoggerFunc
}

// NewLoader constructs a Loader. client may be nil for a default with a
// sane timeout; logger may be nil.
func NewLoader(client *http.Client, logger LoggerFunc) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Loader{client: client, logger: logger}
}

func (l *Loader) logMessage(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger(fmt.Sprintf(format, args...))
	}
}

// Load downloads ref and decodes it. On HTTP or decode failure it returns
// an error and the caller keeps whatever it was showing.
func (l *Loader) Load(ctx context.Context, ref ImageRef) (*Picture, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", ref.URL, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", ref.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: unexpected status %s", ref.URL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref.URL, err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ref.URL, err)
	}

	exifData := extractEXIF(bytes.NewReader(data))
	l.logMessage("loaded %s (%s, %dx%d)", ref.URL, format, img.Bounds().Dx(), img.Bounds().Dy())

	return &Picture{Ref: ref, Image: img, EXIFData: exifData}, nil
}

// extractEXIF pulls a few common EXIF fields. Most stock images carry
// none; that is not an error.
func extractEXIF(r io.Reader) map[string]string {
	x, err := exif.Decode(r)
	if err != nil {
		return nil
	}
	result := make(map[string]string)
	for _, field := range []string{
		"DateTime", "Model", "Make", "ExposureTime", "FNumber", "ISOSpeedRatings", "FocalLength",
	} {
		tag, err := x.Get(exif.FieldName(field))
		if err == nil && tag != nil {
			result[field] = tag.String()
		}
	}
	return result
}
