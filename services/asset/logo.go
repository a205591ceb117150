// Package asset loads the images printed on reports.
package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/redland/registro/core"
	"github.com/redland/registro/core/report"
)

const (
	maxLogoHeight = 160 // px; the header band is about 2 cm high
	maxLogoBytes  = 5 << 20
	retryAfter    = time.Minute
)

// nowFunc is mockable in tests.
var nowFunc = time.Now

// LogoLoader reads the header logo from a file or an http(s) URL and re-encodes it as a PNG.
// A loaded logo is kept for later reports. A failure is returned to every caller for retryAfter
// before the source is read again.
type LogoLoader struct {
	source  string
	timeout time.Duration
	client  *http.Client
	loads   singleflight.Group

	mu       sync.Mutex
	cached   *report.Logo
	lastErr  error
	failedAt time.Time
}

func NewLogoLoader(conf core.ReportConfig) *LogoLoader {
	return &LogoLoader{
		source:  strings.TrimSpace(conf.LogoSource),
		timeout: conf.LogoTimeout,
		client:  http.DefaultClient,
	}
}

// LoadLogo returns nil without error when no logo is configured.
// Concurrent callers share a single read of the source.
func (l *LogoLoader) LoadLogo(ctx context.Context) (*report.Logo, error) {
	if l.source == "" {
		return nil, nil
	}
	if logo, ok, err := l.remembered(); ok {
		return logo, err
	}

	v, err, _ := l.loads.Do(l.source, func() (interface{}, error) {
		// the shared read must not fail because the first caller went away
		logo, err := l.load(context.WithoutCancel(ctx))
		l.remember(logo, err)
		return logo, err
	})
	if err != nil {
		return nil, err
	}
	return v.(*report.Logo), nil
}

func (l *LogoLoader) remembered() (*report.Logo, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.cached != nil:
		return l.cached, true, nil
	case l.lastErr != nil && nowFunc().Sub(l.failedAt) < retryAfter:
		return nil, true, l.lastErr
	}
	return nil, false, nil
}

func (l *LogoLoader) remember(logo *report.Logo, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.lastErr, l.failedAt = err, nowFunc()
		return
	}
	l.cached, l.lastErr = logo, nil
}

func (l *LogoLoader) load(ctx context.Context) (*report.Logo, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	raw, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	logo, err := decodeLogo(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", l.source)
	}
	return logo, nil
}

func (l *LogoLoader) read(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(l.source, "http://") && !strings.HasPrefix(l.source, "https://") {
		f, err := os.Open(l.source)
		if err != nil {
			return nil, errors.Wrap(err, "opening logo")
		}
		//goland:noinspection GoUnhandledErrorResult
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxLogoBytes))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating logo request")
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching logo")
	}
	//goland:noinspection GoUnhandledErrorResult
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching logo: %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return nil, errors.Wrap(err, "reading logo")
	}
	return body, nil
}

// decodeLogo scales the image down to the header height and encodes it as PNG.
func decodeLogo(raw []byte) (*report.Logo, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	if img.Bounds().Dy() > maxLogoHeight {
		img = imaging.Resize(img, 0, maxLogoHeight, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &report.Logo{PNG: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}
