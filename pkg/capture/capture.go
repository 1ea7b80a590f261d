// Package capture renders a live page in headless Chrome and returns the
// screenshot bytes, for building reference fingerprints or probing a
// suspicious URL.
package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Options control the headless browser session.
type Options struct {
	Width   int64
	Height  int64
	Timeout time.Duration
	// Quality is the JPEG-style quality passed to the screenshot command;
	// 100 keeps it lossless PNG.
	Quality int
}

// DefaultOptions matches the viewport the reference fingerprints were
// rendered at.
func DefaultOptions() Options {
	return Options{
		Width:   1280,
		Height:  1024,
		Timeout: 30 * time.Second,
		Quality: 100,
	}
}

// Screenshot navigates to url and returns a full-page screenshot. The
// parent context bounds the whole session on top of opts.Timeout.
func Screenshot(parent context.Context, url string, opts Options) ([]byte, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("incognito", true),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(parent, allocOpts...)
	defer cancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	log.Debug().Str("component", "capture").Str("url", url).Msg("Rendering page")

	var buf []byte
	err := chromedp.Run(ctx,
		emulation.SetDeviceMetricsOverride(opts.Width, opts.Height, 1, false).
			WithScreenOrientation(&emulation.ScreenOrientation{
				Type:  emulation.OrientationTypePortraitPrimary,
				Angle: 0,
			}),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1*time.Second),
		chromedp.FullScreenshot(&buf, opts.Quality),
	)
	if err != nil {
		return nil, fmt.Errorf("capturing %s: %w", url, err)
	}
	return buf, nil
}
