package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/pelinbingl/emlak"
)

var _ emlak.Fetcher = (*FallbackFetcher)(nil)

// FallbackFetcher fetches with Primary and retries with Render when the
// page is blocked, unreachable or needs JavaScript to show its content.
type FallbackFetcher struct {
	Primary emlak.Fetcher

	// Render is the headless browser fetcher. Nil disables the fallback.
	Render emlak.Fetcher
}

// Fetch returns the page HTML from the first fetcher that succeeds.
func (f *FallbackFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.Primary.Fetch(ctx, url)
	if err == nil || f.Render == nil || !renderable(err) {
		return html, err
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	html, rerr := f.Render.Fetch(ctx, url)
	if rerr != nil {
		return "", fmt.Errorf("render fallback after %s: %w", emlak.ErrorMessage(err), rerr)
	}
	return html, nil
}

// Close closes both fetchers.
func (f *FallbackFetcher) Close() error {
	var errs []error
	if err := f.Primary.Close(); err != nil {
		errs = append(errs, err)
	}
	if f.Render != nil {
		if err := f.Render.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func renderable(err error) bool {
	switch emlak.ErrorCode(err) {
	case emlak.EBLOCKED, emlak.ERENDER, emlak.EUNREACHABLE:
		return true
	}
	return false
}
