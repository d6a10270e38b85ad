// Package rod renders listing pages in headless Chrome for sites that build
// their markup with JavaScript or block plain HTTP clients.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/pelinbingl/emlak"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent matches the desktop Chrome the HTTP fetcher presents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Ensure Fetcher implements emlak.Fetcher at compile time.
var _ emlak.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *browser
	closed  atomic.Bool

	timeout      time.Duration
	userAgent    string
	recycleAfter int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each render. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's User-Agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRecycleAfter sets how many pages are rendered before the browser is
// restarted. Zero disables recycling.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		userAgent:    DefaultUserAgent,
		recycleAfter: DefaultRecycleAfter,
	}
	for _, opt := range opts {
		opt(f)
	}

	b, err := newBrowser(f.recycleAfter)
	if err != nil {
		return nil, err
	}
	f.browser = b
	return f, nil
}

// Fetch navigates to url, waits for the load event and returns the
// rendered document including open shadow roots.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.closed.Load() {
		return "", emlak.Errorf(emlak.EINVALID, "fetcher is closed")
	}

	b := f.browser.current()
	if b == nil {
		return "", emlak.Errorf(emlak.EINVALID, "fetcher is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	err = proto.NetworkSetUserAgentOverride{
		UserAgent:      f.userAgent,
		AcceptLanguage: "tr-TR,tr;q=0.9",
	}.Call(page)
	if err != nil {
		return "", fmt.Errorf("set user agent: %w", err)
	}

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait for %s: %w", url, err)
	}

	res, err := page.Eval(serializeJS)
	if err != nil {
		return "", fmt.Errorf("serialize %s: %w", url, err)
	}
	f.browser.rendered()

	return res.Value.Str(), nil
}

// serializeJS returns the document HTML with open shadow roots inlined.
const serializeJS = `() => {
	const opts = {serializableShadowRoots: true, shadowRoots: []};
	const walk = (root) => {
		root.querySelectorAll('*').forEach((el) => {
			if (el.shadowRoot) {
				opts.shadowRoots.push(el.shadowRoot);
				walk(el.shadowRoot);
			}
		});
	};
	walk(document);
	const html = document.documentElement.getHTML
		? document.documentElement.getHTML(opts)
		: document.documentElement.innerHTML;
	return '<!DOCTYPE html><html>' + html + '</html>';
}`

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browser.close()
}

// LauncherPID returns the process ID of the browser launcher.
// Tests use it to verify cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}
