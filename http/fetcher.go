// Package http provides the net/http implementation of emlak.Fetcher and
// emlak.Downloader for listing pages served without client-side rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/pelinbingl/emlak"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent is a desktop Chrome user agent. Listing sites answer
// unknown clients with a block page.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// DefaultAcceptLanguage asks for Turkish content.
const DefaultAcceptLanguage = "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7"

// MaxDownloadSize caps the size of a downloaded asset.
const MaxDownloadSize = 20 << 20

var (
	noscriptRe = regexp.MustCompile(`(?i)<noscript`)
	headingRe  = regexp.MustCompile(`(?i)<h1[\s>]`)
)

// Ensure Fetcher implements emlak.Fetcher and emlak.Downloader at compile time.
var (
	_ emlak.Fetcher    = (*Fetcher)(nil)
	_ emlak.Downloader = (*Fetcher)(nil)
)

// Fetcher retrieves listing pages and images with plain HTTP requests.
// It does not execute JavaScript; pages that need it fail with ERENDER.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML at url decoded to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.get(ctx, url, "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		r = resp.Body
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", emlak.Errorf(emlak.EUNREACHABLE, "read %s: %v", url, err)
	}

	html := string(body)
	if noscriptRe.MatchString(html) && !headingRe.MatchString(html) {
		return "", emlak.Errorf(emlak.ERENDER, "%s returned a script-only page", url)
	}
	return html, nil
}

// Download retrieves a binary asset such as a listing photo.
func (f *Fetcher) Download(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.get(ctx, url, "image/avif,image/webp,image/*,*/*;q=0.8")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, emlak.Errorf(emlak.EUNREACHABLE, "read %s: %v", url, err)
	}
	if len(body) > MaxDownloadSize {
		return nil, emlak.Errorf(emlak.EINVALID, "%s exceeds %d bytes", url, MaxDownloadSize)
	}
	return body, nil
}

// get sends a GET request with browser headers and maps failures to
// error codes. The caller closes the body of a successful response.
func (f *Fetcher) get(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, emlak.Errorf(emlak.EINVALID, "invalid url %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", DefaultAcceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, emlak.Errorf(emlak.EUNREACHABLE, "%v", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, statusError(url, resp.StatusCode)
	}
	return resp, nil
}

func statusError(url string, code int) error {
	msg := fmt.Sprintf("HTTP %d for %s", code, url)
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return emlak.Errorf(emlak.EBLOCKED, "%s", msg)
	case http.StatusNotFound, http.StatusGone:
		return emlak.Errorf(emlak.ENOTFOUND, "%s", msg)
	}
	return emlak.Errorf(emlak.EUNREACHABLE, "%s", msg)
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
