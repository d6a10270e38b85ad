package emlak

import "context"

// Fetcher retrieves the HTML of a listing page.
// Implementations report failures with the EBLOCKED, EUNREACHABLE,
// ENOTFOUND or ERENDER codes.
type Fetcher interface {
	// Fetch returns the HTML at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Downloader retrieves binary assets such as listing images.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
