package mock

import (
	"context"

	"github.com/pelinbingl/emlak"
)

var (
	_ emlak.Fetcher       = (*Fetcher)(nil)
	_ emlak.Downloader    = (*Downloader)(nil)
	_ emlak.DomainLimiter = (*DomainLimiter)(nil)
)

// Fetcher is a mock implementation of emlak.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// Downloader is a mock implementation of emlak.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string) ([]byte, error)
}

func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	return d.DownloadFn(ctx, url)
}

// DomainLimiter is a mock implementation of emlak.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
