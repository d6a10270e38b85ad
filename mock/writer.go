package mock

import (
	"context"

	"github.com/pelinbingl/emlak"
)

var (
	_ emlak.ListingWriter  = (*ListingWriter)(nil)
	_ emlak.ListingService = (*ListingService)(nil)
)

// ListingWriter is a mock implementation of emlak.ListingWriter.
type ListingWriter struct {
	CreateListingFn func(ctx context.Context, listing *emlak.Listing) error
}

func (w *ListingWriter) CreateListing(ctx context.Context, listing *emlak.Listing) error {
	return w.CreateListingFn(ctx, listing)
}

// ListingService is a mock implementation of emlak.ListingService.
type ListingService struct {
	CreateListingFn   func(ctx context.Context, listing *emlak.Listing) error
	FindListingByIDFn func(ctx context.Context, id string) (*emlak.Listing, error)
	FindListingsFn    func(ctx context.Context, filter emlak.ListingFilter) ([]*emlak.Listing, error)
}

func (s *ListingService) CreateListing(ctx context.Context, listing *emlak.Listing) error {
	return s.CreateListingFn(ctx, listing)
}

func (s *ListingService) FindListingByID(ctx context.Context, id string) (*emlak.Listing, error) {
	return s.FindListingByIDFn(ctx, id)
}

func (s *ListingService) FindListings(ctx context.Context, filter emlak.ListingFilter) ([]*emlak.Listing, error) {
	return s.FindListingsFn(ctx, filter)
}
