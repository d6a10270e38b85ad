package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pelinbingl/emlak"
)

// Compile-time interface verification.
var _ emlak.ListingService = (*ListingService)(nil)

// listingColumns are the stored listing columns in emlak.Columns order.
const listingColumns = `source_reference, listing_id, title, price, city, district, neighborhood,
	gross_area, net_area, room_count, floor, heating, building_age, furnished, swap,
	credit_eligible, in_site, owner_name, phone, description,
	image_references, image_count, is_real_estate`

// ListingService implements emlak.ListingService using SQLite.
type ListingService struct {
	db  *DB
	now func() time.Time
}

// NewListingService creates a new ListingService.
func NewListingService(db *DB) *ListingService {
	return &ListingService{db: db, now: time.Now}
}

// CreateListing stores a listing under a new random ID. Every call adds a
// row, even for a listing stored before.
func (s *ListingService) CreateListing(ctx context.Context, listing *emlak.Listing) error {
	if err := listing.Validate(); err != nil {
		return err
	}

	images, err := json.Marshal(nonNil(listing.ImageReferences))
	if err != nil {
		return fmt.Errorf("encode image references: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO listings (id, `+listingColumns+`, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(),
		listing.SourceReference, listing.ListingID, listing.Title, listing.Price,
		listing.City, listing.District, listing.Neighborhood,
		listing.GrossArea, listing.NetArea, listing.RoomCount, listing.Floor, listing.Heating,
		listing.BuildingAge, listing.Furnished, listing.Swap,
		listing.CreditEligible, listing.InSite, listing.OwnerName, listing.Phone, listing.Description,
		string(images), listing.ImageCount, listing.IsRealEstate,
		hashContent(listing.Description), s.now().UTC().Format(time.RFC3339))

	return err
}

// FindListingByID retrieves a listing by its store ID.
func (s *ListingService) FindListingByID(ctx context.Context, id string) (*emlak.Listing, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+listingColumns+" FROM listings WHERE id = ?", id)

	listing, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, emlak.Errorf(emlak.ENOTFOUND, "listing not found")
	}
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// FindListings retrieves listings matching the filter, newest first.
func (s *ListingService) FindListings(ctx context.Context, filter emlak.ListingFilter) ([]*emlak.Listing, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + listingColumns + " FROM listings WHERE 1=1")

	if filter.ListingID != nil {
		query.WriteString(" AND listing_id = ?")
		args = append(args, *filter.ListingID)
	}
	if filter.City != nil {
		query.WriteString(" AND city = ?")
		args = append(args, *filter.City)
	}
	if filter.District != nil {
		query.WriteString(" AND district = ?")
		args = append(args, *filter.District)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*emlak.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanListing(row scanner) (*emlak.Listing, error) {
	var l emlak.Listing
	var images string

	if err := row.Scan(
		&l.SourceReference, &l.ListingID, &l.Title, &l.Price,
		&l.City, &l.District, &l.Neighborhood,
		&l.GrossArea, &l.NetArea, &l.RoomCount, &l.Floor, &l.Heating,
		&l.BuildingAge, &l.Furnished, &l.Swap,
		&l.CreditEligible, &l.InSite, &l.OwnerName, &l.Phone, &l.Description,
		&images, &l.ImageCount, &l.IsRealEstate,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(images), &l.ImageReferences); err != nil {
		return nil, fmt.Errorf("failed to parse image_references: %w", err)
	}
	return &l, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
