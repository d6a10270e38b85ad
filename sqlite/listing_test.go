package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/pelinbingl/emlak"
	"github.com/pelinbingl/emlak/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListing(id, city string) *emlak.Listing {
	l := &emlak.Listing{}
	for _, c := range emlak.Columns() {
		l.Set(emlak.Field(c), emlak.Unspecified)
	}
	l.SourceReference = "https://example.com/ilan/" + id
	l.ListingID = id
	l.Title = "Satılık Daire " + id
	l.Price = "1.250.000 TL"
	l.City = city
	l.District = "Süleymanpaşa"
	l.Phone = emlak.NormalizePhone("0532 123 45 67")
	l.Description = "Ferah daire"
	l.IsRealEstate = true
	l.AttachImages([]string{"data/daire/images/01.jpg", "data/daire/images/02.jpg"})
	return l
}

func storedID(t *testing.T, db *sqlite.DB, listingID string) string {
	t.Helper()
	var id string
	err := db.QueryRowContext(context.Background(), "SELECT id FROM listings WHERE listing_id = ?", listingID).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestListingService_CreateListing(t *testing.T) {
	t.Parallel()

	t.Run("stores listing with generated ID and content hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewListingService(db)
		ctx := context.Background()

		err := svc.CreateListing(ctx, newListing("42", "Tekirdağ"))
		require.NoError(t, err)

		var id, hash, createdAt string
		err = db.QueryRowContext(ctx, "SELECT id, content_hash, created_at FROM listings").Scan(&id, &hash, &createdAt)
		require.NoError(t, err)
		assert.Len(t, id, 36)
		assert.Len(t, hash, 16)
		assert.NotEmpty(t, createdAt)
	})

	t.Run("same description gives same content hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewListingService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateListing(ctx, newListing("1", "Tekirdağ")))
		require.NoError(t, svc.CreateListing(ctx, newListing("2", "İstanbul")))

		var distinct int
		err := db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT content_hash) FROM listings").Scan(&distinct)
		require.NoError(t, err)
		assert.Equal(t, 1, distinct)
	})

	t.Run("returns error for invalid listing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewListingService(db)

		err := svc.CreateListing(context.Background(), &emlak.Listing{})

		require.Error(t, err)
		assert.Equal(t, emlak.EINVALID, emlak.ErrorCode(err))
	})
}

func TestListingService_FindListingByID(t *testing.T) {
	t.Parallel()

	t.Run("round trips every field", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewListingService(db)
		ctx := context.Background()
		listing := newListing("42", "Tekirdağ")
		require.NoError(t, svc.CreateListing(ctx, listing))

		got, err := svc.FindListingByID(ctx, storedID(t, db, "42"))

		require.NoError(t, err)
		assert.Equal(t, listing, got)
	})

	t.Run("keeps empty image list", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewListingService(db)
		ctx := context.Background()
		listing := newListing("7", "Tekirdağ")
		listing.AttachImages(nil)
		require.NoError(t, svc.CreateListing(ctx, listing))

		got, err := svc.FindListingByID(ctx, storedID(t, db, "7"))

		require.NoError(t, err)
		assert.Empty(t, got.ImageReferences)
		assert.Zero(t, got.ImageCount)
	})

	t.Run("returns ENOTFOUND for missing listing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewListingService(db)

		_, err := svc.FindListingByID(context.Background(), "yok")

		require.Error(t, err)
		assert.Equal(t, emlak.ENOTFOUND, emlak.ErrorCode(err))
	})
}

func TestListingService_FindListings(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewListingService(db)
	ctx := context.Background()
	for i, city := range []string{"Tekirdağ", "İstanbul", "Tekirdağ", "Tekirdağ"} {
		require.NoError(t, svc.CreateListing(ctx, newListing(fmt.Sprint(i+1), city)))
	}

	city := "Tekirdağ"
	listingID := "2"
	district := "Çorlu"

	tests := []struct {
		name   string
		filter emlak.ListingFilter
		want   []string
	}{
		{
			name:   "all newest first",
			filter: emlak.ListingFilter{},
			want:   []string{"4", "3", "2", "1"},
		},
		{
			name:   "by city",
			filter: emlak.ListingFilter{City: &city},
			want:   []string{"4", "3", "1"},
		},
		{
			name:   "by listing id",
			filter: emlak.ListingFilter{ListingID: &listingID},
			want:   []string{"2"},
		},
		{
			name:   "by district without match",
			filter: emlak.ListingFilter{District: &district},
			want:   nil,
		},
		{
			name:   "limit",
			filter: emlak.ListingFilter{City: &city, Limit: 2},
			want:   []string{"4", "3"},
		},
		{
			name:   "offset without limit",
			filter: emlak.ListingFilter{Offset: 3},
			want:   []string{"1"},
		},
		{
			name:   "limit and offset",
			filter: emlak.ListingFilter{Limit: 1, Offset: 1},
			want:   []string{"3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			listings, err := svc.FindListings(ctx, tt.filter)
			require.NoError(t, err)

			var ids []string
			for _, l := range listings {
				ids = append(ids, l.ListingID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
