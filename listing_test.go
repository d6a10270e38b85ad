package emlak_test

import (
	"fmt"
	"testing"

	"github.com/pelinbingl/emlak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validListing returns a listing that satisfies every record invariant.
func validListing() *emlak.Listing {
	l := &emlak.Listing{SourceReference: "https://example.com/ilan/123", ListingID: "123", IsRealEstate: true}
	for _, c := range emlak.Columns() {
		l.Set(emlak.Field(c), emlak.Unspecified)
	}
	l.SourceReference = "https://example.com/ilan/123"
	l.ListingID = "123"
	l.AttachImages(nil)
	return l
}

func TestColumns(t *testing.T) {
	t.Parallel()

	cols := emlak.Columns()

	require.Len(t, cols, 23)
	assert.Equal(t, "source_reference", cols[0])
	assert.Equal(t, "listing_id", cols[1])
	assert.Equal(t, "is_real_estate", cols[len(cols)-1])

	cols[0] = "changed"
	assert.Equal(t, "source_reference", emlak.Columns()[0])
}

func TestListing_AttachImages(t *testing.T) {
	t.Parallel()

	t.Run("deduplicates preserving order", func(t *testing.T) {
		t.Parallel()

		var l emlak.Listing
		l.AttachImages([]string{"b.jpg", "a.jpg", "", "b.jpg", "c.png"})

		assert.Equal(t, []string{"b.jpg", "a.jpg", "c.png"}, l.ImageReferences)
		assert.Equal(t, 3, l.ImageCount)
	})

	t.Run("caps at the maximum", func(t *testing.T) {
		t.Parallel()

		refs := make([]string, emlak.MaxImages+5)
		for i := range refs {
			refs[i] = fmt.Sprintf("%03d.jpg", i)
		}

		var l emlak.Listing
		l.AttachImages(refs)

		assert.Len(t, l.ImageReferences, emlak.MaxImages)
		assert.Equal(t, emlak.MaxImages, l.ImageCount)
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()

		var l emlak.Listing
		l.AttachImages(nil)

		assert.NotNil(t, l.ImageReferences)
		assert.Zero(t, l.ImageCount)
	})
}

func TestListing_Values(t *testing.T) {
	t.Parallel()

	l := validListing()
	l.Title = "Bahçeli Ev"
	l.AttachImages([]string{"images/01.jpg", "images/02.jpg"})

	values := l.Values()

	require.Len(t, values, len(emlak.Columns()))
	assert.Equal(t, "https://example.com/ilan/123", values[0])
	assert.Equal(t, "123", values[1])
	assert.Equal(t, "Bahçeli Ev", values[2])
	assert.Equal(t, "images/01.jpg;images/02.jpg", l.Value(emlak.FieldImageReferences))
	assert.Equal(t, "2", l.Value(emlak.FieldImageCount))
	assert.Equal(t, "true", values[len(values)-1])
}

func TestListing_Set_IgnoresDerivedFields(t *testing.T) {
	t.Parallel()

	l := validListing()
	l.Set(emlak.FieldImageCount, "7")
	l.Set(emlak.FieldIsRealEstate, "false")

	assert.Zero(t, l.ImageCount)
	assert.True(t, l.IsRealEstate)
}

func TestListing_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(l *emlak.Listing)
		ok     bool
	}{
		{name: "all unspecified", modify: func(*emlak.Listing) {}, ok: true},
		{name: "canonical phone and price", modify: func(l *emlak.Listing) {
			l.Phone = "0 (553) 646 16 31"
			l.Price = "1.250.000 TL"
		}, ok: true},
		{name: "missing listing id allowed", modify: func(l *emlak.Listing) { l.ListingID = "" }, ok: true},
		{name: "missing source", modify: func(l *emlak.Listing) { l.SourceReference = "" }},
		{name: "empty field", modify: func(l *emlak.Listing) { l.Heating = " " }},
		{name: "raw phone", modify: func(l *emlak.Listing) { l.Phone = "444 0 555" }},
		{name: "raw price", modify: func(l *emlak.Listing) { l.Price = "1.250.000" }},
		{name: "count mismatch", modify: func(l *emlak.Listing) { l.ImageCount = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := validListing()
			tt.modify(l)
			err := l.Validate()

			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, emlak.EINVALID, emlak.ErrorCode(err))
		})
	}
}
