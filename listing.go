package emlak

import (
	"context"
	"strconv"
	"strings"
)

// MaxImages caps the number of image references attached to a listing.
const MaxImages = 100

// Field names a Listing column. The string value is the column header used
// by tabular stores and the JSON key used by meta files.
type Field string

// Listing fields in canonical column order.
const (
	FieldSourceReference Field = "source_reference"
	FieldListingID       Field = "listing_id"
	FieldTitle           Field = "title"
	FieldPrice           Field = "price"
	FieldCity            Field = "city"
	FieldDistrict        Field = "district"
	FieldNeighborhood    Field = "neighborhood"
	FieldGrossArea       Field = "gross_area"
	FieldNetArea         Field = "net_area"
	FieldRoomCount       Field = "room_count"
	FieldFloor           Field = "floor"
	FieldHeating         Field = "heating"
	FieldBuildingAge     Field = "building_age"
	FieldFurnished       Field = "furnished"
	FieldSwap            Field = "swap"
	FieldCreditEligible  Field = "credit_eligible"
	FieldInSite          Field = "in_site"
	FieldOwnerName       Field = "owner_name"
	FieldPhone           Field = "phone"
	FieldDescription     Field = "description"
	FieldImageReferences Field = "image_references"
	FieldImageCount      Field = "image_count"
	FieldIsRealEstate    Field = "is_real_estate"
)

var columns = []Field{
	FieldSourceReference, FieldListingID, FieldTitle, FieldPrice,
	FieldCity, FieldDistrict, FieldNeighborhood,
	FieldGrossArea, FieldNetArea, FieldRoomCount, FieldFloor, FieldHeating,
	FieldBuildingAge, FieldFurnished, FieldSwap, FieldCreditEligible, FieldInSite,
	FieldOwnerName, FieldPhone, FieldDescription,
	FieldImageReferences, FieldImageCount, FieldIsRealEstate,
}

// Columns returns the canonical column order as header strings.
func Columns() []string {
	out := make([]string, len(columns))
	for i, f := range columns {
		out[i] = string(f)
	}
	return out
}

// Listing is the canonical record extracted from one listing page.
type Listing struct {
	SourceReference string   `json:"source_reference"`
	ListingID       string   `json:"listing_id"`
	Title           string   `json:"title"`
	Price           string   `json:"price"`
	City            string   `json:"city"`
	District        string   `json:"district"`
	Neighborhood    string   `json:"neighborhood"`
	GrossArea       string   `json:"gross_area"`
	NetArea         string   `json:"net_area"`
	RoomCount       string   `json:"room_count"`
	Floor           string   `json:"floor"`
	Heating         string   `json:"heating"`
	BuildingAge     string   `json:"building_age"`
	Furnished       string   `json:"furnished"`
	Swap            string   `json:"swap"`
	CreditEligible  string   `json:"credit_eligible"`
	InSite          string   `json:"in_site"`
	OwnerName       string   `json:"owner_name"`
	Phone           string   `json:"phone"`
	Description     string   `json:"description"`
	ImageReferences []string `json:"image_references"`
	ImageCount      int      `json:"image_count"`
	IsRealEstate    bool     `json:"is_real_estate"`
}

// AttachImages sets the image references of the listing. Duplicates are
// dropped keeping first-seen order, the list is capped at MaxImages and
// ImageCount is kept equal to its length.
func (l *Listing) AttachImages(refs []string) {
	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
		if len(out) == MaxImages {
			break
		}
	}
	l.ImageReferences = out
	l.ImageCount = len(out)
}

// Value returns the string form of a single field.
func (l *Listing) Value(f Field) string {
	switch f {
	case FieldSourceReference:
		return l.SourceReference
	case FieldListingID:
		return l.ListingID
	case FieldTitle:
		return l.Title
	case FieldPrice:
		return l.Price
	case FieldCity:
		return l.City
	case FieldDistrict:
		return l.District
	case FieldNeighborhood:
		return l.Neighborhood
	case FieldGrossArea:
		return l.GrossArea
	case FieldNetArea:
		return l.NetArea
	case FieldRoomCount:
		return l.RoomCount
	case FieldFloor:
		return l.Floor
	case FieldHeating:
		return l.Heating
	case FieldBuildingAge:
		return l.BuildingAge
	case FieldFurnished:
		return l.Furnished
	case FieldSwap:
		return l.Swap
	case FieldCreditEligible:
		return l.CreditEligible
	case FieldInSite:
		return l.InSite
	case FieldOwnerName:
		return l.OwnerName
	case FieldPhone:
		return l.Phone
	case FieldDescription:
		return l.Description
	case FieldImageReferences:
		return strings.Join(l.ImageReferences, ";")
	case FieldImageCount:
		return strconv.Itoa(l.ImageCount)
	case FieldIsRealEstate:
		return strconv.FormatBool(l.IsRealEstate)
	}
	return ""
}

// Set assigns a string value to a text field. Image and marker fields are
// derived and cannot be set this way.
func (l *Listing) Set(f Field, v string) {
	switch f {
	case FieldSourceReference:
		l.SourceReference = v
	case FieldListingID:
		l.ListingID = v
	case FieldTitle:
		l.Title = v
	case FieldPrice:
		l.Price = v
	case FieldCity:
		l.City = v
	case FieldDistrict:
		l.District = v
	case FieldNeighborhood:
		l.Neighborhood = v
	case FieldGrossArea:
		l.GrossArea = v
	case FieldNetArea:
		l.NetArea = v
	case FieldRoomCount:
		l.RoomCount = v
	case FieldFloor:
		l.Floor = v
	case FieldHeating:
		l.Heating = v
	case FieldBuildingAge:
		l.BuildingAge = v
	case FieldFurnished:
		l.Furnished = v
	case FieldSwap:
		l.Swap = v
	case FieldCreditEligible:
		l.CreditEligible = v
	case FieldInSite:
		l.InSite = v
	case FieldOwnerName:
		l.OwnerName = v
	case FieldPhone:
		l.Phone = v
	case FieldDescription:
		l.Description = v
	}
}

// Values renders the listing as one row in Columns order.
// Image references are joined with ";".
func (l *Listing) Values() []string {
	out := make([]string, len(columns))
	for i, f := range columns {
		out[i] = l.Value(f)
	}
	return out
}

// Validate returns an error if the listing breaks a record invariant.
func (l *Listing) Validate() error {
	if l.SourceReference == "" {
		return Errorf(EINVALID, "listing source reference required")
	}
	for _, f := range columns {
		switch f {
		case FieldListingID, FieldImageReferences, FieldImageCount, FieldIsRealEstate:
			continue
		}
		if strings.TrimSpace(l.Value(f)) == "" {
			return Errorf(EINVALID, "listing field %q is empty", f)
		}
	}
	if l.Phone != Unspecified && !IsCanonicalPhone(l.Phone) {
		return Errorf(EINVALID, "listing phone %q is not canonical", l.Phone)
	}
	if l.Price != Unspecified && !IsCanonicalPrice(l.Price) {
		return Errorf(EINVALID, "listing price %q is not canonical", l.Price)
	}
	if l.ImageCount != len(l.ImageReferences) {
		return Errorf(EINVALID, "listing image count %d does not match %d references", l.ImageCount, len(l.ImageReferences))
	}
	return nil
}

// ListingWriter persists listings.
type ListingWriter interface {
	CreateListing(ctx context.Context, listing *Listing) error
}

// ListingService represents a service for querying stored listings.
type ListingService interface {
	ListingWriter

	// FindListingByID retrieves a stored listing by its store ID.
	// Returns ENOTFOUND if the listing does not exist.
	FindListingByID(ctx context.Context, id string) (*Listing, error)

	// FindListings retrieves listings matching the filter.
	FindListings(ctx context.Context, filter ListingFilter) ([]*Listing, error)
}

// ListingFilter represents a filter for FindListings.
type ListingFilter struct {
	ListingID *string `json:"listingId"`
	City      *string `json:"city"`
	District  *string `json:"district"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
