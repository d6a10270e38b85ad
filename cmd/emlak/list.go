package main

import (
	"fmt"

	"github.com/pelinbingl/emlak"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if deps.Listings == nil {
		err := emlak.Errorf(emlak.EINVALID, "no database configured; set --db or EMLAK_DB")
		fmt.Fprintf(deps.Stderr, "error: %s\n", emlak.ErrorMessage(err))
		return err
	}

	filter := emlak.ListingFilter{Limit: c.Limit}
	if c.City != "" {
		filter.City = &c.City
	}
	if c.District != "" {
		filter.District = &c.District
	}
	if c.ListingID != "" {
		filter.ListingID = &c.ListingID
	}

	listings, err := deps.Listings.FindListings(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", emlak.ErrorMessage(err))
		return err
	}

	if len(listings) == 0 {
		fmt.Fprintln(deps.Stdout, "No listings found. Use 'emlak parse' or 'emlak fetch' to add some.")
		return nil
	}

	for _, l := range listings {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s/%s  %s\n",
			listingLabel(l), l.Title, l.Price, l.City, l.District, l.SourceReference)
	}

	return nil
}
