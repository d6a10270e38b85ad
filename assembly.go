package emlak

import "context"

// Assembly is the outcome of assembling one listing page.
type Assembly struct {
	Listing *Listing

	// Tiers records which strategy resolved each text field.
	Tiers map[Field]Tier

	// Warnings lists heuristics whose assumptions did not hold for the page.
	Warnings []string
}

// Assembler turns the HTML of one listing page into a Listing.
type Assembler interface {
	// Assemble returns EMALFORMED when html is not markup and EINVALID when
	// source is empty. Any other missing data degrades to default values.
	Assemble(ctx context.Context, source, html string) (*Assembly, error)
}
