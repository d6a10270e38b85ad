// Package assemble merges the extraction strategies into a Listing.
//
// Every field is resolved by a cascade: the page's embedded state, then
// selectors and the attribute table, then patterns over the page text, then
// the configured default policy. The first tier with a usable value wins.
package assemble

import (
	"context"
	"fmt"

	"github.com/pelinbingl/emlak"
)

// Ensure Assembler implements emlak.Assembler at compile time.
var _ emlak.Assembler = (*Assembler)(nil)

// Assembler builds listings from raw HTML.
type Assembler struct {
	State  emlak.StateExtractor
	Fields emlak.FieldExtractor
	Images emlak.ImageFinder

	// Content, if set, supplies the description when no listing
	// description container exists.
	Content emlak.ContentExtractor

	Policy emlak.DefaultPolicy
}

// Assemble extracts one listing from html. source is the URL or path the
// page came from and is used for provenance and the listing number.
func (a *Assembler) Assemble(ctx context.Context, source, html string) (*emlak.Assembly, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if source == "" {
		return nil, emlak.Errorf(emlak.EINVALID, "listing source required")
	}

	ext, err := a.Fields.ExtractFields(html)
	if err != nil {
		return nil, err
	}

	state := &emlak.StructuredState{}
	if a.State != nil {
		if s := a.State.ExtractState(html); s != nil {
			state = s
		}
	}

	p := &page{
		state:   state,
		ext:     ext,
		html:    html,
		content: a.Content,
	}

	listing := &emlak.Listing{
		SourceReference: source,
		ListingID:       emlak.ListingID(source),
		IsRealEstate:    true,
	}
	asm := &emlak.Assembly{
		Listing: listing,
		Tiers:   make(map[emlak.Field]emlak.Tier),
	}

	for _, f := range resolvedFields {
		v, tier := p.cascade(f, a.Policy).Resolve()
		listing.Set(f, v)
		asm.Tiers[f] = tier
	}

	if w := ext.Location.Warning; w != "" && !locationFromState(asm.Tiers) {
		asm.Warnings = append(asm.Warnings, w)
	}

	var refs []string
	if a.Images != nil {
		refs = a.Images.FindImages(html)
	}
	listing.AttachImages(refs)

	if err := listing.Validate(); err != nil {
		return nil, fmt.Errorf("assemble %s: %w", source, err)
	}
	return asm, nil
}

// locationFromState reports whether the embedded state supplied the whole
// location, making page heuristics irrelevant.
func locationFromState(tiers map[emlak.Field]emlak.Tier) bool {
	for _, f := range []emlak.Field{emlak.FieldCity, emlak.FieldDistrict, emlak.FieldNeighborhood} {
		if tiers[f] != emlak.TierState {
			return false
		}
	}
	return true
}
