package assemble

import "github.com/pelinbingl/emlak"

// resolvedFields are the listing fields filled through a cascade, in
// column order. Provenance, image and marker fields are set directly.
var resolvedFields = []emlak.Field{
	emlak.FieldTitle,
	emlak.FieldPrice,
	emlak.FieldCity,
	emlak.FieldDistrict,
	emlak.FieldNeighborhood,
	emlak.FieldGrossArea,
	emlak.FieldNetArea,
	emlak.FieldRoomCount,
	emlak.FieldFloor,
	emlak.FieldHeating,
	emlak.FieldBuildingAge,
	emlak.FieldFurnished,
	emlak.FieldSwap,
	emlak.FieldCreditEligible,
	emlak.FieldInSite,
	emlak.FieldOwnerName,
	emlak.FieldPhone,
	emlak.FieldDescription,
}

// page holds the extraction results of one document.
type page struct {
	state   *emlak.StructuredState
	ext     *emlak.Extraction
	html    string
	content emlak.ContentExtractor
}

// cascade returns the resolution steps for f. Tiers a field has no source
// for are omitted.
func (p *page) cascade(f emlak.Field, policy emlak.DefaultPolicy) emlak.Cascade {
	def := emlak.Step{Tier: emlak.TierDefault, Resolve: func() string { return policy.Default(f) }}

	switch f {
	case emlak.FieldTitle:
		return emlak.Cascade{
			{Tier: emlak.TierState, Resolve: title(p.state.Title)},
			{Tier: emlak.TierSelector, Resolve: title(p.ext.Title)},
			def,
		}
	case emlak.FieldPrice:
		return emlak.Cascade{
			{Tier: emlak.TierState, Resolve: price(p.state.Price)},
			{Tier: emlak.TierSelector, Resolve: func() string {
				if v := price(p.ext.Price)(); v != "" {
					return v
				}
				return price(p.attribute(f))()
			}},
			{Tier: emlak.TierText, Resolve: func() string { return price(emlak.MatchFallback(f, p.ext.Text))() }},
			def,
		}
	case emlak.FieldPhone:
		return emlak.Cascade{
			{Tier: emlak.TierState, Resolve: phone(p.state.Phone)},
			{Tier: emlak.TierSelector, Resolve: phone(p.ext.Phone)},
			def,
		}
	case emlak.FieldCity:
		return p.location(p.state.City, p.ext.Location.City, def)
	case emlak.FieldDistrict:
		return p.location(p.state.District, p.ext.Location.District, def)
	case emlak.FieldNeighborhood:
		return p.location(p.state.Neighborhood, p.ext.Location.Neighborhood, def)
	case emlak.FieldOwnerName:
		return emlak.Cascade{
			{Tier: emlak.TierState, Resolve: collapse(p.state.OwnerName)},
			{Tier: emlak.TierSelector, Resolve: collapse(p.ext.OwnerName)},
			def,
		}
	case emlak.FieldDescription:
		return emlak.Cascade{
			{Tier: emlak.TierState, Resolve: collapse(p.state.Description)},
			{Tier: emlak.TierSelector, Resolve: collapse(p.ext.Description)},
			{Tier: emlak.TierText, Resolve: p.mainContent},
			def,
		}
	case emlak.FieldGrossArea, emlak.FieldNetArea:
		return emlak.Cascade{
			{Tier: emlak.TierSelector, Resolve: func() string { return emlak.NormalizeArea(p.attribute(f)) }},
			{Tier: emlak.TierText, Resolve: func() string { return emlak.MatchFallback(f, p.ext.Text) }},
			def,
		}
	}

	return emlak.Cascade{
		{Tier: emlak.TierSelector, Resolve: func() string { return p.attribute(f) }},
		{Tier: emlak.TierText, Resolve: func() string { return emlak.CollapseWhitespace(emlak.MatchFallback(f, p.ext.Text)) }},
		def,
	}
}

func (p *page) location(state, selector string, def emlak.Step) emlak.Cascade {
	return emlak.Cascade{
		{Tier: emlak.TierState, Resolve: collapse(state)},
		{Tier: emlak.TierSelector, Resolve: collapse(selector)},
		def,
	}
}

// attribute looks f up in the attribute table under each of its labels.
func (p *page) attribute(f emlak.Field) string {
	v, _ := p.ext.Attributes.Pick(emlak.AttributeLabels(f)...)
	return v
}

// mainContent asks the content extractor for the page body. Extraction
// errors leave the description unresolved.
func (p *page) mainContent() string {
	if p.content == nil {
		return ""
	}
	v, err := p.content.ExtractContent(p.html)
	if err != nil {
		return ""
	}
	return emlak.CollapseWhitespace(v)
}

func collapse(s string) func() string {
	return func() string { return emlak.CollapseWhitespace(s) }
}

func title(s string) func() string {
	return func() string { return emlak.StripTitleSuffix(s) }
}

// price yields the normalized price, or "" when raw has no amount so that
// the next tier is consulted.
func price(raw string) func() string {
	return func() string {
		if v := emlak.NormalizePrice(raw); emlak.IsCanonicalPrice(v) {
			return v
		}
		return ""
	}
}

// phone yields the canonical number, or "" for blank or unrecognized input.
func phone(raw string) func() string {
	return func() string {
		if v := emlak.NormalizePhone(raw); emlak.IsCanonicalPhone(v) {
			return v
		}
		return ""
	}
}
