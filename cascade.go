package emlak

import "strings"

// Tier identifies the extraction strategy that resolved a field.
// Lower tiers take precedence.
type Tier int

// Extraction tiers in priority order.
const (
	TierNone Tier = iota
	TierState
	TierSelector
	TierText
	TierDefault
)

// String returns the tier name used in logs.
func (t Tier) String() string {
	switch t {
	case TierState:
		return "state"
	case TierSelector:
		return "selector"
	case TierText:
		return "text"
	case TierDefault:
		return "default"
	}
	return "none"
}

// Step is one strategy of a Cascade. Resolve returns "" when the strategy
// has no value for the field.
type Step struct {
	Tier    Tier
	Resolve func() string
}

// Cascade resolves one field by trying its steps in order.
type Cascade []Step

// Resolve returns the first non-blank value and the tier that produced it.
// Steps after the first hit are not evaluated.
func (c Cascade) Resolve() (string, Tier) {
	for _, step := range c {
		if step.Resolve == nil {
			continue
		}
		if v := step.Resolve(); strings.TrimSpace(v) != "" {
			return v, step.Tier
		}
	}
	return "", TierNone
}

// DefaultPolicy decides the value of a field no extraction tier resolved.
type DefaultPolicy string

// Supported default policies.
const (
	// PolicySentinel stores Unspecified in every unresolved field.
	PolicySentinel DefaultPolicy = "sentinel"

	// PolicySite substitutes plausible values for the target site's
	// attributes, owner and location. Price, phone, areas and description
	// still fall back to Unspecified.
	PolicySite DefaultPolicy = "site"
)

var siteDefaults = map[Field]string{
	FieldCity:           "Tekirdağ",
	FieldDistrict:       "Süleymanpaşa",
	FieldNeighborhood:   "100. Yıl Mah.",
	FieldRoomCount:      "2+1",
	FieldFloor:          "4. Kat",
	FieldHeating:        "Kombi (Doğalgaz)",
	FieldBuildingAge:    "0 (Yeni)",
	FieldFurnished:      "Hayır",
	FieldSwap:           "Evet",
	FieldCreditEligible: "Evet",
	FieldInSite:         "Evet",
	FieldOwnerName:      "ELİF DEMİRLER GAYRİMENKUL",
}

// ParseDefaultPolicy parses a policy name. An empty name selects PolicySentinel.
func ParseDefaultPolicy(s string) (DefaultPolicy, error) {
	switch p := DefaultPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicySentinel, nil
	case PolicySentinel, PolicySite:
		return p, nil
	}
	return "", Errorf(EINVALID, "unknown default policy %q", s)
}

// Default returns the value stored in f when nothing else resolved it.
func (p DefaultPolicy) Default(f Field) string {
	if p == PolicySite {
		if v, ok := siteDefaults[f]; ok {
			return v
		}
	}
	return Unspecified
}

// String implements fmt.Stringer.
func (p DefaultPolicy) String() string {
	if p == "" {
		return string(PolicySentinel)
	}
	return string(p)
}
