package emlak

import "regexp"

// Attribute labels used for the location triple.
const (
	LabelCity         = "İl"
	LabelDistrict     = "İlçe"
	LabelNeighborhood = "Mahalle"
)

// attributeLabels lists, per field, the attribute table labels that may
// hold its value, most specific spelling first.
var attributeLabels = map[Field][]string{
	FieldPrice:          {"Fiyat"},
	FieldGrossArea:      {"m² (Brüt)", "Brüt m²", "Brüt Metrekare"},
	FieldNetArea:        {"m² (Net)", "Net m²", "Net Metrekare"},
	FieldRoomCount:      {"Oda Sayısı"},
	FieldFloor:          {"Bulunduğu Kat"},
	FieldHeating:        {"Isıtma"},
	FieldBuildingAge:    {"Bina Yaşı"},
	FieldFurnished:      {"Eşyalı"},
	FieldSwap:           {"Takas"},
	FieldCreditEligible: {"Krediye Uygun", "Krediye Uygunluk"},
	FieldInSite:         {"Site İçerisinde"},
}

// fallbackPatterns are matched against the whole page text when neither the
// structured state nor the attribute table produced a value. The first
// capture group is the value.
var fallbackPatterns = map[Field]*regexp.Regexp{
	FieldPrice:          regexp.MustCompile(`(\d{1,3}(?:\.\d{3})+|\d+)\s*(?:TL|₺)`),
	FieldGrossArea:      areaPattern("Brüt"),
	FieldNetArea:        areaPattern("Net"),
	FieldRoomCount:      regexp.MustCompile(`(?i)Oda\s*Sayısı\s*[:\-]?\s*(\d+\s*\+\s*\d+|\d+)`),
	FieldFloor:          regexp.MustCompile(`(?i)Bulunduğu\s*Kat\s*[:\-]?\s*([\p{L}\p{N}.]+)`),
	FieldHeating:        regexp.MustCompile(`(?i)Isıtma\s*[:\-]?\s*(\p{L}+(?:\s*\(\p{L}+\))?)`),
	FieldBuildingAge:    regexp.MustCompile(`(?i)Bina\s*Yaşı\s*[:\-]?\s*(\d+)`),
	FieldFurnished:      regexp.MustCompile(`(?i)Eşyalı\s*[:\-]?\s*(Evet|Hayır)`),
	FieldSwap:           regexp.MustCompile(`(?i)Takas\s*[:\-]?\s*(Evet|Hayır)`),
	FieldCreditEligible: regexp.MustCompile(`(?i)Krediye\s*Uygun(?:luk)?\s*[:\-]?\s*(Evet|Hayır)`),
	FieldInSite:         regexp.MustCompile(`(?i)Site\s*İçerisinde\s*[:\-]?\s*(Evet|Hayır)`),
}

// AttributeLabels returns the attribute table labels for f in priority order.
func AttributeLabels(f Field) []string {
	labels := attributeLabels[f]
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// FallbackPattern returns the full-text pattern for f, if one is defined.
func FallbackPattern(f Field) (*regexp.Regexp, bool) {
	re, ok := fallbackPatterns[f]
	return re, ok
}

// MatchFallback applies the full-text pattern for f to text and returns the
// captured value, or "" when f has no pattern or nothing matched.
func MatchFallback(f Field, text string) string {
	re, ok := fallbackPatterns[f]
	if !ok {
		return ""
	}
	return firstGroup(re, text)
}
