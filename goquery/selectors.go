package goquery

// CSS selectors for the listing pages. Earlier entries in a slice win.
var (
	titleSelectors       = []string{"h1.classifiedTitle", "h1"}
	priceSelectors       = []string{".classifiedInfo h3", ".classifiedInfo .price", ".classifiedDetailPrice"}
	descriptionSelectors = []string{"#classifiedDescription", ".uiBoxContainer"}
	ownerSelectors       = []string{".username-info-area a", ".userInfo .username"}

	// labelValueItems pair a bold label with a value span.
	labelValueItems = ".classifiedInfoList li"
	// cellRows hold the label and value in their first two td or span cells.
	cellRows = ".classifiedPropertyList li, .classifiedInfoList tr"
	// headerRows pair a th label with a td value.
	headerRows = "table tr"

	breadcrumbLinks = ".classifiedBreadCrumb a, nav.breadcrumb a, nav.classifiedBreadcrumb a"
	locationHeading = ".classifiedInfo h2"

	imageElements  = "img"
	linkElements   = "a[href]"
	scriptElements = "script"
)
