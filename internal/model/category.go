package model

// Category represents the functional purpose of a script resource.
// The taxonomy is fixed; classification always resolves to exactly one
// category, falling back to CategoryGeneric when nothing matches.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Category int

const (
	// CategoryGeneric is the universal fallback for scripts that match
	// no classification rule. Generic scripts are often application
	// bundles served by the site itself.
	CategoryGeneric Category = iota

	// CategoryAnalytics covers visitor measurement and tag management
	// scripts (Google Analytics, GTM, Mixpanel, Matomo, ...).
	CategoryAnalytics

	// CategoryAds covers advertising and ad-delivery scripts
	// (DoubleClick, AdSense, Taboola, ...).
	CategoryAds

	// CategoryCDN covers libraries served from shared CDNs
	// (cdnjs, jsDelivr, unpkg, jQuery CDN, ...).
	CategoryCDN

	// CategoryPayment covers payment provider scripts
	// (Stripe, PayPal, Braintree, ...).
	CategoryPayment

	// CategorySocial covers social network embeds and widgets
	// (Facebook Connect, Twitter widgets, LinkedIn, ...).
	CategorySocial

	// CategoryMonitoring covers error tracking and observability agents
	// (Sentry, Datadog, New Relic, ...).
	CategoryMonitoring

	// CategoryMaps covers mapping and geolocation scripts
	// (Google Maps, Mapbox, Leaflet, ...).
	CategoryMaps
)

// String returns the canonical lowercase name of the category.
// These names appear verbatim in reports and in the history database.
func (c Category) String() string {
	switch c {
	case CategoryAnalytics:
		return "analytics"
	case CategoryAds:
		return "ads"
	case CategoryCDN:
		return "cdn/library"
	case CategoryPayment:
		return "payment"
	case CategorySocial:
		return "social"
	case CategoryMonitoring:
		return "monitoring"
	case CategoryMaps:
		return "maps"
	case CategoryGeneric:
		return "generic"
	default:
		return "generic"
	}
}

// IsValid reports whether the category is one of the enumerated values.
func (c Category) IsValid() bool {
	return c >= CategoryGeneric && c <= CategoryMaps
}

// AllCategories returns every category in display order.
// Useful for iterating breakdown tables with stable ordering.
func AllCategories() []Category {
	return []Category{
		CategoryAnalytics,
		CategoryAds,
		CategoryCDN,
		CategoryPayment,
		CategorySocial,
		CategoryMonitoring,
		CategoryMaps,
		CategoryGeneric,
	}
}

// ParseCategory converts a category name to a Category.
// Unknown names map to CategoryGeneric so that stored or user-supplied
// data can never produce an out-of-range value.
func ParseCategory(s string) Category {
	switch s {
	case "analytics":
		return CategoryAnalytics
	case "ads":
		return CategoryAds
	case "cdn/library", "cdn", "library":
		return CategoryCDN
	case "payment":
		return CategoryPayment
	case "social":
		return CategorySocial
	case "monitoring":
		return CategoryMonitoring
	case "maps":
		return CategoryMaps
	default:
		return CategoryGeneric
	}
}

// MarshalText implements encoding.TextMarshaler so categories serialize
// as their canonical names in JSON output.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}
