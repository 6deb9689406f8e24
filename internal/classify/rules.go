package classify

import "github.com/redspecter/scriptmap/internal/model"

// PatternKind describes how a rule pattern is matched against a script.
// Host-based kinds always outrank keyword matching because explicit
// domain knowledge is higher confidence than substring heuristics.
type PatternKind int

const (
	// PatternExactHost matches when the script host equals the pattern.
	PatternExactHost PatternKind = iota

	// PatternHostSuffix matches when the script host equals the pattern
	// or ends with "." plus the pattern.
	PatternHostSuffix

	// PatternKeyword matches when the pattern appears anywhere in the
	// combined host, path, and query. Keyword matches produce a
	// manual-review note on the classified script.
	PatternKeyword
)

// String returns the pattern kind name.
func (k PatternKind) String() string {
	switch k {
	case PatternExactHost:
		return "host"
	case PatternHostSuffix:
		return "suffix"
	default:
		return "keyword"
	}
}

// ParsePatternKind converts a kind name to a PatternKind. Unknown names
// map to PatternKeyword, the lowest-confidence kind.
func ParsePatternKind(s string) PatternKind {
	switch s {
	case "host", "exact":
		return PatternExactHost
	case "suffix":
		return PatternHostSuffix
	default:
		return PatternKeyword
	}
}

// Rule associates a domain or keyword pattern with a category.
// The rule set is static configuration loaded once per run; rules are
// never derived from input.
type Rule struct {
	// Pattern is the host, host suffix, or keyword to match.
	Pattern string

	// Kind selects the matching strategy.
	Kind PatternKind

	// Category is assigned when the rule matches.
	Category model.Category
}

// DefaultRules returns the built-in classification table.
//
// The table is ordered; within a pattern kind the first matching rule
// wins. Kind precedence (exact > suffix > keyword) is enforced by the
// classifier regardless of list position, so grouping here is by vendor
// category for maintainability.
func DefaultRules() []Rule {
	return []Rule{
		// Analytics and tag management
		{Pattern: "www.googletagmanager.com", Kind: PatternExactHost, Category: model.CategoryAnalytics},
		{Pattern: "analytics.google.com", Kind: PatternExactHost, Category: model.CategoryAnalytics},
		{Pattern: "google-analytics.com", Kind: PatternHostSuffix, Category: model.CategoryAnalytics},
		{Pattern: "googletagmanager.com", Kind: PatternHostSuffix, Category: model.CategoryAnalytics},
		{Pattern: "segment.io", Kind: PatternHostSuffix, Category: model.CategoryAnalytics},
		{Pattern: "segment.com", Kind: PatternHostSuffix, Category: model.CategoryAnalytics},
		{Pattern: "mixpanel.com", Kind: PatternHostSuffix, Category: model.CategoryAnalytics},
		{Pattern: "plausible.io", Kind: PatternHostSuffix, Category: model.CategoryAnalytics},
		{Pattern: "hotjar.com", Kind: PatternHostSuffix, Category: model.CategoryAnalytics},
		{Pattern: "gtag/js", Kind: PatternKeyword, Category: model.CategoryAnalytics},
		{Pattern: "gtm.js", Kind: PatternKeyword, Category: model.CategoryAnalytics},
		{Pattern: "matomo", Kind: PatternKeyword, Category: model.CategoryAnalytics},
		{Pattern: "piwik", Kind: PatternKeyword, Category: model.CategoryAnalytics},
		{Pattern: "snowplow", Kind: PatternKeyword, Category: model.CategoryAnalytics},
		{Pattern: "analytics", Kind: PatternKeyword, Category: model.CategoryAnalytics},

		// Advertising
		{Pattern: "doubleclick.net", Kind: PatternHostSuffix, Category: model.CategoryAds},
		{Pattern: "googlesyndication.com", Kind: PatternHostSuffix, Category: model.CategoryAds},
		{Pattern: "adservice.google.com", Kind: PatternExactHost, Category: model.CategoryAds},
		{Pattern: "adnxs.com", Kind: PatternHostSuffix, Category: model.CategoryAds},
		{Pattern: "adsystem.com", Kind: PatternKeyword, Category: model.CategoryAds},
		{Pattern: "taboola", Kind: PatternKeyword, Category: model.CategoryAds},
		{Pattern: "outbrain", Kind: PatternKeyword, Category: model.CategoryAds},
		{Pattern: "/ads/", Kind: PatternKeyword, Category: model.CategoryAds},

		// CDN-hosted libraries
		{Pattern: "ajax.googleapis.com", Kind: PatternExactHost, Category: model.CategoryCDN},
		{Pattern: "code.jquery.com", Kind: PatternExactHost, Category: model.CategoryCDN},
		{Pattern: "cdnjs.cloudflare.com", Kind: PatternExactHost, Category: model.CategoryCDN},
		{Pattern: "jsdelivr.net", Kind: PatternHostSuffix, Category: model.CategoryCDN},
		{Pattern: "unpkg.com", Kind: PatternHostSuffix, Category: model.CategoryCDN},
		{Pattern: "cloudflare.com", Kind: PatternHostSuffix, Category: model.CategoryCDN},
		{Pattern: "cdn.", Kind: PatternKeyword, Category: model.CategoryCDN},
		{Pattern: "cdnjs", Kind: PatternKeyword, Category: model.CategoryCDN},
		{Pattern: "static.", Kind: PatternKeyword, Category: model.CategoryCDN},
		{Pattern: "bootstrap", Kind: PatternKeyword, Category: model.CategoryCDN},

		// Payments
		{Pattern: "js.stripe.com", Kind: PatternExactHost, Category: model.CategoryPayment},
		{Pattern: "stripe.com", Kind: PatternHostSuffix, Category: model.CategoryPayment},
		{Pattern: "paypalobjects.com", Kind: PatternHostSuffix, Category: model.CategoryPayment},
		{Pattern: "paypal.com", Kind: PatternHostSuffix, Category: model.CategoryPayment},
		{Pattern: "braintreepayments.com", Kind: PatternHostSuffix, Category: model.CategoryPayment},
		{Pattern: "checkout.", Kind: PatternKeyword, Category: model.CategoryPayment},

		// Social embeds
		{Pattern: "connect.facebook.net", Kind: PatternExactHost, Category: model.CategorySocial},
		{Pattern: "platform.twitter.com", Kind: PatternExactHost, Category: model.CategorySocial},
		{Pattern: "facebook.com", Kind: PatternHostSuffix, Category: model.CategorySocial},
		{Pattern: "linkedin.com", Kind: PatternHostSuffix, Category: model.CategorySocial},
		{Pattern: "twitter.com/widgets", Kind: PatternKeyword, Category: model.CategorySocial},
		{Pattern: "snap.", Kind: PatternKeyword, Category: model.CategorySocial},

		// Monitoring and error tracking
		{Pattern: "sentry.io", Kind: PatternHostSuffix, Category: model.CategoryMonitoring},
		{Pattern: "browser.sentry-cdn.com", Kind: PatternExactHost, Category: model.CategoryMonitoring},
		{Pattern: "datadoghq.com", Kind: PatternHostSuffix, Category: model.CategoryMonitoring},
		{Pattern: "bugsnag", Kind: PatternKeyword, Category: model.CategoryMonitoring},
		{Pattern: "newrelic", Kind: PatternKeyword, Category: model.CategoryMonitoring},
		{Pattern: "rollbar", Kind: PatternKeyword, Category: model.CategoryMonitoring},
		{Pattern: "logrocket", Kind: PatternKeyword, Category: model.CategoryMonitoring},

		// Maps
		{Pattern: "maps.googleapis.com", Kind: PatternExactHost, Category: model.CategoryMaps},
		{Pattern: "mapbox.com", Kind: PatternHostSuffix, Category: model.CategoryMaps},
		{Pattern: "leaflet", Kind: PatternKeyword, Category: model.CategoryMaps},
		{Pattern: "openstreetmap", Kind: PatternKeyword, Category: model.CategoryMaps},
	}
}
