package model

import (
	"sort"
	"time"
)

// TopDomainLimit caps the number of third-party domains listed in the
// summary. Anything beyond the top 20 is noise for a review discussion.
const TopDomainLimit = 20

// Summary is the aggregated, human-readable view of a scan.
// It extracts counts and rankings from the full report for quick review.
//
// Design decision: We keep the summary separate from ScriptMapReport
// rather than printing parts of it directly because:
// 1. It provides a consistent, curated view of the most important numbers
// 2. It can be serialized to JSON for tools that want structured output
// 3. It separates presentation concerns from data collection
type Summary struct {
	// PrimaryDomain is the domain the scan was evaluated against.
	PrimaryDomain string `json:"primary_domain"`

	// DateScanned is when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// TotalScripts is the number of unique scripts detected.
	TotalScripts int `json:"total_scripts"`

	// FirstPartyCount is the number of first-party scripts.
	FirstPartyCount int `json:"first_party_count"`

	// ThirdPartyCount is the number of third-party scripts.
	ThirdPartyCount int `json:"third_party_count"`

	// NeedsReviewCount is the number of scripts carrying reviewer notes.
	NeedsReviewCount int `json:"needs_review_count"`

	// CategoryCounts is the per-category breakdown, ordered by count
	// descending with ties broken by category name.
	CategoryCounts []CategoryCount `json:"category_counts,omitempty"`

	// TopThirdPartyDomains ranks third-party hosts by total occurrence
	// count descending, ties broken by first-seen order. Capped at
	// TopDomainLimit entries.
	TopThirdPartyDomains []DomainCount `json:"top_third_party_domains,omitempty"`
}

// CategoryCount is one row of the category breakdown.
type CategoryCount struct {
	// Category is the taxonomy label.
	Category Category `json:"category"`

	// Count is the number of unique scripts in the category.
	Count int `json:"count"`
}

// DomainCount is one row of the third-party domain ranking.
type DomainCount struct {
	// Domain is the script host.
	Domain string `json:"domain"`

	// Count is the total occurrence count across the corpus,
	// duplicates included.
	Count int `json:"count"`
}

// TalkingPoints returns the fixed list of suggested discussion items for
// security reviews. The text is static and not derived from scan data.
func TalkingPoints() []string {
	return []string{
		"Review all **third-party analytics and tracking scripts** for data minimisation and consent.",
		"Consider **Subresource Integrity (SRI)** for CDN-hosted libraries where feasible.",
		"Tighten your **Content-Security-Policy (CSP)** `script-src` to only allow the domains listed here.",
		"Audit embedded **payment, social, and widget scripts** for unnecessary permissions and data access.",
		"Maintain this script inventory as part of your **vendor and supply-chain security** documentation.",
	}
}

// NewSummary builds the aggregated summary from a full report.
func NewSummary(report *ScriptMapReport) *Summary {
	s := &Summary{
		PrimaryDomain: report.PrimaryDomain,
		DateScanned:   report.DateScanned,
		TotalScripts:  len(report.Scripts),
	}

	categoryCounts := make(map[Category]int)
	domainCounts := make(map[string]int)
	domainFirstSeen := make(map[string]int)

	for i, script := range report.Scripts {
		categoryCounts[script.Category]++

		if script.Party.IsFirstParty() {
			s.FirstPartyCount++
		} else {
			s.ThirdPartyCount++
			if script.Host != "" {
				domainCounts[script.Host] += script.Occurrences
				if _, seen := domainFirstSeen[script.Host]; !seen {
					domainFirstSeen[script.Host] = i
				}
			}
		}

		if script.NeedsReview() {
			s.NeedsReviewCount++
		}
	}

	s.CategoryCounts = sortCategoryCounts(categoryCounts)
	s.TopThirdPartyDomains = sortDomainCounts(domainCounts, domainFirstSeen)

	return s
}

// sortCategoryCounts orders the breakdown by count descending, then by
// category name ascending.
func sortCategoryCounts(counts map[Category]int) []CategoryCount {
	result := make([]CategoryCount, 0, len(counts))
	for cat, count := range counts {
		result = append(result, CategoryCount{Category: cat, Count: count})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Category.String() < result[j].Category.String()
	})
	return result
}

// sortDomainCounts orders domains by occurrence count descending with
// ties broken by first-seen order, then applies TopDomainLimit.
func sortDomainCounts(counts map[string]int, firstSeen map[string]int) []DomainCount {
	result := make([]DomainCount, 0, len(counts))
	for domain, count := range counts {
		result = append(result, DomainCount{Domain: domain, Count: count})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return firstSeen[result[i].Domain] < firstSeen[result[j].Domain]
	})

	if len(result) > TopDomainLimit {
		result = result[:TopDomainLimit]
	}
	return result
}
