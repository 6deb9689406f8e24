package model

import (
	"fmt"
	"testing"
)

// classifiedScript is a test helper building a minimal classified script.
func classifiedScript(url, host string, category Category, party PartyLabel, occurrences int) ClassifiedScript {
	return ClassifiedScript{
		ScriptReference: ScriptReference{
			URL:         url,
			Host:        host,
			Occurrences: occurrences,
		},
		Category: category,
		Party:    party,
	}
}

// TestNewSummary tests summary aggregation from a report.
func TestNewSummary(t *testing.T) {
	t.Parallel()

	report := NewScriptMapReport("example.com")
	report.Scripts = []ClassifiedScript{
		classifiedScript("https://example.com/js/app.js", "example.com", CategoryGeneric, PartyFirst, 1),
		classifiedScript("https://www.googletagmanager.com/gtm.js", "www.googletagmanager.com", CategoryAnalytics, PartyThird, 3),
		classifiedScript("https://js.stripe.com/v3/", "js.stripe.com", CategoryPayment, PartyThird, 1),
		classifiedScript("https://www.googletagmanager.com/gtag/js", "www.googletagmanager.com", CategoryAnalytics, PartyThird, 1),
	}
	report.Scripts[2].Notes = []string{"Matched keyword pattern"}

	summary := NewSummary(report)

	t.Run("carries run metadata", func(t *testing.T) {
		t.Parallel()
		if summary.PrimaryDomain != "example.com" {
			t.Errorf("expected primary domain 'example.com', got %q", summary.PrimaryDomain)
		}
		if !summary.DateScanned.Equal(report.DateScanned) {
			t.Error("expected summary date to match report date")
		}
	})

	t.Run("counts totals and parties", func(t *testing.T) {
		t.Parallel()
		if summary.TotalScripts != 4 {
			t.Errorf("expected 4 total scripts, got %d", summary.TotalScripts)
		}
		if summary.FirstPartyCount != 1 {
			t.Errorf("expected 1 first-party script, got %d", summary.FirstPartyCount)
		}
		if summary.ThirdPartyCount != 3 {
			t.Errorf("expected 3 third-party scripts, got %d", summary.ThirdPartyCount)
		}
		if summary.NeedsReviewCount != 1 {
			t.Errorf("expected 1 script needing review, got %d", summary.NeedsReviewCount)
		}
	})

	t.Run("orders categories by count descending", func(t *testing.T) {
		t.Parallel()
		if len(summary.CategoryCounts) != 3 {
			t.Fatalf("expected 3 category rows, got %d", len(summary.CategoryCounts))
		}
		if summary.CategoryCounts[0].Category != CategoryAnalytics || summary.CategoryCounts[0].Count != 2 {
			t.Errorf("expected analytics=2 first, got %s=%d",
				summary.CategoryCounts[0].Category, summary.CategoryCounts[0].Count)
		}
	})

	t.Run("ranks third-party domains by occurrences", func(t *testing.T) {
		t.Parallel()
		if len(summary.TopThirdPartyDomains) != 2 {
			t.Fatalf("expected 2 third-party domains, got %d", len(summary.TopThirdPartyDomains))
		}
		top := summary.TopThirdPartyDomains[0]
		if top.Domain != "www.googletagmanager.com" || top.Count != 4 {
			t.Errorf("expected www.googletagmanager.com=4 first, got %s=%d", top.Domain, top.Count)
		}
	})
}

// TestNewSummaryCategoryTieBreak tests that equal counts order by name.
func TestNewSummaryCategoryTieBreak(t *testing.T) {
	t.Parallel()

	report := NewScriptMapReport("example.com")
	report.Scripts = []ClassifiedScript{
		classifiedScript("https://platform.twitter.com/widgets.js", "platform.twitter.com", CategorySocial, PartyThird, 1),
		classifiedScript("https://www.googletagmanager.com/gtm.js", "www.googletagmanager.com", CategoryAnalytics, PartyThird, 1),
	}

	summary := NewSummary(report)
	if len(summary.CategoryCounts) != 2 {
		t.Fatalf("expected 2 category rows, got %d", len(summary.CategoryCounts))
	}
	if summary.CategoryCounts[0].Category != CategoryAnalytics {
		t.Errorf("expected 'analytics' before 'social' on tie, got %s first",
			summary.CategoryCounts[0].Category)
	}
}

// TestNewSummaryDomainTieBreak tests that equal counts keep first-seen order.
func TestNewSummaryDomainTieBreak(t *testing.T) {
	t.Parallel()

	report := NewScriptMapReport("example.com")
	report.Scripts = []ClassifiedScript{
		classifiedScript("https://z-vendor.net/a.js", "z-vendor.net", CategoryGeneric, PartyThird, 1),
		classifiedScript("https://a-vendor.net/b.js", "a-vendor.net", CategoryGeneric, PartyThird, 1),
	}

	summary := NewSummary(report)
	if len(summary.TopThirdPartyDomains) != 2 {
		t.Fatalf("expected 2 domains, got %d", len(summary.TopThirdPartyDomains))
	}
	if summary.TopThirdPartyDomains[0].Domain != "z-vendor.net" {
		t.Errorf("expected first-seen domain to win tie, got %s first",
			summary.TopThirdPartyDomains[0].Domain)
	}
}

// TestNewSummaryDomainLimit tests that the domain ranking is capped.
func TestNewSummaryDomainLimit(t *testing.T) {
	t.Parallel()

	report := NewScriptMapReport("example.com")
	for i := 0; i < TopDomainLimit+10; i++ {
		host := fmt.Sprintf("vendor%02d.example.net", i)
		report.Scripts = append(report.Scripts,
			classifiedScript("https://"+host+"/x.js", host, CategoryGeneric, PartyThird, 1))
	}

	summary := NewSummary(report)
	if len(summary.TopThirdPartyDomains) != TopDomainLimit {
		t.Errorf("expected domain list capped at %d, got %d",
			TopDomainLimit, len(summary.TopThirdPartyDomains))
	}
}

// TestNewSummarySkipsHostlessThirdParty tests that hostless references do
// not produce a domain ranking entry.
func TestNewSummarySkipsHostlessThirdParty(t *testing.T) {
	t.Parallel()

	report := NewScriptMapReport("example.com")
	report.Scripts = []ClassifiedScript{
		classifiedScript("https://", "", CategoryGeneric, PartyThird, 1),
	}

	summary := NewSummary(report)
	if summary.ThirdPartyCount != 1 {
		t.Errorf("expected hostless script counted as third-party, got %d", summary.ThirdPartyCount)
	}
	if len(summary.TopThirdPartyDomains) != 0 {
		t.Errorf("expected no domain entries for hostless scripts, got %d",
			len(summary.TopThirdPartyDomains))
	}
}

// TestTalkingPoints tests the fixed discussion items.
func TestTalkingPoints(t *testing.T) {
	t.Parallel()

	points := TalkingPoints()
	if len(points) != 5 {
		t.Fatalf("expected 5 talking points, got %d", len(points))
	}
	for i, p := range points {
		if p == "" {
			t.Errorf("talking point %d is empty", i)
		}
	}
}
