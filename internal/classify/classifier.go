package classify

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/weppos/publicsuffix-go/publicsuffix"

	"github.com/redspecter/scriptmap/internal/model"
)

// ErrEmptyPrimaryDomain is returned when the classifier is created
// without a primary domain. Party labeling is meaningless without one.
var ErrEmptyPrimaryDomain = errors.New("primary domain must not be empty")

// Classifier assigns a category and party label to extracted script
// references. It is a pure function of its inputs: the same reference
// and primary domain always yield the same classification.
//
// Design decision: The primary domain and rule table are passed in
// explicitly rather than held as ambient state. This keeps the
// classifier trivially testable and makes the run deterministic.
type Classifier struct {
	// primaryDomain is the normalized registrable domain all hosts are
	// compared against.
	primaryDomain string

	// rules is the ordered classification table, read-only after New.
	rules []Rule
}

// New creates a Classifier for the given primary domain.
// The domain is lowercased and reduced to its registrable form using the
// public suffix list, so "www.example.com" and "example.com" are
// equivalent inputs. Inputs the public suffix list cannot resolve
// (e.g. bare hostnames in test fixtures) are used as-is.
func New(primaryDomain string, rules []Rule) (*Classifier, error) {
	primary := strings.ToLower(strings.Trim(strings.TrimSpace(primaryDomain), "."))
	if primary == "" {
		return nil, ErrEmptyPrimaryDomain
	}

	if registrable, err := publicsuffix.Domain(primary); err == nil {
		primary = registrable
	}

	return &Classifier{
		primaryDomain: primary,
		rules:         rules,
	}, nil
}

// PrimaryDomain returns the normalized registrable domain.
func (c *Classifier) PrimaryDomain() string {
	return c.primaryDomain
}

// ClassifyAll classifies every reference, preserving order.
func (c *Classifier) ClassifyAll(refs []model.ScriptReference) []model.ClassifiedScript {
	scripts := make([]model.ClassifiedScript, 0, len(refs))
	for _, ref := range refs {
		scripts = append(scripts, c.Classify(ref))
	}
	return scripts
}

// Classify returns the classification for a single reference.
// It never fails: unparseable or hostless references degrade to
// generic/third-party with a note flagging them for manual review.
func (c *Classifier) Classify(ref model.ScriptReference) model.ClassifiedScript {
	script := model.ClassifiedScript{
		ScriptReference: ref,
		Category:        model.CategoryGeneric,
		Party:           model.PartyThird,
	}

	if ref.Source == model.SourceRelative {
		script.Notes = append(script.Notes,
			"Relative path; resolves to the serving origin, excluded from party classification")
		return script
	}

	host := hostname(ref.Host)
	if host == "" {
		script.Notes = append(script.Notes, "No host component detected; URL may be malformed")
		return script
	}

	if c.isFirstParty(host) {
		script.Party = model.PartyFirst
	}

	category, pattern, kind, matched := c.matchRules(host, ref.URL)
	if matched {
		script.Category = category
		script.MatchedPattern = pattern
		if kind == PatternKeyword {
			script.Notes = append(script.Notes,
				fmt.Sprintf("Matched keyword pattern %q; verify the vendor manually", pattern))
		}
		return script
	}

	script.Notes = append(script.Notes, genericHeuristics(ref.URL)...)
	return script
}

// isFirstParty reports whether the host is the primary domain or a
// subdomain of it. Suffix matching is anchored on a dot boundary, so
// "example.com.evil.net" never matches primary "example.com".
func (c *Classifier) isFirstParty(host string) bool {
	return host == c.primaryDomain || strings.HasSuffix(host, "."+c.primaryDomain)
}

// matchRules evaluates the rule table with kind precedence: exact host
// rules first, then host suffixes, then keywords against the full URL.
// Within a kind, the first matching rule in table order wins.
func (c *Classifier) matchRules(host, rawURL string) (model.Category, string, PatternKind, bool) {
	lowerURL := strings.ToLower(rawURL)

	for _, kind := range []PatternKind{PatternExactHost, PatternHostSuffix, PatternKeyword} {
		for _, rule := range c.rules {
			if rule.Kind != kind {
				continue
			}
			if ruleMatches(rule, host, lowerURL) {
				return rule.Category, rule.Pattern, rule.Kind, true
			}
		}
	}
	return model.CategoryGeneric, "", PatternKeyword, false
}

// ruleMatches applies a single rule against the host and full URL.
func ruleMatches(rule Rule, host, lowerURL string) bool {
	pattern := strings.ToLower(rule.Pattern)
	switch rule.Kind {
	case PatternExactHost:
		return host == pattern
	case PatternHostSuffix:
		return host == pattern || strings.HasSuffix(host, "."+pattern)
	default:
		return strings.Contains(lowerURL, pattern)
	}
}

// genericHeuristics returns notes for unclassified URLs whose shape
// suggests they still deserve reviewer attention.
func genericHeuristics(rawURL string) []string {
	lower := strings.ToLower(rawURL)
	var notes []string
	if strings.Contains(lower, "widget") {
		notes = append(notes, "Widget-style script (embedded component)")
	}
	if strings.Contains(lower, "track") {
		notes = append(notes, "Tracking-related identifier in URL")
	}
	if strings.Contains(lower, "bundle") || strings.Contains(lower, "vendor") {
		notes = append(notes, "Large JS bundle; may include multiple libraries")
	}
	return notes
}

// hostname strips an optional port from a host component.
func hostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
