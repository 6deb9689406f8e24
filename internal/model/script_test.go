package model

import "testing"

// TestSourceFormString tests the source form names.
func TestSourceFormString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		form SourceForm
		want string
	}{
		{"bare", SourceBare, "bare"},
		{"markup", SourceMarkup, "markup"},
		{"relative", SourceRelative, "relative"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.form.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestScriptReferenceDomainLabel tests the host display fallback.
func TestScriptReferenceDomainLabel(t *testing.T) {
	t.Parallel()

	t.Run("returns host when present", func(t *testing.T) {
		t.Parallel()
		ref := ScriptReference{Host: "cdn.example.net"}
		if got := ref.DomainLabel(); got != "cdn.example.net" {
			t.Errorf("expected 'cdn.example.net', got %q", got)
		}
	})

	t.Run("returns placeholder for hostless reference", func(t *testing.T) {
		t.Parallel()
		ref := ScriptReference{URL: "https://"}
		if got := ref.DomainLabel(); got != "(no host)" {
			t.Errorf("expected '(no host)', got %q", got)
		}
	})
}

// TestClassifiedScriptNeedsReview tests the review predicate.
func TestClassifiedScriptNeedsReview(t *testing.T) {
	t.Parallel()

	t.Run("no notes means no review", func(t *testing.T) {
		t.Parallel()
		s := ClassifiedScript{Category: CategoryAnalytics}
		if s.NeedsReview() {
			t.Error("expected no review needed without notes")
		}
	})

	t.Run("any note flags review", func(t *testing.T) {
		t.Parallel()
		s := ClassifiedScript{Notes: []string{"Matched keyword pattern"}}
		if !s.NeedsReview() {
			t.Error("expected review needed with notes")
		}
	})
}
