package model

import "testing"

// TestPartyLabelString tests the party label names.
func TestPartyLabelString(t *testing.T) {
	t.Parallel()

	if got := PartyFirst.String(); got != "first-party" {
		t.Errorf("expected 'first-party', got %q", got)
	}
	if got := PartyThird.String(); got != "third-party" {
		t.Errorf("expected 'third-party', got %q", got)
	}
}

// TestPartyLabelZeroValue tests that the zero value is third-party.
// Unclassifiable references must default to the conservative label.
func TestPartyLabelZeroValue(t *testing.T) {
	t.Parallel()

	var p PartyLabel
	if p != PartyThird {
		t.Error("expected zero value to be PartyThird")
	}
	if p.IsFirstParty() {
		t.Error("expected zero value to not be first-party")
	}
}

// TestPartyLabelIsFirstParty tests the first-party predicate.
func TestPartyLabelIsFirstParty(t *testing.T) {
	t.Parallel()

	if !PartyFirst.IsFirstParty() {
		t.Error("expected PartyFirst to be first-party")
	}
	if PartyThird.IsFirstParty() {
		t.Error("expected PartyThird to not be first-party")
	}
}

// TestPartyLabelMarshalText tests text marshaling round trips.
func TestPartyLabelMarshalText(t *testing.T) {
	t.Parallel()

	data, err := PartyFirst.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "first-party" {
		t.Errorf("expected 'first-party', got %q", string(data))
	}

	var p PartyLabel
	if err := p.UnmarshalText([]byte("first-party")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != PartyFirst {
		t.Error("expected PartyFirst after unmarshal")
	}

	if err := p.UnmarshalText([]byte("anything else")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != PartyThird {
		t.Error("expected unknown labels to unmarshal as PartyThird")
	}
}
