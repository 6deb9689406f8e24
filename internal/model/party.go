package model

// PartyLabel indicates whether a script is served from the primary
// domain (or one of its subdomains) or from a third party.
type PartyLabel int

const (
	// PartyThird marks scripts whose host is outside the primary domain.
	// Third party is the zero value so that unclassifiable references
	// (no host, malformed URL) default to the conservative label.
	PartyThird PartyLabel = iota

	// PartyFirst marks scripts whose host is the primary domain or a
	// subdomain of it.
	PartyFirst
)

// String returns the human-readable party label.
func (p PartyLabel) String() string {
	if p == PartyFirst {
		return "first-party"
	}
	return "third-party"
}

// IsFirstParty reports whether the label is first-party.
func (p PartyLabel) IsFirstParty() bool {
	return p == PartyFirst
}

// MarshalText implements encoding.TextMarshaler.
func (p PartyLabel) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PartyLabel) UnmarshalText(text []byte) error {
	if string(text) == "first-party" {
		*p = PartyFirst
	} else {
		*p = PartyThird
	}
	return nil
}
