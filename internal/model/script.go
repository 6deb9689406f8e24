package model

// SourceForm describes how a script reference appeared in the input text.
type SourceForm int

const (
	// SourceBare is a standalone absolute URL found in a line.
	SourceBare SourceForm = iota

	// SourceMarkup is a URL extracted from the src attribute of a
	// <script> element.
	SourceMarkup

	// SourceRelative is a markup src value without scheme and host.
	// Relative references are kept in the inventory but cannot be
	// classified by host.
	SourceRelative
)

// String returns the source form name.
func (f SourceForm) String() string {
	switch f {
	case SourceMarkup:
		return "markup"
	case SourceRelative:
		return "relative"
	default:
		return "bare"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f SourceForm) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *SourceForm) UnmarshalText(text []byte) error {
	switch string(text) {
	case "markup":
		*f = SourceMarkup
	case "relative":
		*f = SourceRelative
	default:
		*f = SourceBare
	}
	return nil
}

// ScriptReference is a single deduplicated script URL extracted from the
// input corpus. References are immutable once produced by the extractor;
// duplicate occurrences of the same normalized URL only increment
// Occurrences on the first-seen reference.
type ScriptReference struct {
	// Raw is the trimmed input line the reference was first seen on.
	Raw string `json:"raw"`

	// URL is the extracted URL, normalized only for scheme
	// (protocol-relative URLs get https).
	URL string `json:"url"`

	// Scheme is the lowercase URL scheme. Empty for relative references.
	Scheme string `json:"scheme,omitempty"`

	// Host is the lowercase host component. Empty when the URL has no
	// host (relative src values, malformed tokens like "https://").
	Host string `json:"host,omitempty"`

	// Path is the URL path, "/" when absent.
	Path string `json:"path"`

	// Line is the 1-based line number of first occurrence.
	Line int `json:"line"`

	// Source records how the reference appeared in the input.
	Source SourceForm `json:"source"`

	// Occurrences counts how many times the normalized URL appeared in
	// the corpus, duplicates included.
	Occurrences int `json:"occurrences"`
}

// DomainLabel returns the host or a placeholder for hostless references.
func (r ScriptReference) DomainLabel() string {
	if r.Host == "" {
		return "(no host)"
	}
	return r.Host
}

// ClassifiedScript pairs a ScriptReference with its classification result.
// Values are immutable once produced by the classifier.
type ClassifiedScript struct {
	ScriptReference

	// Category is the assigned taxonomy label. Always valid; unmatched
	// references resolve to CategoryGeneric.
	Category Category `json:"category"`

	// Party labels the script first- or third-party relative to the
	// primary domain.
	Party PartyLabel `json:"party"`

	// MatchedPattern is the rule pattern that determined the category.
	// Empty for generic classifications.
	MatchedPattern string `json:"matched_pattern,omitempty"`

	// Notes flags classifications that deserve manual review:
	// keyword-based matches, malformed URLs, relative paths, and
	// heuristic observations about the URL shape.
	Notes []string `json:"notes,omitempty"`
}

// NeedsReview reports whether the classification used a low-confidence
// path and carries reviewer notes.
func (c ClassifiedScript) NeedsReview() bool {
	return len(c.Notes) > 0
}
