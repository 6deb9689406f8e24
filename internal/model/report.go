package model

import "time"

// ScriptMapReport is the main scan result structure.
// It contains every classified script from a single pass over the input
// corpus, along with the run parameters needed to reproduce it.
//
// Design decision: We use a single struct rather than separate extraction
// and classification results to simplify serialization and database
// storage. The Summary sub-struct groups the aggregate view for output.
type ScriptMapReport struct {
	// PrimaryDomain is the registrable domain the run was evaluated
	// against, after normalization.
	PrimaryDomain string `json:"primary_domain"`

	// DateScanned is the timestamp when the scan was performed.
	DateScanned time.Time `json:"date_scanned"`

	// InputFiles lists the input file paths in the order they were read.
	InputFiles []string `json:"input_files,omitempty"`

	// Scripts contains all classified script references in first-seen
	// order. One entry per unique normalized URL.
	Scripts []ClassifiedScript `json:"scripts"`

	// Summary contains the aggregated view for human-readable output.
	Summary *Summary `json:"summary,omitempty"`
}

// NewScriptMapReport creates a report shell for the given primary domain.
func NewScriptMapReport(primaryDomain string) *ScriptMapReport {
	return &ScriptMapReport{
		PrimaryDomain: primaryDomain,
		DateScanned:   time.Now(),
		Scripts:       make([]ClassifiedScript, 0),
	}
}

// TotalScripts returns the number of unique classified scripts.
func (r *ScriptMapReport) TotalScripts() int {
	return len(r.Scripts)
}

// FirstPartyCount returns the number of first-party scripts.
func (r *ScriptMapReport) FirstPartyCount() int {
	count := 0
	for _, s := range r.Scripts {
		if s.Party.IsFirstParty() {
			count++
		}
	}
	return count
}

// ThirdPartyCount returns the number of third-party scripts.
func (r *ScriptMapReport) ThirdPartyCount() int {
	return len(r.Scripts) - r.FirstPartyCount()
}
