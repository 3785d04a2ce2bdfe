package domain

import "time"

// Outcome is the terminal state of one spec after a reconciliation run.
type Outcome string

const (
	// OutcomeSatisfied means the desired state was already in place; no action taken.
	OutcomeSatisfied Outcome = "AlreadySatisfied"
	// OutcomeInstalled means the spec was absent and was installed this run.
	OutcomeInstalled Outcome = "Installed"
	// OutcomeRepaired means the spec was present but broken and was fixed this run.
	OutcomeRepaired Outcome = "Repaired"
	// OutcomeDegraded means the spec is usable but a soft sub-step failed.
	OutcomeDegraded Outcome = "Degraded"
	// OutcomeFailed means reconciliation gave up on the spec.
	OutcomeFailed Outcome = "Failed"
)

// EntryKind distinguishes dependency entries from plugin entries in the report.
type EntryKind string

const (
	// KindDependency marks a package dependency entry.
	KindDependency EntryKind = "dependency"
	// KindPlugin marks a plugin entry.
	KindPlugin EntryKind = "plugin"
)

// Entry is one reconciled spec's result.
type Entry struct {
	Name    string    `json:"name"`
	Kind    EntryKind `json:"kind"`
	Outcome Outcome   `json:"outcome"`
	Detail  string    `json:"detail,omitempty"`
}

// Report accumulates reconciliation results over a single run.
// The run is strictly sequential, so Report is not safe for concurrent use.
type Report struct {
	entries []Entry
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

// Record appends one result.
func (r *Report) Record(name string, kind EntryKind, outcome Outcome, detail string) {
	r.entries = append(r.entries, Entry{Name: name, Kind: kind, Outcome: outcome, Detail: detail})
}

// Entries returns the recorded results in run order.
func (r *Report) Entries() []Entry {
	return r.entries
}

// FailedPlugins returns the names of plugins that ended the run Failed.
func (r *Report) FailedPlugins() []string {
	var failed []string
	for _, e := range r.entries {
		if e.Kind == KindPlugin && e.Outcome == OutcomeFailed {
			failed = append(failed, e.Name)
		}
	}
	return failed
}

// HasFailures reports whether any entry ended the run Failed.
func (r *Report) HasFailures() bool {
	for _, e := range r.entries {
		if e.Outcome == OutcomeFailed {
			return true
		}
	}
	return false
}

// Counts tallies entries per outcome.
func (r *Report) Counts() map[Outcome]int {
	counts := make(map[Outcome]int)
	for _, e := range r.entries {
		counts[e.Outcome]++
	}
	return counts
}

// Marker is the persisted record of one provisioning run.
type Marker struct {
	RunVersion    string    `json:"run_version"`
	Timestamp     time.Time `json:"timestamp"`
	Framework     string    `json:"framework_version,omitempty"`
	Compiler      string    `json:"compiler_version,omitempty"`
	Frontend      string    `json:"frontend_version,omitempty"`
	PipOK         bool      `json:"pip_ok"`
	AllVerified   bool      `json:"all_verified"`
	FailedPlugins []string  `json:"failed_plugins"`
	Outcomes      []Entry   `json:"outcomes,omitempty"`
}
