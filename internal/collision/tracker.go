// Package collision tracks the derived column names of a merged header and
// reports names that occur more than once.
package collision

import "github.com/arloliu/tsfuse/internal/hash"

// Tracker records column names by their xxHash64 ID. Two sources sharing a
// basename (acc.csv and acc.log) produce identical derived names; the tracker
// lets the merge engine report those instead of silently emitting a header
// with repeated names.
type Tracker struct {
	names      map[uint64][]string // ID -> distinct names seen with that ID
	duplicates []string
	reported   map[string]bool
}

// NewTracker creates a new, empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:    make(map[uint64][]string),
		reported: make(map[string]bool),
	}
}

// Track records a column name and returns true if the name was already tracked.
//
// Hash collisions between distinct names are resolved by comparing the names,
// so only true duplicates are reported.
func (t *Tracker) Track(name string) bool {
	id := hash.ID(name)

	for _, existing := range t.names[id] {
		if existing == name {
			if !t.reported[name] {
				t.reported[name] = true
				t.duplicates = append(t.duplicates, name)
			}

			return true
		}
	}
	t.names[id] = append(t.names[id], name)

	return false
}

// HasDuplicates returns true if any tracked name occurred more than once.
func (t *Tracker) HasDuplicates() bool {
	return len(t.duplicates) > 0
}

// Duplicates returns each repeated name once, in the order it was first repeated.
func (t *Tracker) Duplicates() []string {
	return t.duplicates
}
