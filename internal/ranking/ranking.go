// Package ranking selects the entities whose names most need attention.
package ranking

import (
	"sort"

	"github.com/phobologic/namecheck/internal/model"
)

// Entry is a scored entity with its kind, for cross-kind listings.
type Entry struct {
	Kind   model.EntityKind
	Result model.Result
}

// Lowest returns up to n entries with the lowest scores across classes and
// functions. Ties keep report order (classes before functions).
// If n <= 0, nil is returned.
func Lowest(r *model.Report, n int) []Entry {
	if n <= 0 {
		return nil
	}

	entries := make([]Entry, 0, len(r.Classes)+len(r.Functions))
	for i := range r.Classes {
		entries = append(entries, Entry{Kind: model.Class, Result: r.Classes[i]})
	}
	for i := range r.Functions {
		entries = append(entries, Entry{Kind: model.Function, Result: r.Functions[i]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Result.Score < entries[j].Result.Score
	})

	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
