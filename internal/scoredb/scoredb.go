// Package scoredb downloads and queries the RWMSDB scoring source: a
// category → score table and a mod name → category table. The two documents
// together decide where every known mod lands in the load order.
package scoredb

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCategory means a mod name resolved to a category the score table
// does not define. That indicates a corrupt or mismatched database pair and
// aborts the run so it can be reported to the database maintainer.
var ErrUnknownCategory = errors.New("category has no defined score")

// Database is the in-memory scoring source for one run. It is assembled once
// (from the network or the local cache) and never mutated afterwards.
type Database struct {
	Version      int
	Timestamp    string
	Scores       map[string]float64 // category → load-order score
	Categories   map[string]string  // cleaned mod name → category
	Contributors map[string]int     // contributor → number of categorized mods
}

// Lookup resolves a cleaned display name to its load-order score. ok is
// false when the name is not in the database at all. A non-nil error wraps
// ErrUnknownCategory and is fatal to the caller.
func (d *Database) Lookup(name string) (score float64, ok bool, err error) {
	category, found := d.Categories[name]
	if !found {
		return 0, false, nil
	}
	score, found = d.Scores[category]
	if !found {
		return 0, false, fmt.Errorf("mod %q maps to category %q: %w", name, category, ErrUnknownCategory)
	}
	return score, true, nil
}

// Contributor is one database contributor with their categorized-mod count.
type Contributor struct {
	Name string
	Mods int
}

// TopContributors returns up to n contributors ordered by mod count
// descending, name ascending on ties.
func (d *Database) TopContributors(n int) []Contributor {
	all := make([]Contributor, 0, len(d.Contributors))
	for name, count := range d.Contributors {
		all = append(all, Contributor{Name: name, Mods: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Mods != all[j].Mods {
			return all[i].Mods > all[j].Mods
		}
		return all[i].Name < all[j].Name
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}
