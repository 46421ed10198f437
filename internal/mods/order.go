package mods

import (
	"sort"

	"github.com/rwmods/rwsort/internal/logging"
)

// CoreModID is the game's base module. It must always stay in the active
// list, so it is appended when the configuration omits it.
const CoreModID = "Core"

// EnsureCore appends the Core module when missing from the enabled list.
func EnsureCore(enabled []string) []string {
	for _, id := range enabled {
		if id == CoreModID {
			return enabled
		}
	}
	return append(enabled, CoreModID)
}

// Reconcile partitions the enabled-mod list into mods with a known score and
// the rest. Order is preserved on both sides, and every input ID lands in
// exactly one of the two outputs; IDs with no record at all count as unknown
// rather than being dropped.
func Reconcile(enabled []string, records map[string]Record) (active []ActiveMod, unknownActive []string) {
	log := logging.For("mods")
	for _, id := range enabled {
		if rec, ok := records[id]; ok && rec.Known {
			active = append(active, ActiveMod{ID: id, Score: rec.Score})
			continue
		}
		log.Info().Str("mod", id).Msg("unknown active mod")
		unknownActive = append(unknownActive, id)
	}
	return active, unknownActive
}

// SortActive stable-sorts active mods by score ascending: lower scores load
// earlier. Equal scores keep their relative order from the enabled list,
// which is the tie-breaking convention the category scores encode.
func SortActive(active []ActiveMod) []ActiveMod {
	sorted := make([]ActiveMod, len(active))
	copy(sorted, active)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })
	return sorted
}

// FinalOrder flattens the sorted known mods into the final ID sequence,
// appending the unknown active mods in their original order when keepUnknown
// is set. Empty IDs are dropped.
func FinalOrder(sorted []ActiveMod, unknownActive []string, keepUnknown bool) []string {
	out := make([]string, 0, len(sorted)+len(unknownActive))
	for _, m := range sorted {
		if m.ID != "" {
			out = append(out, m.ID)
		}
	}
	if keepUnknown {
		for _, id := range unknownActive {
			if id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}
