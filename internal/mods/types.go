// Package mods discovers installed mods, matches them against the scoring
// database, and produces the sorted active-mod list.
package mods

// Source tells which kind of directory a mod was installed from.
type Source string

const (
	SourceLocal    Source = "local"
	SourceWorkshop Source = "workshop"
)

// Record is one discovered mod folder with usable metadata. The folder name
// is the mod's identity throughout: it is what ModsConfig.xml enumerates.
type Record struct {
	ID     string  // folder name
	Name   string  // cleaned display name
	Score  float64 // load-order score; meaningful only when Known
	Known  bool    // true when the name resolved to a score
	Source Source
}

// ActiveMod pairs an enabled mod ID with its load-order score.
type ActiveMod struct {
	ID    string
	Score float64
}
