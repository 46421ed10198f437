// Package report writes the unknown-mod report that gets submitted to the
// database maintainers for categorization.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rwmods/rwsort/internal/mods"
)

// SchemaVersion identifies the report layout for the database maintainers.
const SchemaVersion = 2

// statusPlaceholder marks every entry as awaiting manual categorization.
const statusPlaceholder = "not_categorized"

// redactedLocal stands in for the real path of locally installed mods: the
// report never discloses the user's filesystem layout.
const redactedLocal = "<RimWorld install directory>/Mods/"

const workshopURL = "https://steamcommunity.com/sharedfiles/filedetails/?id="

// Meta describes the run that produced the report.
type Meta struct {
	Contributor string `json:"contributor"`
	ModsUnknown int    `json:"mods_unknown"`
	ModsKnown   int    `json:"mods_known"`
	GameVersion string `json:"rimworld_version"`
	ToolVersion string `json:"rwsort_version"`
	OS          string `json:"os"`
	Time        string `json:"time"`
}

// Report is the full unknown-mod document. Unknown maps each display name to
// a (status, location hint) pair.
type Report struct {
	Version int                  `json:"version"`
	Meta    Meta                 `json:"meta"`
	Unknown map[string][2]string `json:"unknown"`
}

// New assembles a report covering every unknown mod found this run, active
// or not. steamEnabled decides whether workshop mods get a public URL hint.
func New(unknown map[string]mods.Record, meta Meta, steamEnabled bool) *Report {
	meta.ModsUnknown = len(unknown)
	entries := make(map[string][2]string, len(unknown))
	for _, rec := range unknown {
		entries[rec.Name] = [2]string{statusPlaceholder, location(rec, steamEnabled)}
	}
	return &Report{Version: SchemaVersion, Meta: meta, Unknown: entries}
}

// location is a public workshop URL for workshop mods and a redacted
// placeholder for local ones.
func location(rec mods.Record, steamEnabled bool) string {
	switch {
	case rec.Source == mods.SourceLocal:
		return redactedLocal + rec.ID
	case steamEnabled:
		return workshopURL + rec.ID
	default:
		return ""
	}
}

// FileName returns the timestamped report file name.
func FileName(now time.Time) string {
	return fmt.Sprintf("rwsort_unknown_mods_%s.json.txt", now.Format("20060102-1504"))
}

// Write renders the report as indented JSON to path.
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", " ")
	if err != nil {
		return fmt.Errorf("encoding unknown-mod report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing unknown-mod report: %w", err)
	}
	return nil
}
