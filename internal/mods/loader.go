package mods

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/rwmods/rwsort/internal/logging"
	"github.com/rwmods/rwsort/internal/names"
)

// ScoreLookup resolves a cleaned display name to its score. ok is false when
// the name is not in the database; a non-nil error aborts the scan (it means
// the database itself is broken, not the mod).
type ScoreLookup func(name string) (score float64, ok bool, err error)

// NameResolver recovers a display name for a mod whose descriptor could not
// be parsed, keyed by the mod's folder ID.
type NameResolver interface {
	Resolve(id string) (string, error)
}

// Load scans the immediate subdirectories of dir and returns one Record per
// mod with a resolvable display name, keyed by folder ID. Folders without a
// usable descriptor are skipped with a warning, never an error. resolver may
// be nil, in which case malformed descriptors are only skipped.
func Load(dir string, lookup ScoreLookup, source Source, resolver NameResolver) (map[string]Record, error) {
	log := logging.For("mods")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading mod directory %s: %w", dir, err)
	}

	records := make(map[string]Record, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()

		name, err := readDisplayName(filepath.Join(dir, id, "About", "About.xml"))
		switch {
		case err == nil:
		case os.IsNotExist(err):
			log.Warn().Str("mod", id).Msg("no About.xml, skipping (probably a scenario)")
			continue
		case resolver == nil:
			log.Warn().Str("mod", id).Err(err).Msg("unreadable About.xml, no fallback available, skipping")
			continue
		default:
			name, err = resolver.Resolve(id)
			if err != nil {
				log.Warn().Str("mod", id).Err(err).Msg("unreadable About.xml and workshop fallback failed, skipping")
				continue
			}
			log.Info().Str("mod", id).Str("name", name).Msg("recovered display name from workshop page")
		}

		clean := names.Clean(name)
		score, known, err := lookup(clean)
		if err != nil {
			return nil, fmt.Errorf("mod %q (folder %s): %w", clean, id, err)
		}
		if !known {
			log.Debug().Str("mod", id).Str("name", clean).Msg("not in score database")
		}

		records[id] = Record{ID: id, Name: clean, Score: score, Known: known, Source: source}
	}
	return records, nil
}

// readDisplayName extracts the <name> element from an About.xml descriptor.
func readDisplayName(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	name := doc.FindElement("//ModMetaData/name")
	if name == nil {
		name = doc.FindElement("//name")
	}
	if name == nil || strings.TrimSpace(name.Text()) == "" {
		return "", fmt.Errorf("%s has no <name> element", path)
	}
	return strings.TrimSpace(name.Text()), nil
}

// Merge combines the local and workshop scans into one record set. Workshop
// metadata wins when the same ID appears in both directories; each collision
// is logged so the precedence is visible.
func Merge(local, workshop map[string]Record) map[string]Record {
	log := logging.For("mods")
	merged := make(map[string]Record, len(local)+len(workshop))
	for id, rec := range local {
		merged[id] = rec
	}
	for id, rec := range workshop {
		if _, dup := merged[id]; dup {
			log.Warn().Str("mod", id).Msg("installed both locally and from the workshop; using workshop metadata")
		}
		merged[id] = rec
	}
	return merged
}

// Partition splits records into known (scored) and unknown sets.
func Partition(records map[string]Record) (known, unknown map[string]Record) {
	known = make(map[string]Record)
	unknown = make(map[string]Record)
	for id, rec := range records {
		if rec.Known {
			known[id] = rec
		} else {
			unknown[id] = rec
		}
	}
	return known, unknown
}
