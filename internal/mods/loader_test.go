package mods

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeMod creates a mod folder with an About.xml declaring the given name.
func writeMod(t *testing.T, dir, id, name string) {
	t.Helper()
	about := filepath.Join(dir, id, "About")
	if err := os.MkdirAll(about, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<ModMetaData>\n  <name>" + name + "</name>\n</ModMetaData>\n"
	if err := os.WriteFile(filepath.Join(about, "About.xml"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func testLookup(name string) (float64, bool, error) {
	scores := map[string]float64{
		"Core":      0,
		"Better UI": 10,
		"Big Guns":  35,
	}
	score, ok := scores[name]
	return score, ok, nil
}

type staticResolver struct {
	name string
	err  error
}

func (r staticResolver) Resolve(id string) (string, error) { return r.name, r.err }

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeMod(t, dir, "Core", "Core")
	writeMod(t, dir, "1234", "Better UI v1.2") // version garbage cleaned before lookup
	writeMod(t, dir, "5678", "Obscure Mod")    // not in database

	records, err := Load(dir, testLookup, SourceWorkshop, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	ui := records["1234"]
	if !ui.Known || ui.Score != 10 || ui.Name != "Better UI" {
		t.Errorf("record 1234 = %+v, want known Better UI score 10", ui)
	}
	if ui.Source != SourceWorkshop {
		t.Errorf("record 1234 source = %q, want workshop", ui.Source)
	}

	obscure := records["5678"]
	if obscure.Known {
		t.Errorf("record 5678 should be unknown, got %+v", obscure)
	}
	if obscure.Name != "Obscure Mod" {
		t.Errorf("record 5678 name = %q", obscure.Name)
	}
}

func TestLoadSkipsFoldersWithoutDescriptor(t *testing.T) {
	dir := t.TempDir()
	writeMod(t, dir, "Core", "Core")
	if err := os.MkdirAll(filepath.Join(dir, "ScenarioOnly"), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	// A stray file at the top level is ignored entirely.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	records, err := Load(dir, testLookup, SourceLocal, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 (scenario folder skipped)", len(records))
	}
	if _, ok := records["ScenarioOnly"]; ok {
		t.Error("folder without About.xml should be skipped")
	}
}

func TestLoadMalformedDescriptorUsesResolver(t *testing.T) {
	dir := t.TempDir()
	about := filepath.Join(dir, "9999", "About")
	if err := os.MkdirAll(about, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(about, "About.xml"), []byte("<ModMetaData><name>unterminated"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	records, err := Load(dir, testLookup, SourceWorkshop, staticResolver{name: "Big Guns"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rec, ok := records["9999"]
	if !ok {
		t.Fatal("mod with malformed About.xml should be recovered via resolver")
	}
	if !rec.Known || rec.Score != 35 {
		t.Errorf("recovered record = %+v, want known score 35", rec)
	}
}

func TestLoadMalformedDescriptorSkippedWhenResolverFails(t *testing.T) {
	dir := t.TempDir()
	about := filepath.Join(dir, "9999", "About")
	if err := os.MkdirAll(about, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(about, "About.xml"), []byte("not xml at all <<<"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	records, err := Load(dir, testLookup, SourceWorkshop, staticResolver{err: errors.New("page not found")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestLoadPropagatesLookupError(t *testing.T) {
	dir := t.TempDir()
	writeMod(t, dir, "Core", "Core")

	badLookup := func(string) (float64, bool, error) {
		return 0, false, errors.New("category has no defined score")
	}
	if _, err := Load(dir, badLookup, SourceLocal, nil); err == nil {
		t.Fatal("Load should fail when the score lookup reports a database defect")
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "gone"), testLookup, SourceLocal, nil); err == nil {
		t.Fatal("Load should fail on a missing directory")
	}
}

func TestMergeWorkshopWins(t *testing.T) {
	local := map[string]Record{
		"Shared": {ID: "Shared", Name: "Local Copy", Source: SourceLocal},
		"OnlyL":  {ID: "OnlyL", Source: SourceLocal},
	}
	workshop := map[string]Record{
		"Shared": {ID: "Shared", Name: "Workshop Copy", Source: SourceWorkshop},
		"OnlyW":  {ID: "OnlyW", Source: SourceWorkshop},
	}

	merged := Merge(local, workshop)
	if len(merged) != 3 {
		t.Fatalf("len(merged) = %d, want 3", len(merged))
	}
	if merged["Shared"].Name != "Workshop Copy" {
		t.Errorf("merged[Shared] = %+v, want the workshop record", merged["Shared"])
	}
}

func TestPartition(t *testing.T) {
	records := map[string]Record{
		"A": {ID: "A", Known: true},
		"B": {ID: "B"},
		"C": {ID: "C", Known: true},
	}
	known, unknown := Partition(records)
	if len(known) != 2 || len(unknown) != 1 {
		t.Fatalf("Partition sizes = (%d, %d), want (2, 1)", len(known), len(unknown))
	}
	if _, ok := unknown["B"]; !ok {
		t.Error("B should be in the unknown partition")
	}
}

func TestMalformedAboutXMLIsNotTreatedAsMissing(t *testing.T) {
	// An About.xml whose XML parses but has no <name> counts as malformed,
	// so the resolver is consulted.
	dir := t.TempDir()
	about := filepath.Join(dir, "42", "About")
	if err := os.MkdirAll(about, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(about, "About.xml"), []byte("<ModMetaData></ModMetaData>"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	records, err := Load(dir, testLookup, SourceWorkshop, staticResolver{name: "Better UI"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec := records["42"]; !rec.Known || rec.Name != "Better UI" {
		t.Errorf("record 42 = %+v, want resolver-recovered Better UI", rec)
	}
}
