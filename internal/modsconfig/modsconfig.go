// Package modsconfig reads and rewrites RimWorld's ModsConfig.xml. Only the
// <activeMods> element is replaced; the rest of the document round-trips as
// parsed.
package modsconfig

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// The game expects this exact prolog; etree would otherwise echo whatever
// the original file carried.
const xmlProlog = `<?xml version="1.0" encoding="utf-8"?>`

// BackupTimeFormat names backup files down to the minute, matching the
// unknown-mod report timestamps.
const BackupTimeFormat = "20060102-1504"

// File is a parsed ModsConfig.xml.
type File struct {
	path string
	doc  *etree.Document
}

// Load parses the configuration file. A missing or unparsable file is fatal
// to the whole run, so it is checked before any other work.
func Load(path string) (*File, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc.FindElement("//activeMods") == nil {
		return nil, fmt.Errorf("%s has no <activeMods> element", path)
	}
	return &File{path: path, doc: doc}, nil
}

// Path returns the location the file was loaded from.
func (f *File) Path() string { return f.path }

// ActiveMods returns the enabled mod IDs in load order.
func (f *File) ActiveMods() []string {
	var ids []string
	for _, li := range f.doc.FindElements("//activeMods/li") {
		ids = append(ids, strings.TrimSpace(li.Text()))
	}
	return ids
}

// GameVersion returns the game version recorded in the file, falling back to
// the build number, then "unknown". Used only for report metadata.
func (f *File) GameVersion() string {
	for _, tag := range []string{"//version", "//buildNumber"} {
		if e := f.doc.FindElement(tag); e != nil {
			if v := strings.TrimSpace(e.Text()); v != "" {
				return v
			}
		}
	}
	return "unknown"
}

// SetActiveMods replaces the children of <activeMods> with one <li> per ID,
// in order. The document is only mutated in memory; Save writes it out.
func (f *File) SetActiveMods(ids []string) {
	active := f.doc.FindElement("//activeMods")
	for _, li := range active.FindElements("li") {
		active.RemoveChild(li)
	}
	for _, id := range ids {
		active.CreateElement("li").SetText(id)
	}
}

// Save writes the document back to its original path, copying the current
// file contents to a timestamped backup first. The backup must succeed or
// the original is left untouched. Returns the backup path.
func (f *File) Save(now time.Time) (string, error) {
	backup := BackupPath(f.path, now)
	if err := copyFile(f.path, backup); err != nil {
		return "", fmt.Errorf("backing up %s: %w", f.path, err)
	}

	out, err := f.render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(f.path, out, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", f.path, err)
	}
	return backup, nil
}

// BackupPath derives the timestamped backup name next to the original:
// ModsConfig.xml → ModsConfig.backup-YYYYMMDD-HHMM.xml.
func BackupPath(path string, now time.Time) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return fmt.Sprintf("%s.backup-%s.xml", base, now.Format(BackupTimeFormat))
}

// render serializes the document with the fixed prolog, two-space indent and
// LF line endings.
func (f *File) render() ([]byte, error) {
	doc := f.doc.Copy()
	// Drop any parsed prolog; the fixed one is emitted below.
	for _, tok := range append([]etree.Token(nil), doc.Child...) {
		if _, ok := tok.(*etree.ProcInst); ok {
			doc.RemoveChild(tok)
		}
	}
	doc.Indent(2)

	body, err := doc.WriteToString()
	if err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.TrimLeft(body, " \t\n")
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return []byte(xmlProlog + "\n" + body), nil
}

// copyFile copies src to dst, fsyncing the copy before returning so the
// backup is durable before the original is overwritten.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
