// Package names cleans version and tag noise out of mod display names so
// they can be matched against the score database, which indexes mods by
// their bare name.
package names

import (
	"regexp"
	"strings"
)

// versionNoise matches the release tags mod authors append to display names:
// "v1.2", "[B19]", "(A17)", "for 1.0", trailing ".18"/".19" and friends.
var versionNoise = regexp.MustCompile(
	`(v|V|)\d+\.\d+(\.\d+|)([a-z]|)|\[(1\.0|(A|B)\d+)\]|\((1\.0|(A|B)\d+)\)|(for |R|)(1\.0|(A|B)\d+)|\.1(8|9)`,
)

// artifactFixes repairs names the tag removal leaves ruined. Each entry is a
// literal replacement observed in the wild, e.g. "Sora's RimFantasy: Brutal
// Start (v. )" or "Sailor Scouts Hair [19]".
var artifactFixes = []struct{ old, new string }{
	{"()", ""},
	{"[]", ""},
	{"(v. )", ""},
	{"[ ", "["},
	{"( & b19)", ""},
	{"[19]", ""},
	{"[/] Version", ""},
}

// Clean strips version tags and release noise from a mod display name.
// Cleaning an already clean name returns it unchanged, and a name with no
// recognizable noise passes through untouched.
func Clean(raw string) string {
	// Two passes: removing one tag can expose another ("v1.2 [B19]").
	s := versionNoise.ReplaceAllString(raw, "")
	s = versionNoise.ReplaceAllString(s, "")

	s = strings.ReplaceAll(s, " - ", ": ")
	s = strings.ReplaceAll(s, " : ", ": ")
	s = strings.Join(strings.Fields(s), " ")

	for _, f := range artifactFixes {
		s = strings.ReplaceAll(s, f.old, f.new)
	}

	s = strings.TrimSuffix(s, " Ver")
	s = strings.TrimSuffix(s, " %")
	s = strings.TrimSuffix(s, ":")
	s = strings.TrimPrefix(s, ": ")
	s = strings.TrimPrefix(s, "-")

	return strings.TrimSpace(s)
}
