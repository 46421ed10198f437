// Package version holds the rwsort build version.
package version

// Version is the tool version reported to users and embedded in unknown-mod
// reports. Overridden at release time via -ldflags.
var Version = "0.9.0-dev"
