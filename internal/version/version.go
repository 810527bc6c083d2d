// Package version holds the build version of the tdlc CLI and server: a
// package-level semver.Version literal stamped with semver.Commit() at
// init.
package version

import "github.com/maloquacious/semver"

// Version is the engine/CLI build version.
var Version = semver.Version{
	Major: 0,
	Minor: 1,
	Patch: 0,
	Build: semver.Commit(),
}
