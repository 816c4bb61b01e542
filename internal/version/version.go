// Package version exposes the build identity stamped into release binaries.
package version

// Overwritten with -ldflags by the release build; the zero values mark
// a locally built binary.
//
//nolint:revive
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
