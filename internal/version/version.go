// Package version holds build metadata injected via ldflags.
package version

// Overridden at build time with -X github.com/kailas-cloud/jobdex/internal/version.Version=... etc.
//
//nolint:revive
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
