// Package version holds build metadata injected via ldflags.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build metadata as a single token for startup logs and
// health output, e.g. "1.4.2 (9f3ab10, built 2026-08-01)".
func String() string {
	return Version + " (" + Commit + ", built " + Date + ")"
}
