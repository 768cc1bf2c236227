// Package version holds build metadata injected with
//
//	-ldflags "-X github.com/arthur-debert/organizer/internal/version.Version=..."
//
// and the matching Commit and Date variables.
package version

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns a one-line description of the build
func String() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
