// Package version provides build and version information.
package version

import "fmt"

// Version is the current application version.
const Version = "0.3.0"

// Commit is set at build time with -ldflags "-X ...version.Commit=<sha>".
var Commit = "dev"

// String returns the version with the build commit.
func String() string {
	return fmt.Sprintf("starrysky v%s (%s)", Version, Commit)
}

// Milestones:
// 0.3.0 - HTTP API, websocket scene stream, catalog hot reload, metrics
// 0.2.0 - Structured-text catalogs, magnitude profiles, terminal sky view
// 0.1.0 - Initial release: binary catalog, constellation overlays
