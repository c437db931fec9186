// Package build holds build-time information.
package build

import "fmt"

// Version, Commit and Date are overwritten by linker flags on release builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a single-line description of the running build.
func Info() string {
	return fmt.Sprintf("breakdown %s (commit: %s, date: %s)", Version, Commit, Date)
}
