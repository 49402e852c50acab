package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is set via ldflags by the release build.
	Version = "dev"
	// Commit is set via ldflags by the release build.
	Commit = "none"
	// Date is set via ldflags by the release build.
	Date = "unknown"
)

// String describes the running binary. Builds without ldflags fall back to
// the VCS revision recorded by the go tool, when there is one.
func String() string {
	commit := Commit
	if commit == "none" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					commit = s.Value
				}
			}
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, commit, Date)
}
