// Package version exposes build version information.
package version

import (
	"fmt"
	"runtime/debug"
)

// Overridable by ldflags at build time, e.g.
// -ldflags "-X .../internal/version.Version=v1.2.0".
var (
	Version    = "dev"
	CommitHash = ""
	BuildTime  = ""
)

// GetInfo returns the version string, with the short commit hash when
// known. Falls back to VCS build info when ldflags were not set.
func GetInfo() string {
	if CommitHash == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					CommitHash = setting.Value
				case "vcs.time":
					BuildTime = setting.Value
				}
			}
		}
	}

	res := Version
	if CommitHash != "" {
		shortHash := CommitHash
		if len(shortHash) > 7 {
			shortHash = shortHash[:7]
		}
		res += fmt.Sprintf(" (%s)", shortHash)
	}
	if BuildTime != "" {
		res += fmt.Sprintf(" built %s", BuildTime)
	}
	return res
}
