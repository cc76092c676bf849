// Package misc keeps program identity shared by all subcommands.
package misc

import (
	"runtime/debug"
)

// set with -ldflags "-X mdconv/misc.version=... -X mdconv/misc.githash=..."
var (
	version = ""
	githash = ""
)

const appName = "mdconv"

func GetAppName() string {
	return appName
}

// GetVersion returns linked in version or module version from build
// information when not set.
func GetVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns linked in commit or vcs revision recorded by go build.
func GetGitHash() string {
	if githash != "" {
		return githash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) > 0 {
				return s.Value[:min(len(s.Value), 12)]
			}
		}
	}
	return "unknown"
}
