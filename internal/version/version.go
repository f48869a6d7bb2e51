// Package version reports the build identity of the lcmvec binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are set at build time via ldflags.
// When Commit is unset, the VCS stamp embedded by the go toolchain is used.
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version string (commit-hash based, no semver)
func String() string {
	commit, built := short(Commit), BuildTime
	if Commit == "unknown" {
		if stamp, ok := vcsStamp(); ok {
			commit = short(stamp.revision)
			if stamp.modified {
				commit += "-dirty"
			}
			if built == "unknown" && stamp.time != "" {
				built = stamp.time
			}
		}
	}
	return fmt.Sprintf("lcmvec dev (commit: %s, built: %s)", commit, built)
}

type vcsInfo struct {
	revision string
	time     string
	modified bool
}

func vcsStamp() (vcsInfo, bool) {
	var v vcsInfo
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v, false
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			v.revision = s.Value
		case "vcs.time":
			v.time = s.Value
		case "vcs.modified":
			v.modified = s.Value == "true"
		}
	}
	return v, v.revision != ""
}

func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
