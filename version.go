package tagverify

import "runtime"

// Version is the semantic version of tagverify.
const Version = "0.1.0"

// VersionInfo contains detailed version information.
type VersionInfo struct {
	// Version is the semantic version (e.g., "0.1.0")
	Version string
	// GitCommit is the git commit hash (set via ldflags at build time)
	GitCommit string
	// BuildTime is the build timestamp (set via ldflags at build time)
	BuildTime string
	// GoVersion is the Go version used to build
	GoVersion string
}

// GetVersionInfo returns detailed version information.
//
// GitCommit and BuildTime are populated at build time via -ldflags:
//
//	go build -ldflags="-X github.com/simonhull/tagverify.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/tagverify.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	  ./cmd/tagverify
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// String renders the version for --version output.
func (v VersionInfo) String() string {
	if v.GitCommit == "unknown" {
		return v.Version
	}
	commit := v.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return v.Version + " (" + commit + ", built " + v.BuildTime + ", " + v.GoVersion + ")"
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
