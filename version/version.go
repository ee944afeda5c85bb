// Package version holds build-time version information.
// Values are injected via -ldflags at release build time.
package version

import "runtime"

var (
	// GitRelease is the release tag or "dev" for local builds.
	GitRelease = "dev"
	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"
	// GitCommitDate is the commit date.
	GitCommitDate = "unknown"
	// GoInfo is the Go toolchain version.
	GoInfo = runtime.Version()
)
