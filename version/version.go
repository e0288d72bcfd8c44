// Package version holds build metadata injected at link time.
package version

import (
	"fmt"
	"runtime"
)

// Build information. Populated via -ldflags at release time:
//
//	-X github.com/dmfielding/bestiary/version.GitRelease=v0.3.0
//	-X github.com/dmfielding/bestiary/version.GitCommit=abc1234
//	-X github.com/dmfielding/bestiary/version.GitCommitDate=2026-08-25
var (
	// GitRelease is the release tag the binary was built from.
	GitRelease = "dev"

	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"

	// GitCommitDate is the date of GitCommit.
	GitCommitDate = "unknown"

	// GoInfo reports the Go toolchain and platform used for the build.
	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)
