package version

import (
	"fmt"
	"runtime"
)

// Set at build time with -ldflags "-X bluebgg/internal/version.Version=..."
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
)

func String() string {
	return fmt.Sprintf("bluebgg %s (commit %s, built %s, %s)", Version, Commit, BuildDate, GoVersion)
}
