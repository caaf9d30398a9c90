// Package build holds the build metadata linked into the tinkerpop binary with
// -ldflags "-X github.com/dVakulen/tinkerpop/internal/build.Version=...".
package build

// ProjectName is the name reported by the version command and the log output.
const ProjectName = "tinkerpop"

var (
	Version = "dev"

	// Commit is the sha of the git commit the binary was built from.
	Commit = "none"

	Date = "unknown"
)
