// Package build holds build-time information for the cakecutter binary.
// The version comes from the embedded VERSION file unless set via ldflags:
//
//	-X github.com/baasman/cakecutter/internal/build.version=x.y.z
//	-X github.com/baasman/cakecutter/internal/build.commit=<sha>
//	-X github.com/baasman/cakecutter/internal/build.date=<rfc3339>
package build

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

var (
	version string
	commit  = "unknown"
	date    = "unknown"
)

// Version returns the application version.
// Priority: ldflags > embedded VERSION file
func Version() string {
	if version != "" {
		return version
	}
	return strings.TrimSpace(embeddedVersion)
}

// Commit returns the git commit the binary was built from.
func Commit() string {
	return commit
}

// Date returns the build date.
func Date() string {
	return date
}
