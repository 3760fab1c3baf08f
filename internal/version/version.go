// Package version exposes build-time version information.
// The variables are overridden at build time via -ldflags.
package version

//nolint:gochecknoglobals // Build metadata has to be package-level for -ldflags injection.
var (
	// Version is the semantic version of the build.
	Version = "1.0.0"
	// Commit is the VCS commit the binary was built from.
	Commit = "none"
	// BuildTime is when the binary was built.
	BuildTime = "unknown"
)

// Short returns just the semantic version.
func Short() string {
	return Version
}

// Full returns the version together with commit and build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
