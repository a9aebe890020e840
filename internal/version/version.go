// Package version provides build version information for shaderplay.
package version

import "runtime"

var (
	// Version is the semantic version (set by build flags)
	Version = "dev"
	// Commit is the git commit hash (set by build flags)
	Commit = "unknown"
	// BuildDate is the build date (set by build flags)
	BuildDate = "unknown"
)

// Info contains version and build information
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the version information
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns the bare version
func (i Info) String() string {
	return i.Version
}

// Full returns version, commit, build date and toolchain on one line.
func (i Info) Full() string {
	return "shaderplay " + i.Version + " (commit " + i.Commit + ", built " + i.BuildDate + ", " + i.GoVersion + " " + i.Platform + ")"
}
