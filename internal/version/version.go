// Package version holds the repolens build information.
package version

import "runtime"

// Overridden at build time:
// go build -ldflags "-X repolens/internal/version.Version=1.0.0 -X repolens/internal/version.Commit=abc123"
var (
	// Version is the semantic version of repolens
	Version = "0.4.0"

	// Commit is the git commit hash (set at build time)
	Commit = "unknown"

	// BuildDate is the build timestamp (set at build time)
	BuildDate = "unknown"
)

// BuildInfo is the machine-readable form of the build information.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the current build information.
func Get() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Info returns the version with an abbreviated commit when one is known.
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full returns complete version information
func Full() string {
	b := Get()
	return "repolens version " + b.Version + "\n" +
		"Commit: " + b.Commit + "\n" +
		"Built: " + b.BuildDate + "\n" +
		"Go: " + b.GoVersion + " " + b.Platform
}
