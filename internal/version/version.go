// Package version holds the build version, overridable with
// -ldflags "-X github.com/hrygo/agendabot/internal/version.Version=...".
package version

// Version is the current release.
var Version = "0.1.0"

// DevVersion is reported in dev mode.
var DevVersion = "0.1.0-dev"

// GetCurrentVersion returns the version for the given mode.
func GetCurrentVersion(mode string) string {
	if mode == "dev" || mode == "demo" {
		return DevVersion
	}
	return Version
}
