package version

// Version is set at build time with
// -ldflags "-X github.com/kelda/licensegen/pkg/version.Version=...".
var Version = ""

// String returns the version shown by `gen-license --version`.
func String() string {
	if Version == "" {
		return "development"
	}
	return Version
}
