package buildinfo

var (
	// Version will be set via ldflags during build.
	Version = "dev"
	// Commit will be set via ldflags during build.
	Commit = "none"
	// Date will be set via ldflags during build.
	Date = "unknown"
)

// String 返回版本行，例如 "dev (commit: none, built: unknown)"。
func String() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
