package version

// Version is the current CourseHub release.
const Version = "1.2.0"

// BuildVersion returns the version string for CLI display.
func BuildVersion() string {
	return "coursehub version " + Version
}

// APIVersion returns the bare version for API responses.
func APIVersion() string {
	return Version
}
