package constant

// Platform identifiers compared against runtime.GOOS when picking install hints for the media surface.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)
