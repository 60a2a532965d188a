package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/confkit/confkit/internal/version.Version=...
	Commit  = "unknown" // -X github.com/confkit/confkit/internal/version.Commit=...
	Date    = "unknown" // -X github.com/confkit/confkit/internal/version.Date=...
)
