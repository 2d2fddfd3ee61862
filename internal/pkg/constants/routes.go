package constants

// Static route constants
const (
	UploadsRoute = "/uploads"
	AvatarsRoute = "/uploads/avatars"
	PublicRoute  = "/"
	// Upload path without leading slash for filesystem access
	UploadsPath = "uploads"
)
