package types

import (
	"os"
	"strings"
)

// ContextUserKey is where AuthMiddleware stashes the authenticated user.
const ContextUserKey = "user"

// SessionCookie carries the JWT for browser clients.
const SessionCookie = "token"

// AllowedOrigins feeds both the CORS config and the websocket origin check.
// Local dev origins are always allowed; CLIENT_URL and the comma-separated
// ALLOWED_ORIGINS extend the list for deployments.
var AllowedOrigins = buildAllowedOrigins()

func buildAllowedOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
