package core

// Config holds the process-wide settings the core components need. It is
// built once at startup and injected at construction; nothing reads it from
// ambient global state.
type Config struct {
	// JWT configuration
	JWTSecret           string // secret key for signing access tokens
	AccessTokenDuration int    // access token lifetime in seconds

	// Base URL of the frontend that OAuth callbacks redirect back to
	FrontendURL string
}
