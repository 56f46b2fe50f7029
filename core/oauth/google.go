package oauth

import (
	"golang.org/x/oauth2/google"
)

// NewGoogleBroker brokers the flow against Google. Google requires the
// redirect URI on both the authorize URL and the token exchange, so cfg must
// carry one.
func NewGoogleBroker(cfg Config, frontendURL string) *Broker {
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		}
	}
	return NewBroker("google", cfg, google.Endpoint, frontendURL)
}
