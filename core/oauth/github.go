package oauth

import (
	"golang.org/x/oauth2/github"
)

// NewGithubBroker brokers the flow against GitHub. GitHub infers the
// callback from the OAuth app registration, so no redirect_uri is sent in
// the authorize URL.
func NewGithubBroker(cfg Config, frontendURL string) *Broker {
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{"read:user", "user:email"}
	}
	cfg.RedirectURI = ""
	return NewBroker("github", cfg, github.Endpoint, frontendURL)
}
