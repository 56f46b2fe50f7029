// Package oauth brokers the OAuth2 authorization-code flow against external
// providers. One Broker serves one provider; the flow is: redirect the
// browser to the provider's authorize URL, receive the authorization code on
// the callback, exchange it server-to-server for a provider access token, and
// relay that token to the frontend via cookie + redirect. The token is never
// persisted or inspected.
package oauth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
)

// Config holds one provider's client credentials. AuthURL and TokenURL
// override the provider's default endpoints when set; tests point them at a
// local server.
type Config struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURI  string   `yaml:"redirect_uri,omitempty"`
	Scopes       []string `yaml:"scopes,omitempty"`
	AuthURL      string   `yaml:"auth_url,omitempty"`
	TokenURL     string   `yaml:"token_url,omitempty"`
}

type Broker struct {
	name        string
	oauthConfig *oauth2.Config
	frontendURL string
}

// NewBroker builds a broker for the named provider. The endpoint carries the
// provider's authorize/token URLs and its token-endpoint auth style; cfg may
// override the URLs.
func NewBroker(name string, cfg Config, endpoint oauth2.Endpoint, frontendURL string) *Broker {
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	return &Broker{
		name: name,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scopes,
			Endpoint:     endpoint,
		},
		frontendURL: frontendURL,
	}
}

func (b *Broker) Name() string {
	return b.name
}

// HandleInitiate starts the flow by redirecting the browser to the
// provider's authorize URL.
func (b *Broker) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, b.oauthConfig.AuthCodeURL(""), http.StatusFound)
}

// HandleCallback receives the authorization code, exchanges it for a
// provider access token, and relays the token to the frontend profile page
// as an access_token cookie.
func (b *Broker) HandleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not provided", http.StatusBadRequest)
		return
	}

	token, err := b.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		slog.Error("code exchange failed", "provider", b.name, "err", err)

		// Surface the provider's error payload when it sent one.
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && len(retrieveErr.Body) > 0 {
			http.Error(w, fmt.Sprintf("Failed to exchange code: %s", retrieveErr.Body), http.StatusInternalServerError)
			return
		}
		http.Error(w, "Failed to exchange code: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:  "access_token",
		Value: token.AccessToken,
		Path:  "/",
	})
	http.Redirect(w, r, b.frontendURL+"/v1/profile/"+b.name, http.StatusFound)
}
