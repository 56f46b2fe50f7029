package oauth_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"authgate/core/oauth"

	"github.com/stretchr/testify/assert"
	oauth2lib "golang.org/x/oauth2"
)

const frontendURL = "http://localhost:5173"

func parseLocation(t *testing.T, w *httptest.ResponseRecorder) *url.URL {
	t.Helper()
	loc, err := url.Parse(w.Header().Get("Location"))
	assert.NoError(t, err)
	return loc
}

func TestGithubBroker_AuthorizeURL(t *testing.T) {
	broker := oauth.NewGithubBroker(oauth.Config{
		ClientID:     "gh-client-id",
		ClientSecret: "gh-client-secret",
	}, frontendURL)

	req := httptest.NewRequest(http.MethodGet, "/auth/github", nil)
	w := httptest.NewRecorder()
	broker.HandleInitiate(w, req)

	assert.Equal(t, http.StatusFound, w.Code)

	loc := parseLocation(t, w)
	assert.Equal(t, "github.com", loc.Host)
	assert.Equal(t, "/login/oauth/authorize", loc.Path)

	query := loc.Query()
	assert.Equal(t, "gh-client-id", query.Get("client_id"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Contains(t, query.Get("scope"), "read:user")

	// GitHub resolves the callback from the app registration.
	assert.False(t, query.Has("redirect_uri"))
}

func TestGoogleBroker_AuthorizeURL(t *testing.T) {
	broker := oauth.NewGoogleBroker(oauth.Config{
		ClientID:     "goog-client-id",
		ClientSecret: "goog-client-secret",
		RedirectURI:  "http://localhost:3000/auth/google/callback",
	}, frontendURL)

	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	w := httptest.NewRecorder()
	broker.HandleInitiate(w, req)

	assert.Equal(t, http.StatusFound, w.Code)

	loc := parseLocation(t, w)
	assert.Equal(t, "accounts.google.com", loc.Host)

	query := loc.Query()
	assert.Equal(t, "goog-client-id", query.Get("client_id"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "http://localhost:3000/auth/google/callback", query.Get("redirect_uri"))
	assert.Contains(t, query.Get("scope"), "userinfo.email")
}

func TestHandleCallback_MissingCode(t *testing.T) {
	for _, newBroker := range map[string]func(oauth.Config, string) *oauth.Broker{
		"github": oauth.NewGithubBroker,
		"google": oauth.NewGoogleBroker,
	} {
		broker := newBroker(oauth.Config{ClientID: "id", ClientSecret: "secret"}, frontendURL)

		req := httptest.NewRequest(http.MethodGet, "/callback", nil)
		w := httptest.NewRecorder()
		broker.HandleCallback(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestHandleCallback_ExchangeAndRelay(t *testing.T) {
	var gotCode string
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotCode = r.FormValue("code")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"provider-access-token","token_type":"bearer"}`))
	}))
	defer tokenServer.Close()

	broker := oauth.NewGithubBroker(oauth.Config{
		ClientID:     "gh-client-id",
		ClientSecret: "gh-client-secret",
		TokenURL:     tokenServer.URL,
	}, frontendURL)

	req := httptest.NewRequest(http.MethodGet, "/callback?code=auth-code-123", nil)
	w := httptest.NewRecorder()
	broker.HandleCallback(w, req)

	assert.Equal(t, "auth-code-123", gotCode)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, frontendURL+"/v1/profile/github", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	var accessToken string
	for _, c := range cookies {
		if c.Name == "access_token" {
			accessToken = c.Value
		}
	}
	assert.Equal(t, "provider-access-token", accessToken)
}

func TestHandleCallback_ProviderError(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad_verification_code"}`))
	}))
	defer tokenServer.Close()

	broker := oauth.NewBroker("github", oauth.Config{
		ClientID:     "gh-client-id",
		ClientSecret: "gh-client-secret",
	}, oauth2lib.Endpoint{
		AuthURL:   tokenServer.URL + "/authorize",
		TokenURL:  tokenServer.URL,
		AuthStyle: oauth2lib.AuthStyleInParams,
	}, frontendURL)

	req := httptest.NewRequest(http.MethodGet, "/callback?code=stale-code", nil)
	w := httptest.NewRecorder()
	broker.HandleCallback(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "bad_verification_code")
}

func TestHandleCallback_ExchangeNetworkError(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	tokenServer.Close() // connection refused from here on

	broker := oauth.NewGoogleBroker(oauth.Config{
		ClientID:     "goog-client-id",
		ClientSecret: "goog-client-secret",
		RedirectURI:  "http://localhost:3000/auth/google/callback",
		TokenURL:     tokenServer.URL,
	}, frontendURL)

	req := httptest.NewRequest(http.MethodGet, "/callback?code=auth-code-123", nil)
	w := httptest.NewRecorder()
	broker.HandleCallback(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
