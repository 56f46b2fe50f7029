package integration_test

import (
	"net/http"
	"net/http/httptest"
)

// Known-good authorization codes the mock provider accepts.
var mockAccessTokens = map[string]string{
	"valid_code_1": "provider_access_token_1",
	"valid_code_2": "provider_access_token_2",
}

// MockOAuthServer stands in for a provider's authorize and token endpoints.
type MockOAuthServer struct {
	server *httptest.Server
}

func NewMockOAuthServer() *MockOAuthServer {
	m := &MockOAuthServer{}

	mux := http.NewServeMux()
	mux.HandleFunc("/authorize", m.handleAuthorize)
	mux.HandleFunc("/token", m.handleToken)

	m.server = httptest.NewServer(mux)
	return m
}

func (m *MockOAuthServer) URL() string {
	return m.server.URL
}

func (m *MockOAuthServer) Close() {
	m.server.Close()
}

func (m *MockOAuthServer) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	// A real provider would show a consent screen here; the flow under test
	// never follows the redirect, so a blank page is enough.
	w.WriteHeader(http.StatusOK)
}

func (m *MockOAuthServer) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	accessToken, ok := mockAccessTokens[r.FormValue("code")]
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad_verification_code"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"access_token":"` + accessToken + `","token_type":"bearer"}`))
}
