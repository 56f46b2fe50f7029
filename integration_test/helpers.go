package integration_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	_ "modernc.org/sqlite"
)

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UUID    string `json:"uuid"`
}

func postJSON(baseURL, path string, body map[string]string) (*http.Response, error) {
	jsonBody, _ := json.Marshal(body)

	client := &http.Client{Timeout: 5 * time.Second}
	return client.Post(baseURL+path, "application/json", bytes.NewReader(jsonBody))
}

func register(baseURL, clientUUID, secretKey string) (*http.Response, error) {
	return postJSON(baseURL, "/register", map[string]string{
		"uuid":      clientUUID,
		"secretKey": secretKey,
	})
}

func login(baseURL, clientUUID, secretKey string) (*http.Response, error) {
	return postJSON(baseURL, "/login", map[string]string{
		"uuid":      clientUUID,
		"secretKey": secretKey,
	})
}

func getProtected(baseURL, accessToken string) (*http.Response, error) {
	client := &http.Client{Timeout: 5 * time.Second}
	req, _ := http.NewRequest("GET", baseURL+"/protected", nil)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	return client.Do(req)
}

// getNoRedirect issues a GET without following redirects, so tests can
// inspect 302 responses directly.
func getNoRedirect(rawURL string) (*http.Response, error) {
	client := &http.Client{
		Timeout: 5 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return client.Get(rawURL)
}

func decodeAuthResponse(resp *http.Response) (*AuthResponse, error) {
	defer resp.Body.Close()
	var out AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func cleanDatabase(dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	_, err = db.Exec("DELETE FROM credentials")
	return err
}

func waitForServer(baseURL string, attempts int) error {
	client := &http.Client{Timeout: 1 * time.Second}

	for i := 0; i < attempts; i++ {
		resp, err := client.Get(baseURL + "/")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}

	return fmt.Errorf("server at %s did not become ready", baseURL)
}
