package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type Server struct {
	authService *AuthService
	config      *Config
}

func NewServer(authService *AuthService, config *Config) *Server {
	return &Server{
		authService: authService,
		config:      config,
	}
}

func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, "HELLO TO AUTH ROXS")
}

func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !validateMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		UUID      string `json:"uuid"`
		SecretKey string `json:"secretKey"`
	}

	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.authService.Login(r.Context(), req.UUID, req.SecretKey)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredentials):
			respondMessage(w, http.StatusBadRequest, "Please provide")
		case errors.Is(err, ErrNotFound):
			respondMessage(w, http.StatusNotFound, "UUID not found")
		case errors.Is(err, ErrInvalidCredentials):
			respondMessage(w, http.StatusBadRequest, "Invalid Credentials")
		default:
			respondServerError(w, "Server error while login.", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Logged in",
		"token":   result.Token,
		"uuid":    result.UUID,
	})
}

func (s *Server) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if !validateMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		UUID      string `json:"uuid"`
		SecretKey string `json:"secretKey"`
	}

	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.authService.Register(r.Context(), req.UUID, req.SecretKey)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredentials):
			respondMessage(w, http.StatusBadRequest, "Please provide UUID and secretKey")
		case errors.Is(err, ErrAlreadyExists):
			respondMessage(w, http.StatusConflict, "UUID already registered")
		default:
			respondServerError(w, "Server Error", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "UUID registered successfully",
		"token":   result.Token,
		"uuid":    result.UUID,
	})
}

func (s *Server) HandleProtected(w http.ResponseWriter, r *http.Request) {
	if !validateMethod(w, r, http.MethodGet) {
		return
	}

	claims, err := s.Authorize(r)
	if err != nil {
		if errors.Is(err, errNoToken) {
			respondMessage(w, http.StatusUnauthorized, "No token provided")
		} else {
			respondMessage(w, http.StatusUnauthorized, "Invalid token")
		}
		return
	}

	clientUUID, err := s.authService.Profile(r.Context(), claims)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "UUID not found")
		} else {
			respondServerError(w, "Server error", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Protected route accessed successfully",
		"uuid":    clientUUID,
	})
}

var errNoToken = errors.New("no token provided")

// Authorize is the access guard: it extracts the bearer token from the
// Authorization header and verifies it, returning the decoded claims. It is
// an explicit function composed by handlers rather than middleware that
// mutates the request.
func (s *Server) Authorize(r *http.Request) (*Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errNoToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errNoToken
	}

	claims, err := ValidateAccessToken(parts[1], s.config)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// CORS wraps a handler with a permissive cross-origin policy and answers
// preflight requests directly.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Helper functions

func validateMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func respondMessage(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]string{
		"message": message,
	})
}

func respondServerError(w http.ResponseWriter, message string, err error) {
	respondJSON(w, http.StatusInternalServerError, map[string]string{
		"message": message,
		"error":   err.Error(),
	})
}
