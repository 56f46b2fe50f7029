package main

import (
	"log/slog"
	"net/http"
	"os"

	"authgate/core"
	"authgate/core/oauth"
	"authgate/storage"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port string `yaml:"port"`

	DB struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"db"`

	JWT struct {
		Secret              string `yaml:"secret"`
		AccessTokenDuration int    `yaml:"access_token_duration"`
	} `yaml:"jwt"`

	FrontendURL string `yaml:"frontend_url"`

	Github *oauth.Config `yaml:"github,omitempty"`
	Google *oauth.Config `yaml:"google,omitempty"`
}

// envOverrides are applied on top of the config file; any variable left
// unset keeps the file's value.
type envOverrides struct {
	ConfigPath  string `env:"CONFIG_PATH" envDefault:"config.yaml"`
	Port        string `env:"PORT"`
	DBPath      string `env:"DB_PATH"`
	JWTSecret   string `env:"JWT_SECRET"`
	FrontendURL string `env:"FRONTEND_URL"`

	GithubClientID     string `env:"GITHUB_CLIENT_ID"`
	GithubClientSecret string `env:"GITHUB_CLIENT_SECRET"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string `env:"GOOGLE_REDIRECT_URI"`
}

func main() {
	appConfig, err := loadConfig()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	coreConfig := &core.Config{
		JWTSecret:           appConfig.JWT.Secret,
		AccessTokenDuration: appConfig.JWT.AccessTokenDuration,
		FrontendURL:         appConfig.FrontendURL,
	}

	repo := initRepository(appConfig.DB.SQLitePath)
	authService := core.NewAuthService(repo, coreConfig)
	server := core.NewServer(authService, coreConfig)

	r := mux.NewRouter()
	r.HandleFunc("/", server.HandleRoot).Methods(http.MethodGet)
	r.HandleFunc("/login", server.HandleLogin).Methods(http.MethodPost)
	r.HandleFunc("/register", server.HandleRegister).Methods(http.MethodPost)
	r.HandleFunc("/protected", server.HandleProtected).Methods(http.MethodGet)

	for _, broker := range initBrokers(appConfig) {
		r.HandleFunc("/auth/"+broker.Name(), broker.HandleInitiate).Methods(http.MethodGet)
		r.HandleFunc("/auth/"+broker.Name()+"/callback", broker.HandleCallback).Methods(http.MethodGet)
		slog.Info("OAuth broker initialized", "provider", broker.Name())
	}

	slog.Info("starting authgate server", "port", appConfig.Port)

	if err := http.ListenAndServe(":"+appConfig.Port, core.CORS(r)); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func loadConfig() (*AppConfig, error) {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, err
	}

	config := &AppConfig{}
	config.Port = "3000"
	config.DB.SQLitePath = "authgate.db"
	config.JWT.AccessTokenDuration = 14400 // 4 hours

	if data, err := os.ReadFile(overrides.ConfigPath); err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	} else {
		slog.Info("config file not found, using defaults and environment", "path", overrides.ConfigPath)
	}

	applyOverrides(config, overrides)
	return config, nil
}

func applyOverrides(config *AppConfig, overrides envOverrides) {
	if overrides.Port != "" {
		config.Port = overrides.Port
	}
	if overrides.DBPath != "" {
		config.DB.SQLitePath = overrides.DBPath
	}
	if overrides.JWTSecret != "" {
		config.JWT.Secret = overrides.JWTSecret
	}
	if overrides.FrontendURL != "" {
		config.FrontendURL = overrides.FrontendURL
	}

	if overrides.GithubClientID != "" {
		if config.Github == nil {
			config.Github = &oauth.Config{}
		}
		config.Github.ClientID = overrides.GithubClientID
		config.Github.ClientSecret = overrides.GithubClientSecret
	}

	if overrides.GoogleClientID != "" {
		if config.Google == nil {
			config.Google = &oauth.Config{}
		}
		config.Google.ClientID = overrides.GoogleClientID
		config.Google.ClientSecret = overrides.GoogleClientSecret
		config.Google.RedirectURI = overrides.GoogleRedirectURI
	}
}

// initRepository opens the sqlite store. A failure is logged and the process
// keeps running with an unavailable store: every request that touches it
// fails with a server error until a restart.
func initRepository(dbPath string) core.Repository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		slog.Error("failed to open record store, continuing without one", "path", dbPath, "err", err)
		return storage.Unavailable{Err: err}
	}

	slog.Info("using SQLite database", "path", dbPath)
	return repo
}

func initBrokers(config *AppConfig) []*oauth.Broker {
	var brokers []*oauth.Broker

	if config.Github != nil {
		brokers = append(brokers, oauth.NewGithubBroker(*config.Github, config.FrontendURL))
	}
	if config.Google != nil {
		brokers = append(brokers, oauth.NewGoogleBroker(*config.Google, config.FrontendURL))
	}

	return brokers
}
