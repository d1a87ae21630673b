package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	APP_TOKEN=shared-secret
//	BREEZE_API_KEY=...
//	BREEZE_API_SECRET=...
//	BREEZE_SESSION_TOKEN=...
//	NSE_FO_CONTRACT_URL=https://nsearchives.nseindia.com/content/fo/NSE_FO_contract_15022026.csv.gz
type Config struct {
	Server ServerConfig // HTTP server configuration
	Auth   AuthConfig   // Shared-secret protection for relay endpoints
	Breeze BreezeConfig // Broker API credentials and base URL
	NSE    NSEConfig    // Contract-file publisher endpoints
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// AuthConfig carries the shared secret expected in the X-APP-TOKEN
// header. Left empty, protected endpoints answer 500 until it is set;
// it is deliberately not validated at startup so the open endpoints
// (health, metrics, docs) can come up regardless.
type AuthConfig struct {
	AppToken string
}

// BreezeConfig defines the broker API connection details. The three
// credentials are required at first use of a quote endpoint, not at
// startup; the session token is rotated daily by the broker and often
// injected late.
type BreezeConfig struct {
	APIKey       string
	APISecret    string
	SessionToken string
	BaseURL      string
}

// NSEConfig defines the contract-file publisher endpoints.
//
// Fields:
//   - ContractURL: operator override; when set, discovery is skipped and
//     this exact archive URL is fetched.
//   - ReportsURL: derivatives reports listing page that is scanned for
//     contract-file names.
//   - ArchiveBaseURL: base joined with the discovered file name.
//   - HomeURL: homepage hit first to collect the anti-bot cookies.
type NSEConfig struct {
	ContractURL    string
	ReportsURL     string
	ArchiveBaseURL string
	HomeURL        string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and read throughout the
// application instead of reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from a .env
// file or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("BREEZE_BASE_URL", "https://api.icicidirect.com/breezeapi/api/v1")

	viper.SetDefault("NSE_REPORTS_URL", "https://www.nseindia.com/all-reports-derivatives")
	viper.SetDefault("NSE_ARCHIVE_BASE_URL", "https://nsearchives.nseindia.com/content/fo")
	viper.SetDefault("NSE_HOME_URL", "https://www.nseindia.com")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Auth: AuthConfig{
			AppToken: viper.GetString("APP_TOKEN"),
		},
		Breeze: BreezeConfig{
			APIKey:       viper.GetString("BREEZE_API_KEY"),
			APISecret:    viper.GetString("BREEZE_API_SECRET"),
			SessionToken: viper.GetString("BREEZE_SESSION_TOKEN"),
			BaseURL:      viper.GetString("BREEZE_BASE_URL"),
		},
		NSE: NSEConfig{
			ContractURL:    viper.GetString("NSE_FO_CONTRACT_URL"),
			ReportsURL:     viper.GetString("NSE_REPORTS_URL"),
			ArchiveBaseURL: viper.GetString("NSE_ARCHIVE_BASE_URL"),
			HomeURL:        viper.GetString("NSE_HOME_URL"),
		},
	}

	validateConfig()
}

// validateConfig ensures the always-required variables are present and
// terminates the application if they are missing. Secrets (APP_TOKEN,
// broker credentials) are intentionally excluded: they are checked at
// first use so the relay can boot and serve its open endpoints without
// them.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Breeze.BaseURL == "" {
		missing = append(missing, "BREEZE_BASE_URL")
	}
	if AppConfig.NSE.ReportsURL == "" {
		missing = append(missing, "NSE_REPORTS_URL")
	}
	if AppConfig.NSE.ArchiveBaseURL == "" {
		missing = append(missing, "NSE_ARCHIVE_BASE_URL")
	}
	if AppConfig.NSE.HomeURL == "" {
		missing = append(missing, "NSE_HOME_URL")
	}

	if len(missing) > 0 {
		log.Fatalf("Missing required environment variables: %v\n", missing)
	}
}
