package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Credential store drivers.
const (
	StoreDriverSupabase = "supabase"
	StoreDriverPostgres = "postgres"
	StoreDriverDynamo   = "dynamo"
)

// devOrigins are always allowed in addition to FRONTEND_URL and ALLOWED_ORIGINS.
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://0.0.0.0:3000",
}

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	FrontendURL    string
	AllowedOrigins []string // CORS allowed origins

	StoreDriver  string
	StoreTimeout time.Duration // bound on a single credential lookup

	SupabaseURL            string
	SupabaseServiceRoleKey string
	CredentialTable        string

	DatabaseURL string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTable    string

	TOTPWindow int
}

// Load reads all configuration from environment variables. It never fails:
// missing store settings are reported by MissingStoreSettings so the server
// can still start and answer 500 on verification.
func Load() *Config {
	frontend := getEnv("FRONTEND_URL", "")
	return &Config{
		AppPort:  getEnv("PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		FrontendURL:    frontend,
		AllowedOrigins: buildOrigins(frontend, getEnv("ALLOWED_ORIGINS", "")),

		StoreDriver:  strings.ToLower(getEnv("STORE_DRIVER", StoreDriverSupabase)),
		StoreTimeout: getEnvDuration("STORE_TIMEOUT", 5*time.Second),

		SupabaseURL:            strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		CredentialTable:        getEnv("CREDENTIAL_TABLE", "user_2fa"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTable:    getEnv("DYNAMO_TABLE_USER_2FA", "user_2fa"),

		TOTPWindow: getEnvInt("TOTP_WINDOW", 1),
	}
}

// MissingStoreSettings lists the environment variables the selected store
// driver needs but did not get. An unknown driver is reported as STORE_DRIVER.
func (c *Config) MissingStoreSettings() []string {
	var missing []string
	switch c.StoreDriver {
	case StoreDriverSupabase:
		if c.SupabaseURL == "" {
			missing = append(missing, "SUPABASE_URL")
		}
		if c.SupabaseServiceRoleKey == "" {
			missing = append(missing, "SUPABASE_SERVICE_ROLE_KEY")
		}
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case StoreDriverDynamo:
		if c.DynamoTable == "" {
			missing = append(missing, "DYNAMO_TABLE_USER_2FA")
		}
	default:
		missing = append(missing, "STORE_DRIVER")
	}
	return missing
}

// StoreConfigured reports whether the selected driver has everything it needs.
func (c *Config) StoreConfigured() bool { return len(c.MissingStoreSettings()) == 0 }

func buildOrigins(frontend, extra string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(o string) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			return
		}
		seen[o] = true
		out = append(out, o)
	}
	for _, o := range devOrigins {
		add(o)
	}
	add(frontend)
	for _, o := range strings.Split(extra, ",") {
		add(o)
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
