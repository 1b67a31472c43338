package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/dslauncher/pkg/dsauth"
	"github.com/aussiebroadwan/dslauncher/pkg/httpx"
	"github.com/joho/godotenv"
)

type Config struct {
	ClientID           string   // Required: DocuSign integration key
	ClientSecret       string   // Optional: enables the Authorization Code Grant
	RedirectURL        string   // Required with ClientSecret: registered redirect URI (.../ds/callback)
	OAuthServer        string   // Optional: account server (default: https://account-d.docusign.com)
	ImpersonatedUserID string   // Optional: user GUID, enables the JWT Grant together with PrivateKeyFile
	PrivateKeyFile     string   // Optional: PEM RSA key registered with the integration key
	TargetAccountID    string   // Optional: account to select instead of the user's default
	APIs               []string // Optional: API families whose scopes are requested (default: esignature,click)
	ManifestPath       string   // Optional: example catalog override (default: embedded)

	SessionSecretFile string        // Optional: file holding the session sealing secret (else SESSION_SECRET, else ephemeral)
	SessionTTL        time.Duration // Session lifetime, sliding (default: 24h)
	AuthRequestTTL    time.Duration // Pending login lifetime (default: 10m)
	SecureCookies     bool          // Mark the session cookie Secure (default: true)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./launcher.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 3000)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 15m)
}

// LoadConfig reads the environment, after loading ENV_FILE (default .env)
// when it exists. Variables already set win over the file.
func LoadConfig() (Config, error) {
	envFile := getEnvOrDefault("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		ClientID:           os.Getenv("DS_CLIENT_ID"),
		ClientSecret:       os.Getenv("DS_CLIENT_SECRET"),
		RedirectURL:        os.Getenv("DS_REDIRECT_URL"),
		OAuthServer:        getEnvOrDefault("DS_OAUTH_SERVER", dsauth.DemoOAuthServer),
		ImpersonatedUserID: os.Getenv("DS_IMPERSONATED_USER_ID"),
		PrivateKeyFile:     os.Getenv("DS_PRIVATE_KEY_FILE"),
		TargetAccountID:    os.Getenv("DS_TARGET_ACCOUNT_ID"),
		APIs:               httpx.SplitFields(getEnvOrDefault("DS_APIS", "esignature,click")),
		ManifestPath:       os.Getenv("MANIFEST_PATH"),

		SessionSecretFile: os.Getenv("SESSION_SECRET_FILE"),
		SessionTTL:        getEnvDurationOrDefault("SESSION_TTL", 24*time.Hour),
		AuthRequestTTL:    getEnvDurationOrDefault("AUTH_REQUEST_TTL", 10*time.Minute),
		SecureCookies:     getEnvBoolOrDefault("COOKIE_SECURE", true),

		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "launcher.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 3000),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 15*time.Minute),
	}

	return cfg, nil
}

// CodeGrantEnabled reports whether the Authorization Code Grant can run.
func (c Config) CodeGrantEnabled() bool {
	return c.ClientSecret != ""
}

// JWTGrantEnabled reports whether the JWT Grant can run.
func (c Config) JWTGrantEnabled() bool {
	return c.ImpersonatedUserID != "" && c.PrivateKeyFile != ""
}

func (c Config) Validate() error {
	var errs []error

	if c.ClientID == "" {
		errs = append(errs, errors.New("DS_CLIENT_ID is required"))
	}
	if !c.CodeGrantEnabled() && !c.JWTGrantEnabled() {
		errs = append(errs, errors.New(
			"no login method configured: set DS_CLIENT_SECRET, or DS_IMPERSONATED_USER_ID and DS_PRIVATE_KEY_FILE"))
	}
	// The JWT grant sends users through the consent page, which redirects
	// back to the same callback as the code grant.
	if (c.CodeGrantEnabled() || c.JWTGrantEnabled()) && c.RedirectURL == "" {
		errs = append(errs, errors.New("DS_REDIRECT_URL is required"))
	}
	if (c.ImpersonatedUserID == "") != (c.PrivateKeyFile == "") {
		errs = append(errs, errors.New("DS_IMPERSONATED_USER_ID and DS_PRIVATE_KEY_FILE must be set together"))
	}
	if !strings.HasPrefix(c.OAuthServer, "https://") && !strings.HasPrefix(c.OAuthServer, "http://") {
		errs = append(errs, fmt.Errorf("DS_OAUTH_SERVER must be an absolute URL, got %q", c.OAuthServer))
	}
	if len(c.APIs) == 0 {
		errs = append(errs, errors.New("DS_APIS must name at least one API"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}

	return errors.Join(errs...)
}

// applyRateLimits overlays RATELIMIT_{AUTH,EXAMPLE,PUBLIC}_* on the default profiles.
func applyRateLimits() {
	httpx.AuthLimit = httpx.ParseRateLimitFromEnv("AUTH", httpx.AuthLimit)
	httpx.ExampleLimit = httpx.ParseRateLimitFromEnv("EXAMPLE", httpx.ExampleLimit)
	httpx.PublicLimit = httpx.ParseRateLimitFromEnv("PUBLIC", httpx.PublicLimit)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
