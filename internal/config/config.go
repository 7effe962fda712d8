package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Optional integrations (mail, Redis, RabbitMQ)
// have their own Load* functions so that main can decide whether to wire them.
type Config struct {
	Env          string        // application environment (e.g. "dev", "prod")
	Port         string        // HTTP port to listen on
	DBUser       string        // database username
	DBPass       string        // database password (optional)
	DBHost       string        // database host address
	DBPort       string        // database port number
	DBName       string        // database name
	JWTSecret    string        // secret used to sign session tokens
	TokenTTL     time.Duration // session token lifetime
	BootstrapKey string        // shared secret for the bootstrap/reset routes; empty disables them
	BcryptCost   int           // bcrypt cost for password hashing
	ClientURLs   []string      // origins allowed by CORS
	LogLevel     string        // trace|debug|info|warning|error|fatal
	LogFormat    string        // text|json
	ActivityDir  string        // directory for the task activity log written by the consumer
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:          envStr("APP_ENV", "dev"),
		Port:         envStr("APP_PORT", envStr("PORT", "4000")),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       must("DB_HOST"),
		DBPort:       envStr("DB_PORT", "3306"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		TokenTTL:     envDur("TOKEN_TTL", 7*24*time.Hour),
		BootstrapKey: os.Getenv("BOOTSTRAP_KEY"),
		BcryptCost:   envInt("BCRYPT_COST", 10),
		ClientURLs:   clientURLs(),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		LogFormat:    envStr("LOG_FORMAT", "text"),
		ActivityDir:  envStr("ACTIVITY_LOG_DIR", "logs"),
	}
}

// clientURLs prefers CLIENT_URL, then the comma separated CLIENT_URLS, then
// the local dev server.
func clientURLs() []string {
	if v := strings.TrimSpace(os.Getenv("CLIENT_URL")); v != "" {
		return []string{v}
	}
	if v := os.Getenv("CLIENT_URLS"); v != "" {
		return splitList(v)
	}
	return []string{"http://localhost:5173"}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
