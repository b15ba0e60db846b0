package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string
	StaticDir  string

	RootURL     string
	Environment string
	Phone       string

	CacheLiveNavigation string

	LoadTimeout time.Duration

	DemoSigningKey string
}

// Load reads .env (when present) and then the process environment. Values
// already set in the environment win over .env.
func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		ListenAddr:  getEnv("MOULD_LISTEN_ADDR", ":8080"),
		StaticDir:   getEnv("MOULD_STATIC_DIR", "internal/web/static"),
		RootURL:     strings.TrimRight(getEnv("MOULD_ROOT_URL", "https://mouldrestoration.com.au"), "/"),
		Environment: getEnv("MOULD_ENV", "development"),
		Phone:       getEnv("MOULD_PHONE", "1800 954 117"),
		CacheLiveNavigation: strings.TrimSpace(
			os.Getenv("MOULD_CACHE_LIVE_NAV"),
		),
		LoadTimeout:    getEnvDuration("MOULD_LOAD_TIMEOUT", 5*time.Second),
		DemoSigningKey: getEnv("MOULD_DEMO_SIGNING_KEY", "demo-signing-key-not-for-production"),
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}

	return parsed
}

// getEnvDuration accepts Go durations ("750ms") or whole milliseconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}

	if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
		return parsed
	}

	return time.Duration(getEnvInt(key, int(fallback/time.Millisecond))) * time.Millisecond
}
