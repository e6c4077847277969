package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogFile     string
	MetricsAddr string

	// client side
	APIBase        string
	APIToken       string
	TokenFile      string
	RedisAddr      string
	RedisPass      string
	RedisDB        int
	RedisTokenKey  string
	BackendRPS     int
	BackendRetries int
	RequestTimeout time.Duration
	Locale         string

	// reference backend + seeder
	HTTPAddr    string
	MySQLDSN    string
	SeedFile    string
	SeedWorkers int
	SeedOwner   string
	SeedToken   string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", os.Getenv(k)).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogFile:     env("LOG_FILE", "portal.log"),
		MetricsAddr: env("METRICS_ADDR", ""),

		APIBase:        env("API_BASE_URL", "http://localhost:5000/api"),
		APIToken:       env("API_TOKEN", ""),
		TokenFile:      env("TOKEN_FILE", ""),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		RedisTokenKey:  env("REDIS_TOKEN_KEY", "portal:token"),
		BackendRPS:     atoi("BACKEND_RPS", 5),
		BackendRetries: atoi("BACKEND_RETRIES", 0),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 20)) * time.Second,
		Locale:         env("LOCALE", env("LANG", "en-US")),

		HTTPAddr:    env("HTTP_ADDR", ":5000"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/listings?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		SeedFile:    env("SEED_FILE", "fixtures/properties.json"),
		SeedWorkers: atoi("SEED_WORKERS", 8),
		SeedOwner:   env("SEED_OWNER", "demo"),
		SeedToken:   env("SEED_TOKEN", ""),
	}
	if c.BackendRetries < 0 {
		c.BackendRetries = 0
	}
	return c
}

// HasCredentialSource reports whether any token source is configured.
func (c Config) HasCredentialSource() bool {
	return c.APIToken != "" || c.TokenFile != "" || c.RedisAddr != ""
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
