package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr         string        // TCP listen or dial address
	HTTPAddr     string        // HTTP side, disabled when empty
	LogLevel     string        // zerolog level name
	LogFormat    string        // "json" or "console"
	RecordsDir   string        // where game_records.csv goes, disabled when empty
	PollInterval time.Duration // client poll period
}

// Load reads .env when present, then the environment. On a bad value it
// returns the defaults for that field along with the error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:         getEnv("TRAPMOUSE_ADDR", "127.0.0.1:8080"),
		HTTPAddr:     getEnv("TRAPMOUSE_HTTP_ADDR", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		RecordsDir:   getEnv("TRAPMOUSE_RECORDS_DIR", ""),
		PollInterval: 10 * time.Millisecond,
	}

	if v := os.Getenv("TRAPMOUSE_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("TRAPMOUSE_POLL_INTERVAL %q: not a positive duration", v)
		}
		cfg.PollInterval = d
	}
	return cfg, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
