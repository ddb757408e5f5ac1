package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Port     string `koanf:"port"`
	DBDSN    string `koanf:"db_dsn"`
	LogFile  string `koanf:"log_file"`
	LogLevel string `koanf:"log_level"`

	// Paging defaults for /api/v1/suggestions. Limits above MaxLimit are clamped.
	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`

	// Circuit breaker around catalog reads.
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`

	SeedDemo bool `koanf:"seed_demo"`
}

func Defaults() Config {
	return Config{
		Port:               "8081",
		DBDSN:              "stylematch.db", // sqlite file in project root
		LogFile:            "./stylematch.log",
		LogLevel:           "info",
		DefaultLimit:       12,
		MaxLimit:           100,
		BreakerMaxFailures: 5,
		BreakerTimeout:     30 * time.Second,
		SeedDemo:           true,
	}
}

// Load layers defaults < .env file < process environment.
func Load() (Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env loaded: %v", err)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	known := make(map[string]bool)
	for _, key := range k.Keys() {
		known[key] = true
	}
	if err := k.Load(env.Provider("", ".", func(s string) string {
		s = strings.ToLower(s)
		if !known[s] {
			return ""
		}
		return s
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DefaultLimit < 1 {
		cfg.DefaultLimit = 12
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		cfg.MaxLimit = cfg.DefaultLimit
	}

	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s LOG_LEVEL=%s DEFAULT_LIMIT=%d MAX_LIMIT=%d",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.LogLevel, cfg.DefaultLimit, cfg.MaxLimit)
	return cfg, nil
}
