package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Port                     int    `yaml:"port"`
	AllowedOrigin            string `yaml:"allowedOrigin"`
	MaxImageBytes            int    `yaml:"maxImageBytes"`
	CacheBackend             string `yaml:"cacheBackend"`
	CacheDSN                 string `yaml:"cacheDSN"`
	DatabaseURL              string `yaml:"databaseURL"`
	DBMaxOpenConns           int    `yaml:"dbMaxOpenConns"`
	DBMaxIdleConns           int    `yaml:"dbMaxIdleConns"`
	DBConnMaxLifetimeSeconds int    `yaml:"dbConnMaxLifetimeSeconds"`
	DBConnMaxIdleTimeSeconds int    `yaml:"dbConnMaxIdleTimeSeconds"`
}

func Default() Config {
	return Config{
		Port:                     4002,
		AllowedOrigin:            "http://localhost:3000",
		MaxImageBytes:            1024 * 1024,
		CacheBackend:             "none",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
	}
}

// Load builds the config from defaults, the optional CONFIG_FILE overlay and
// environment variables, in that order of precedence (env wins).
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (cfg *Config) applyEnv() {
	if raw := os.Getenv("PORT"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Port = value
		}
	}
	if raw := os.Getenv("ALLOWED_ORIGIN"); raw != "" {
		cfg.AllowedOrigin = raw
	}
	if raw := os.Getenv("MAX_IMAGE_BYTES"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxImageBytes = value
		}
	}
	if raw := os.Getenv("CACHE_BACKEND"); raw != "" {
		cfg.CacheBackend = raw
	}
	if raw := os.Getenv("CACHE_DSN"); raw != "" {
		cfg.CacheDSN = raw
	}
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		cfg.DatabaseURL = raw
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
}
