package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"synergyApi/synergy"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	RequestTimeout time.Duration
	UserAgent      string
	LogLevel       string
	LoginRetries   int
	// InsecureHTTP talks plain http to the district, for local mocks only.
	InsecureHTTP bool
}

var conf = newViper()

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("request_timeout", synergy.DefaultTimeout)
	v.SetDefault("user_agent", synergy.DefaultUserAgent)
	v.SetDefault("log_level", "info")
	v.SetDefault("login_retries", 3)
	v.SetDefault("insecure_http", false)

	v.SetEnvPrefix("SYNERGY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadDotEnv loads path into the process environment; a missing file is
// not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

func loadConfig(v *viper.Viper) Config {
	cfg := Config{
		Port:           v.GetString("port"),
		AllowedOrigins: v.GetStringSlice("allowed_origins"),
		RequestTimeout: v.GetDuration("request_timeout"),
		UserAgent:      v.GetString("user_agent"),
		LogLevel:       v.GetString("log_level"),
		LoginRetries:   v.GetInt("login_retries"),
		InsecureHTTP:   v.GetBool("insecure_http"),
	}
	if len(cfg.AllowedOrigins) == 1 && strings.Contains(cfg.AllowedOrigins[0], ",") {
		cfg.AllowedOrigins = strings.Split(cfg.AllowedOrigins[0], ",")
	}
	return cfg
}

func newLogger(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("config: log_level: %w", err)
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}
