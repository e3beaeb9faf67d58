package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BackendURL        string
	RequestTimeout    time.Duration
	PollInterval      time.Duration
	RequestsPerSecond float64
	RetryMaxAttempts  int

	LogLevel string
	LogFile  string

	MetricsPort string

	ExportPath string
}

func defaults() Config {
	return Config{
		BackendURL:        "http://localhost:8000",
		RequestTimeout:    60 * time.Second,
		PollInterval:      30 * time.Second,
		RequestsPerSecond: 5,
		RetryMaxAttempts:  3,

		LogLevel: "info",
		LogFile:  "ultradoc.log",

		MetricsPort: "",

		ExportPath: "extraction.xlsx",
	}
}

// Load resolves configuration in three layers: built-in defaults, then an
// optional YAML file named by ULTRADOC_CONFIG, then environment variables.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("ULTRADOC_CONFIG"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

type fileConfig struct {
	BackendURL            *string  `yaml:"backend_url"`
	RequestTimeoutSeconds *int     `yaml:"request_timeout_seconds"`
	PollIntervalSeconds   *int     `yaml:"poll_interval_seconds"`
	RequestsPerSecond     *float64 `yaml:"requests_per_second"`
	RetryMaxAttempts      *int     `yaml:"retry_max_attempts"`
	LogLevel              *string  `yaml:"log_level"`
	LogFile               *string  `yaml:"log_file"`
	MetricsPort           *string  `yaml:"metrics_port"`
	ExportPath            *string  `yaml:"export_path"`
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var overlay fileConfig
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return err
	}

	if overlay.BackendURL != nil {
		cfg.BackendURL = *overlay.BackendURL
	}
	if overlay.RequestTimeoutSeconds != nil {
		cfg.RequestTimeout = time.Duration(*overlay.RequestTimeoutSeconds) * time.Second
	}
	if overlay.PollIntervalSeconds != nil {
		cfg.PollInterval = time.Duration(*overlay.PollIntervalSeconds) * time.Second
	}
	if overlay.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *overlay.RequestsPerSecond
	}
	if overlay.RetryMaxAttempts != nil {
		cfg.RetryMaxAttempts = *overlay.RetryMaxAttempts
	}
	if overlay.LogLevel != nil {
		cfg.LogLevel = *overlay.LogLevel
	}
	if overlay.LogFile != nil {
		cfg.LogFile = *overlay.LogFile
	}
	if overlay.MetricsPort != nil {
		cfg.MetricsPort = *overlay.MetricsPort
	}
	if overlay.ExportPath != nil {
		cfg.ExportPath = *overlay.ExportPath
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.BackendURL = envStr("BACKEND_URL", cfg.BackendURL)
	cfg.RequestTimeout = envSeconds("REQUEST_TIMEOUT_SECONDS", cfg.RequestTimeout)
	cfg.PollInterval = envSeconds("POLL_INTERVAL_SECONDS", cfg.PollInterval)
	cfg.RequestsPerSecond = envFloat("RATE_LIMIT_RPS", cfg.RequestsPerSecond)
	cfg.RetryMaxAttempts = envInt("RETRY_MAX_ATTEMPTS", cfg.RetryMaxAttempts)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = envStr("LOG_FILE", cfg.LogFile)
	cfg.MetricsPort = envStr("METRICS_PORT", cfg.MetricsPort)
	cfg.ExportPath = envStr("EXPORT_PATH", cfg.ExportPath)
}

func envStr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
