package config

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DB struct {
		DSN string `yaml:"dsn"`
	} `yaml:"db"`
	Razorpay struct {
		KeyID          string `yaml:"key_id"`
		KeySecret      string `yaml:"key_secret"`
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"razorpay"`
	Orders struct {
		DefaultLimit int `yaml:"default_limit"`
		MaxLimit     int `yaml:"max_limit"`
	} `yaml:"orders"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if cfg.Server.Addr == "" {
		return nil, errors.New("server.addr is required")
	}
	if cfg.DB.DSN == "" {
		return nil, errors.New("db.dsn is required")
	}
	// Razorpay credentials are intentionally not required here: endpoints
	// that need them return 500 instead of the process refusing to start.
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DB.DSN = v
	}
	if v := os.Getenv("RAZORPAY_KEY_ID"); v != "" {
		cfg.Razorpay.KeyID = v
	}
	if v := os.Getenv("RAZORPAY_KEY_SECRET"); v != "" {
		cfg.Razorpay.KeySecret = v
	}
	if v := os.Getenv("RAZORPAY_BASE_URL"); v != "" {
		cfg.Razorpay.BaseURL = v
	}
	if v := os.Getenv("RAZORPAY_TIMEOUT_SECONDS"); v != "" {
		cfg.Razorpay.TimeoutSeconds = atoiOr(cfg.Razorpay.TimeoutSeconds, v)
	}
	if v := os.Getenv("ORDERS_DEFAULT_LIMIT"); v != "" {
		cfg.Orders.DefaultLimit = atoiOr(cfg.Orders.DefaultLimit, v)
	}
	if v := os.Getenv("ORDERS_MAX_LIMIT"); v != "" {
		cfg.Orders.MaxLimit = atoiOr(cfg.Orders.MaxLimit, v)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Razorpay.BaseURL == "" {
		cfg.Razorpay.BaseURL = "https://api.razorpay.com"
	}
	if cfg.Razorpay.TimeoutSeconds <= 0 {
		cfg.Razorpay.TimeoutSeconds = 15
	}
	if cfg.Orders.DefaultLimit <= 0 {
		cfg.Orders.DefaultLimit = 50
	}
	if cfg.Orders.MaxLimit <= 0 {
		cfg.Orders.MaxLimit = 200
	}
}

func atoiOr(fallback int, v string) int {
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
