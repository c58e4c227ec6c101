package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerPort string `yaml:"port"`

	APIBaseURL     string        `yaml:"api_base_url"`
	APITimeout     time.Duration `yaml:"api_timeout"`
	APIMaxAttempts int           `yaml:"api_max_attempts"`
	APIBackoff     time.Duration `yaml:"api_backoff"`

	StoreBackend   string `yaml:"store_backend"`
	RedisURL       string `yaml:"redis_url"`
	RedisNamespace string `yaml:"redis_namespace"`
	DBConnStr      string `yaml:"db_conn"`

	JWTSecret    []byte        `yaml:"-"`
	PaymentDelay time.Duration `yaml:"payment_delay"`

	RateLimitRPS   int `yaml:"rate_limit_rps"`
	RateLimitBurst int `yaml:"rate_limit_burst"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func defaults() *Config {
	return &Config{
		ServerPort:     "8080",
		APIBaseURL:     "https://playstationappserver.vercel.app/api/",
		APITimeout:     60 * time.Second,
		APIMaxAttempts: 3,
		APIBackoff:     time.Second,
		StoreBackend:   "memory",
		RedisURL:       "redis://localhost:6379/0",
		RedisNamespace: "playbox",
		DBConnStr:      "host=localhost port=5432 user=postgres dbname=playboxdb sslmode=disable",
		PaymentDelay:   2 * time.Second,
		RateLimitRPS:   20,
		RateLimitBurst: 40,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// LoadConfig reads .env (if present), then the YAML file named by CONFIG_FILE,
// then environment variables, each layer overriding the previous one.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ServerPort = getEnvOrDefault("PORT", cfg.ServerPort)
	cfg.APIBaseURL = getEnvOrDefault("API_BASE_URL", cfg.APIBaseURL)
	cfg.StoreBackend = getEnvOrDefault("STORE_BACKEND", cfg.StoreBackend)
	cfg.RedisURL = getEnvOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.RedisNamespace = getEnvOrDefault("REDIS_NAMESPACE", cfg.RedisNamespace)
	cfg.DBConnStr = getEnvOrDefault("DB_CONN", cfg.DBConnStr)
	cfg.JWTSecret = []byte(getEnvOrDefault("JWT_SECRET", ""))
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)

	var err error
	if cfg.APITimeout, err = getDurationOrDefault("API_TIMEOUT", cfg.APITimeout); err != nil {
		return nil, err
	}
	if cfg.APIBackoff, err = getDurationOrDefault("API_BACKOFF", cfg.APIBackoff); err != nil {
		return nil, err
	}
	if cfg.PaymentDelay, err = getDurationOrDefault("PAYMENT_DELAY", cfg.PaymentDelay); err != nil {
		return nil, err
	}
	if cfg.APIMaxAttempts, err = getIntOrDefault("API_MAX_ATTEMPTS", cfg.APIMaxAttempts); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getIntOrDefault("RATE_LIMIT_RPS", cfg.RateLimitRPS); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getIntOrDefault("RATE_LIMIT_BURST", cfg.RateLimitBurst); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if len(c.JWTSecret) == 0 {
		return fmt.Errorf("JWT_SECRET is not set in environment")
	}
	switch c.StoreBackend {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.APIMaxAttempts < 1 {
		return fmt.Errorf("API_MAX_ATTEMPTS must be at least 1")
	}
	if c.RateLimitRPS < 1 || c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be at least 1")
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func getDurationOrDefault(key string, def time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return def, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getIntOrDefault(key string, def int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
