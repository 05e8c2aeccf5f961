package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, memory
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret        string        `yaml:"secret"`
		Expire        time.Duration `yaml:"expire"`
		RefreshSecret string        `yaml:"refresh_secret"`
		RefreshExpire time.Duration `yaml:"refresh_expire"`
	} `yaml:"jwt"`

	CORS struct {
		ClientURL string `yaml:"client_url"`
		AdminURL  string `yaml:"admin_url"`
	} `yaml:"cors"`

	RateLimit struct {
		WindowMs      int64  `yaml:"window_ms"`
		MaxRequests   int    `yaml:"max_requests"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		Prefix        string `yaml:"prefix"`
	} `yaml:"rate_limit"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	FirstAdmin struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"first_admin"`
}

var AppConfig *Config

// Default holds the values used when neither the file nor the environment sets them.
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5000
	cfg.Server.Env = "development"
	cfg.Database.Driver = "postgres"
	cfg.JWT.Expire = 15 * time.Minute
	cfg.JWT.RefreshExpire = 7 * 24 * time.Hour
	cfg.CORS.ClientURL = "http://localhost:5173"
	cfg.CORS.AdminURL = "http://localhost:5174"
	cfg.RateLimit.WindowMs = 15 * 60 * 1000
	cfg.RateLimit.MaxRequests = 100
	cfg.RateLimit.Prefix = "iblaze:ratelimit"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "iBLAZE"
	cfg.FirstAdmin.Name = "Administrator"
	return &cfg
}

// LoadConfig reads .env (when present), then CONFIG_PATH or config/config.yaml
// (when present), then applies environment overrides.
func LoadConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	AppConfig = cfg
}

// Load builds a Config from an optional YAML file and the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			log.Printf("config file %s not found, using defaults and environment", path)
		default:
			return nil, fmt.Errorf("open config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Host, "HOST")
	setString(&cfg.Server.Env, "NODE_ENV", "SERVER_ENV")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.JWT.RefreshSecret, "JWT_REFRESH_SECRET")
	setString(&cfg.CORS.ClientURL, "CLIENT_URL")
	setString(&cfg.CORS.AdminURL, "ADMIN_URL")
	setString(&cfg.RateLimit.RedisAddr, "REDIS_ADDR")
	setString(&cfg.RateLimit.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "EMAIL_FROM")
	setString(&cfg.FirstAdmin.Email, "FIRST_ADMIN_EMAIL")
	setString(&cfg.FirstAdmin.Password, "FIRST_ADMIN_PASSWORD")

	if err := setInt(&cfg.Server.Port, "PORT", "SERVER_PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.RateLimit.MaxRequests, "RATE_LIMIT_MAX_REQUESTS"); err != nil {
		return err
	}
	if err := setInt(&cfg.Email.SMTPPort, "SMTP_PORT"); err != nil {
		return err
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW_MS"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_WINDOW_MS: %w", err)
		}
		cfg.RateLimit.WindowMs = ms
	}
	if err := setDuration(&cfg.JWT.Expire, "JWT_EXPIRE"); err != nil {
		return err
	}
	if err := setDuration(&cfg.JWT.RefreshExpire, "JWT_REFRESH_EXPIRE"); err != nil {
		return err
	}
	return nil
}

func setString(dst *string, keys ...string) {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			*dst = v
			return
		}
	}
}

func setInt(dst *int, keys ...string) error {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			*dst = n
			return nil
		}
	}
	return nil
}

// setDuration accepts Go durations ("15m") and the day suffix used by older
// deployments ("7d").
func setDuration(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func ParseDuration(v string) (time.Duration, error) {
	if strings.HasSuffix(v, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(v, "d"))
		if err != nil {
			return 0, err
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(v)
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (JWT_SECRET)")
	}
	if c.JWT.RefreshSecret == "" {
		return errors.New("jwt refresh secret is required (JWT_REFRESH_SECRET)")
	}
	if c.JWT.Expire <= 0 || c.JWT.RefreshExpire <= 0 {
		return errors.New("jwt expiry durations must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Database.Driver {
	case "postgres":
		if c.Database.DSN == "" {
			return errors.New("database url is required for the postgres driver (DATABASE_URL)")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown database driver: %q", c.Database.Driver)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowMs) * time.Millisecond
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
