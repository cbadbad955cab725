// Package config
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode            string        `yaml:"mode" validate:"oneof=tui serve stream snapshot"`
	ProcessInterval time.Duration `yaml:"process_interval" validate:"gt=0"`
	NetworkInterval time.Duration `yaml:"network_interval" validate:"gt=0"`

	Address        string   `yaml:"http_addr" validate:"required"`
	JWTSecret      string   `yaml:"jwt_secret"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	DBPath         string   `yaml:"db_path"`

	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`
	LogFile   string `yaml:"log_file"`

	ProcessLimit int `yaml:"process_limit" validate:"gt=0"`
	NetworkLimit int `yaml:"network_limit" validate:"gt=0"`
}

const (
	ModeTUI      = "tui"
	ModeServe    = "serve"
	ModeStream   = "stream"
	ModeSnapshot = "snapshot"
)

func defaultConfig() *Config {
	return &Config{
		Mode:            ModeTUI,
		ProcessInterval: time.Second,
		NetworkInterval: time.Second,
		Address:         "127.0.0.1:3000",
		LogLevel:        "info",
		LogFormat:       "text",
		ProcessLimit:    30,
		NetworkLimit:    6,
	}
}

// Load layers defaults, an optional YAML file named by HORIZONX_CONFIG and
// the process environment (including .env), in that order.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("HORIZONX_CONFIG"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}

func applyEnv(cfg *Config) {
	if mode := os.Getenv("MODE"); mode != "" {
		cfg.Mode = strings.ToLower(mode)
	}

	cfg.ProcessInterval = durationEnv("PROCESS_INTERVAL", cfg.ProcessInterval)
	cfg.NetworkInterval = durationEnv("NETWORK_INTERVAL", cfg.NetworkInterval)

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.Address = addr
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}

	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		cfg.AllowedOrigins = nil
		for origin := range strings.SplitSeq(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.DBPath = path
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.LogFormat = strings.ToLower(format)
	}

	if file := os.Getenv("LOG_FILE"); file != "" {
		cfg.LogFile = file
	}

	cfg.ProcessLimit = intEnv("PROCESS_LIMIT", cfg.ProcessLimit)
	cfg.NetworkLimit = intEnv("NETWORK_LIMIT", cfg.NetworkLimit)
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

var validate = validator.New()

func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		field := strings.ToLower(fieldError.Field())
		switch fieldError.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", field, fieldError.Param(), fieldError.Value()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, fieldError.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}

	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
