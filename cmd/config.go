package cmd

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/semka95/authors/store"
	"github.com/semka95/authors/validation"
)

// ConfigEnv names the environment variable holding the config file path
const ConfigEnv = "AUTHORS_CONFIG"

// DefaultAdminTimeout bounds admin commands when admin.timeout is not set
const DefaultAdminTimeout = 30 * time.Second

// Config stores app configuration
type Config struct {
	Lookup struct {
		Timeout int `yaml:"timeout" validate:"required,gt=0"`
	} `yaml:"lookup"`
	Telemetry struct {
		OtlpAddress string `yaml:"otlp_address" validate:"omitempty,hostname_port"`
		Insecure    bool   `yaml:"insecure"`
	} `yaml:"telemetry"`
	Admin struct {
		Timeout int `yaml:"timeout" validate:"omitempty,gt=0"`
	} `yaml:"admin"`
	store.MongoConfig `yaml:"mongo" validate:"-"`
}

// LookupTimeout returns the per-lookup context timeout
func (c *Config) LookupTimeout() time.Duration {
	return time.Duration(c.Lookup.Timeout) * time.Second
}

// AdminTimeout returns the timeout of a whole admin command, DefaultAdminTimeout
// when the config leaves it unset
func (c *Config) AdminTimeout() time.Duration {
	if c.Admin.Timeout == 0 {
		return DefaultAdminTimeout
	}

	return time.Duration(c.Admin.Timeout) * time.Second
}

// ConfigPath returns flagPath when set, otherwise the path from ConfigEnv
func ConfigPath(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}

	configPath, ok := os.LookupEnv(ConfigEnv)
	if !ok || configPath == "" {
		return "", fmt.Errorf("%s environment variable is not specified", ConfigEnv)
	}

	return configPath, nil
}

// AppConfig reads config from file, creates config struct and validates it
func AppConfig(cfgPath string, v *validation.AppValidator, logger *zap.Logger) (*Config, error) {
	f, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("can't open config file: %w", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			logger.Error("can't close config file", zap.Error(err))
		}
	}()

	cfg := new(Config)
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	err = decoder.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("can't decode config file: %w", err)
	}

	if err = v.Check(cfg); err != nil {
		return nil, fmt.Errorf("config file is not valid: %w", err)
	}

	return cfg, nil
}
