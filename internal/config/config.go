package config

import (
	"fmt"
	"os"
	"path/filepath"

	pkgconfig "github.com/kawsar-hussain/server-A11/pkg/config"
	"github.com/kawsar-hussain/server-A11/pkg/logger"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables overriding file values.
const EnvPrefix = "donation"

type Config struct {
	Service ServiceConfig `yaml:"service"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Stripe  StripeConfig  `yaml:"stripe"`
	Server  ServerConfig  `yaml:"server"`
	Log     logger.Config `yaml:"log"`
	Redis   RedisConfig   `yaml:"redis"`
	Email   EmailConfig   `yaml:"email"`
}

// LoadConfig reads the YAML file at CONFIG_PATH (default ./configs/donation.yaml)
// and overlays DONATION_* environment variables on top of it.
func LoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/donation.yaml"
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyEnv(pkgconfig.FromEnv(EnvPrefix))
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo.database is required")
	}
	return nil
}

func (c *Config) applyEnv(env pkgconfig.Config) {
	overrideString(env, "service.environment", &c.Service.Environment)
	overrideString(env, "service.site_origin", &c.Service.SiteOrigin)
	overrideString(env, "mongo.uri", &c.Mongo.URI)
	overrideString(env, "mongo.username", &c.Mongo.Username)
	overrideString(env, "mongo.password", &c.Mongo.Password)
	overrideString(env, "mongo.database", &c.Mongo.Database)
	overrideString(env, "stripe.secret_key", &c.Stripe.SecretKey)
	overrideString(env, "redis.addr", &c.Redis.Addr)
	overrideString(env, "redis.password", &c.Redis.Password)
	overrideString(env, "email.smtp_host", &c.Email.SMTPHost)
	overrideString(env, "email.username", &c.Email.Username)
	overrideString(env, "email.password", &c.Email.Password)
	overrideString(env, "log.level", &c.Log.Level)
	if env.IsSet("server.http.port") {
		c.Server.HTTP.Port = env.GetInt("server.http.port")
	}
}

func overrideString(env pkgconfig.Config, key string, target *string) {
	if env.IsSet(key) {
		*target = env.GetString(key)
	}
}

func (c *Config) applyDefaults() {
	c.Service.applyDefaults()
	c.Mongo.applyDefaults()
	c.Stripe.applyDefaults()
	c.Server.applyDefaults()
	c.Redis.applyDefaults()
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
