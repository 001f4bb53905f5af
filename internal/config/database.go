package config

import "time"

// MongoConfig holds document store connection configuration
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`

	MaxPoolSize      uint64        `yaml:"max_pool_size"`
	ConnectTimeout   time.Duration `yaml:"connect_timeout"`
	OperationTimeout time.Duration `yaml:"operation_timeout"`
}

func (c *MongoConfig) applyDefaults() {
	if c.MaxPoolSize == 0 {
		c.MaxPoolSize = 50
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.OperationTimeout <= 0 {
		c.OperationTimeout = 5 * time.Second
	}
}

// RedisConfig holds the payment event channel configuration. An empty Addr
// disables event publishing.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

func (c *RedisConfig) applyDefaults() {
	if c.Channel == "" {
		c.Channel = "donation.payments"
	}
}
