package config

import "time"

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	// SiteOrigin is the public frontend origin used for checkout redirects.
	SiteOrigin string `yaml:"site_origin"`
	Currency   string `yaml:"currency"`
}

func (c *ServiceConfig) applyDefaults() {
	if c.Name == "" {
		c.Name = "donation"
	}
	if c.Environment == "" {
		c.Environment = "dev"
	}
	if c.Currency == "" {
		c.Currency = "usd"
	}
}

type StripeConfig struct {
	SecretKey         string        `yaml:"secret_key"`
	ProductName       string        `yaml:"product_name"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxNetworkRetries int64         `yaml:"max_network_retries"`
	// APIBase overrides the Stripe API origin, e.g. for stripe-mock.
	APIBase string `yaml:"api_base"`
}

func (c *StripeConfig) applyDefaults() {
	if c.ProductName == "" {
		c.ProductName = "Donation"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}

// EmailConfig configures donation receipts. An empty SMTPHost disables them.
type EmailConfig struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort int    `yaml:"smtp_port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}
