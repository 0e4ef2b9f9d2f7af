package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Parshu2496/cosmic-bites/pkg/cart/domain/service"
)

const appID = "cosmicbites"

type Config struct {
	ServeAddress string `envconfig:"serve_address" default:":8080"`
	LogLevel     string `envconfig:"log_level" default:"info"`
	LogFormat    string `envconfig:"log_format" default:"text"`

	// CatalogFile replaces the built-in sample catalog when set.
	CatalogFile string `envconfig:"catalog_file"`

	DeliveryFeeCents           int64         `envconfig:"delivery_fee_cents" default:"299"`
	FreeDeliveryThresholdCents int64         `envconfig:"free_delivery_threshold_cents" default:"2500"`
	CheckoutDelay              time.Duration `envconfig:"checkout_delay" default:"2s"`
}

// Load reads COSMICBITES_* environment variables.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process(appID, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse env")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Pricing() service.PricingPolicy {
	return service.PricingPolicy{
		FreeDeliveryThresholdCents: c.FreeDeliveryThresholdCents,
		DeliveryFeeCents:           c.DeliveryFeeCents,
	}
}

// Logger builds a logrus logger from the log settings.
func (c *Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	switch c.LogFormat {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, errors.Errorf("unknown log format %q", c.LogFormat)
	}
	return logger, nil
}

func (c *Config) validate() error {
	if c.DeliveryFeeCents < 0 {
		return errors.New("delivery fee cannot be negative")
	}
	if c.FreeDeliveryThresholdCents < 0 {
		return errors.New("free delivery threshold cannot be negative")
	}
	if c.CheckoutDelay < 0 {
		return errors.New("checkout delay cannot be negative")
	}
	return nil
}
