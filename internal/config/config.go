package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type Config struct {
	Storage     string
	CartFile    string
	DatabaseURL string
	CartSlot    string

	CheckoutDelay time.Duration

	LogLevel string
	LogFile  string

	KafkaBrokers string
	KafkaTopic   string

	MetricsAddr string

	// raw CHECKOUT_DELAY when it did not parse
	invalidDelay string
}

func Load() Config {
	delay, invalidDelay := getEnvDuration("CHECKOUT_DELAY", 2*time.Second)

	return Config{
		Storage:       strings.ToLower(getEnv("STOREFRONT_STORAGE", StorageFile)),
		CartFile:      getEnv("CART_FILE", "cart.json"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		CartSlot:      getEnv("CART_SLOT", "cartItems"),
		CheckoutDelay: delay,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", "storefront.log"),
		KafkaBrokers:  getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "storefront.orders"),
		MetricsAddr:   getEnv("METRICS_ADDR", ""),
		invalidDelay:  invalidDelay,
	}
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StorageFile:
		if c.CartFile == "" {
			return fmt.Errorf("CART_FILE is required for file storage")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for postgres storage")
		}
	default:
		return fmt.Errorf("STOREFRONT_STORAGE[%s] is not valid", c.Storage)
	}

	if c.invalidDelay != "" {
		return fmt.Errorf("CHECKOUT_DELAY[%s] is not valid", c.invalidDelay)
	}
	if c.CheckoutDelay < 0 {
		return fmt.Errorf("CHECKOUT_DELAY must not be negative")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getEnvDuration returns def and the raw value when the value does not parse.
func getEnvDuration(key string, def time.Duration) (time.Duration, string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, ""
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def, v
	}

	return d, ""
}
