package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the commerce engine.
type Config struct {
	Env      string
	LogLevel string
	Port     uint16

	// Remote collaborators
	CartServiceURL      string
	OrderServiceURL     string
	PromotionServiceURL string
	ClientTimeout       time.Duration

	// Commerce constants
	DeliveryFee     int64
	RefreshDebounce time.Duration
	NotificationTTL time.Duration
}

// NewConfig loads configuration from the environment, with a .env file as
// an optional local override.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                 getEnv("ENV", "dev"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CartServiceURL:      getEnv("CART_SERVICE_URL", "http://localhost:4001/api"),
		OrderServiceURL:     getEnv("ORDER_SERVICE_URL", "http://localhost:4002/api"),
		PromotionServiceURL: getEnv("PROMOTION_SERVICE_URL", "http://localhost:4003/api"),
	}

	port, err := getEnvUint16("PORT", 3000)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	fee, err := getEnvInt64("DELIVERY_FEE", 30000)
	if err != nil {
		return nil, err
	}
	cfg.DeliveryFee = fee

	cfg.ClientTimeout, err = getEnvDuration("CLIENT_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.RefreshDebounce, err = getEnvDuration("REFRESH_DEBOUNCE", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	cfg.NotificationTTL, err = getEnvDuration("NOTIFICATION_TTL", 4*time.Second)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvUint16(key string, fallback uint16) (uint16, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return uint16(n), nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
