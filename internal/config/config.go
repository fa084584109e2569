// Package config reads process settings from the environment, loading a
// .env file first when one is present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Tables   TablesConfig
	Queue    QueueConfig
	API      APIConfig
	Web      WebConfig
	Worker   WorkerConfig
	RunLocal bool
}

type TablesConfig struct {
	Menu         string
	Orders       string
	Reservations string
	Idempotency  string // empty disables Idempotency-Key handling
}

type QueueConfig struct {
	OrdersURL string // empty disables order events
}

type APIConfig struct {
	Port              string
	IdempotencyTTL    time.Duration
	StrictTransitions bool
}

type WebConfig struct {
	Port   string
	APIURL string // base URL of the API, without /api
}

type WorkerConfig struct {
	MetricsNamespace string // empty disables CloudWatch metrics
}

// Load reads .env (if any) and the environment.
func Load() (*Config, error) {
	return load(".env")
}

func load(files ...string) (*Config, error) {
	// a missing .env is fine, the environment may be set another way
	_ = godotenv.Load(files...)

	ttl, err := time.ParseDuration(getEnv("IDEMPOTENCY_TTL", "48h"))
	if err != nil {
		return nil, fmt.Errorf("IDEMPOTENCY_TTL: %w", err)
	}
	strict, err := getBool("STRICT_STATUS_TRANSITIONS", false)
	if err != nil {
		return nil, err
	}
	runLocal, err := getBool("RUN_LOCAL", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		Tables: TablesConfig{
			Menu:         getEnv("MENU_TABLE_NAME", "RestaurantMenu"),
			Orders:       getEnv("ORDERS_TABLE_NAME", "RestaurantOrders"),
			Reservations: getEnv("RESERVATIONS_TABLE_NAME", "RestaurantReservations"),
			Idempotency:  getEnv("IDEMPOTENCY_TABLE", ""),
		},
		Queue: QueueConfig{
			OrdersURL: getEnv("ORDERS_QUEUE_URL", ""),
		},
		API: APIConfig{
			Port:              getEnv("PORT", "3001"),
			IdempotencyTTL:    ttl,
			StrictTransitions: strict,
		},
		Web: WebConfig{
			Port:   getEnv("WEB_PORT", "3000"),
			APIURL: getEnv("API_URL", "http://localhost:3001"),
		},
		Worker: WorkerConfig{
			MetricsNamespace: getEnv("METRICS_NAMESPACE", ""),
		},
		RunLocal: runLocal,
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
