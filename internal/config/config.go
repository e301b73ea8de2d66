// Package config loads the demo binary's tunables from the
// environment, with an optional .env file loaded first. This mirrors
// fight-club-go's internal/config package: plain env-var reads with
// typed defaults, not a generic config framework.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Demo holds every knob cmd/tqueuedemo exposes.
type Demo struct {
	Capacity    int
	Producers   int
	Consumers   int
	RunFor      time.Duration
	ProduceRate float64 // events/sec across all producers together, 0 disables throttling
	MetricsAddr string
	MetricsNS   string
}

// Load reads a .env file if present (current directory, then parent,
// matching the teacher's fallback order) and returns Demo populated
// from the environment, falling back to sensible defaults.
func Load() Demo {
	if err := godotenv.Load(".env"); err != nil {
		_ = godotenv.Load("../.env")
	}

	return Demo{
		Capacity:    getEnvInt("TQUEUE_CAPACITY", 256),
		Producers:   getEnvInt("TQUEUE_PRODUCERS", 4),
		Consumers:   getEnvInt("TQUEUE_CONSUMERS", 4),
		RunFor:      getEnvDuration("TQUEUE_RUN_FOR", 10*time.Second),
		ProduceRate: getEnvFloat("TQUEUE_PRODUCE_RATE", 0),
		MetricsAddr: getEnvString("TQUEUE_METRICS_ADDR", "127.0.0.1:6060"),
		MetricsNS:   getEnvString("TQUEUE_METRICS_NAMESPACE", "tqueuedemo"),
	}
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
