package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Initial view before any client changes the selection.
	DefaultGas     string
	DefaultYear    int
	DefaultOpacity float64

	// SizeClamp keeps marker sizes within [15, 40] for out-of-range values.
	SizeClamp bool

	// Kafka report publishing configuration.
	KafkaEnabled      bool
	KafkaBrokers      []string
	KafkaReportsTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	defaultYear, err := strconv.Atoi(sharedcfg.EnvOrDefault("DEFAULT_YEAR", "2023"))
	if err != nil {
		return nil, errors.New("invalid DEFAULT_YEAR")
	}

	defaultOpacity, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("DEFAULT_OPACITY", "0.8"), 64)
	if err != nil || math.IsNaN(defaultOpacity) || defaultOpacity < 0 || defaultOpacity > 1 {
		return nil, errors.New("invalid DEFAULT_OPACITY: must be between 0 and 1")
	}

	sizeClamp, err := strconv.ParseBool(sharedcfg.EnvOrDefault("SIZE_CLAMP", "true"))
	if err != nil {
		return nil, errors.New("invalid SIZE_CLAMP")
	}

	// Setting KAFKA_BROKERS implies publishing unless KAFKA_ENABLED says otherwise.
	kafkaEnabled := os.Getenv("KAFKA_BROKERS") != ""
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DefaultGas:     sharedcfg.EnvOrDefault("DEFAULT_GAS", "co2"),
		DefaultYear:    defaultYear,
		DefaultOpacity: defaultOpacity,
		SizeClamp:      sizeClamp,

		KafkaEnabled:      kafkaEnabled,
		KafkaBrokers:      sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReportsTopic: sharedcfg.EnvOrDefault("KAFKA_REPORTS_TOPIC", "community-reports"),
	}

	if cfg.DefaultYear < 1977 || cfg.DefaultYear > 2069 {
		return nil, fmt.Errorf("invalid DEFAULT_YEAR: %d not in [1977, 2069]", cfg.DefaultYear)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
	}
	if cfg.KafkaEnabled && cfg.KafkaReportsTopic == "" {
		return nil, errors.New("KAFKA_REPORTS_TOPIC is required when KAFKA_ENABLED is true")
	}

	return cfg, nil
}
