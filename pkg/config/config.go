package config

import (
	"fmt"
	"os"
	"strconv"

	"battleships-api/pkg/constants"
)

// Config holds the process-wide settings read from the environment.
type Config struct {
	Port            string
	PuzzlesFile     string
	GeneratorSeed   string
	ExhaustiveLimit int
}

// Load loads configuration from environment variables, applying the
// teacher's fallback-with-validation pattern.
func Load() (*Config, error) {
	limit, err := getEnvInt("EXHAUSTIVE_CALL_LIMIT", constants.DefaultExhaustiveCallLimit)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("EXHAUSTIVE_CALL_LIMIT must be positive, got %d", limit)
	}

	return &Config{
		Port:            getEnv("PORT", constants.DefaultPort),
		PuzzlesFile:     getEnv("PUZZLES_FILE", "/data/puzzles.json"),
		GeneratorSeed:   getEnv("GENERATOR_SEED", ""),
		ExhaustiveLimit: limit,
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q: %w", key, val, err)
	}
	return n, nil
}
