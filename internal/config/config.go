package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/alexiusacademia/gofastener/internal/fastener"
)

// MaxPrecision is the largest number of decimals accepted for written results
const MaxPrecision = 15

// Config holds the defaults of the solve command
type Config struct {
	Output    string // Results CSV written after every solve
	Precision int    // Decimals in written results, negative for full precision
	AreaMode  string // "literal" or "physical"
	Database  string // SQLite run history, empty to disable
}

// Load reads an optional .env file from the working directory and then the
// environment. Variables already set in the environment win over .env.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
	}

	cfg := &Config{
		Output:    getEnv("GOFASTENER_OUTPUT", "fastener_loads.csv"),
		Precision: getEnvAsInt("GOFASTENER_PRECISION", -1),
		AreaMode:  getEnv("GOFASTENER_AREA_MODE", fastener.AreaLiteral.String()),
		Database:  getEnv("GOFASTENER_DB", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configured values
func (c *Config) Validate() error {
	if _, err := fastener.ParseAreaMode(c.AreaMode); err != nil {
		return fmt.Errorf("GOFASTENER_AREA_MODE: %w", err)
	}
	if err := CheckPrecision(c.Precision); err != nil {
		return fmt.Errorf("GOFASTENER_PRECISION: %w", err)
	}
	return nil
}

// CheckPrecision bounds the decimals written to result files. Negative values
// select full precision.
func CheckPrecision(precision int) error {
	if precision > MaxPrecision {
		return fmt.Errorf("precision must be at most %d, got %d", MaxPrecision, precision)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
