// Package config provides configuration management for the CLI: defaults,
// an optional YAML file, and environment overrides, in that order.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aristath/rely/internal/domain"
)

// Config holds the runtime defaults for engine runs.
type Config struct {
	LogLevel        string
	Pretty          bool
	ValueType       string // paid | incurred
	YearBasis       string // accident | underwriting | report
	AveragingMethod string // simple | volume | medial
	CurveFamily     string // exponential | power | inverse_power
}

// Load reads configuration. Precedence: built-in defaults, then the YAML
// file (explicit path, or ./rely.yaml when present), then RELY_* environment
// variables. A .env file is honoured if present.
func Load(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:        "info",
		Pretty:          true,
		ValueType:       string(domain.ValueIncurred),
		YearBasis:       "accident",
		AveragingMethod: string(domain.AverageVolume),
		CurveFamily:     string(domain.CurveExponential),
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("rely")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file in the working directory is fine.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		applyFile(cfg, v)
	}

	cfg.LogLevel = getEnv("RELY_LOG_LEVEL", cfg.LogLevel)
	cfg.ValueType = getEnv("RELY_VALUE_TYPE", cfg.ValueType)
	cfg.YearBasis = getEnv("RELY_YEAR_BASIS", cfg.YearBasis)
	cfg.AveragingMethod = getEnv("RELY_AVERAGING_METHOD", cfg.AveragingMethod)
	cfg.CurveFamily = getEnv("RELY_CURVE_FAMILY", cfg.CurveFamily)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, v *viper.Viper) {
	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("pretty") {
		cfg.Pretty = v.GetBool("pretty")
	}
	if v.IsSet("value_type") {
		cfg.ValueType = v.GetString("value_type")
	}
	if v.IsSet("year_basis") {
		cfg.YearBasis = v.GetString("year_basis")
	}
	if v.IsSet("averaging_method") {
		cfg.AveragingMethod = v.GetString("averaging_method")
	}
	if v.IsSet("curve_family") {
		cfg.CurveFamily = v.GetString("curve_family")
	}
}

func (c *Config) validate() error {
	if _, err := domain.ParseValueType(c.ValueType); err != nil {
		return err
	}
	if _, err := domain.ParseYearBasis(c.YearBasis); err != nil {
		return err
	}
	if _, err := domain.ParseAveragingMethod(c.AveragingMethod); err != nil {
		return err
	}
	if _, err := domain.ParseCurveFamily(c.CurveFamily); err != nil {
		return err
	}
	return nil
}

// getEnv retrieves an environment variable value, returning the fallback
// when the variable is not set or empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
