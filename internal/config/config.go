// Package config loads the wallet service settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/f1r3sky/wallet-backend/internal/domain"
	"github.com/f1r3sky/wallet-backend/internal/usecase/validator"
)

// Config holds all configuration for the wallet service.
type Config struct {
	GRPCPort    string `mapstructure:"GRPC_PORT"`
	MetricsPort string `mapstructure:"METRICS_PORT"`
	APIToken    string `mapstructure:"API_TOKEN"`

	DBConnStr  string `mapstructure:"DB_CONN_STR"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	DescriptionPolicy    validator.DescriptionPolicy `mapstructure:"DESCRIPTION_POLICY"`
	DescriptionMaxLength int                         `mapstructure:"DESCRIPTION_MAX_LENGTH"`
	TransferCost         int64                       `mapstructure:"TRANSFER_COST"`

	// GenesisWallets is a comma-separated address:amount list funded on first start
	GenesisWallets string `mapstructure:"GENESIS_WALLETS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Warnings lists values that were invalid and replaced by a default
	Warnings []string `mapstructure:"-"`
}

var keys = []string{
	"GRPC_PORT", "METRICS_PORT", "API_TOKEN",
	"DB_CONN_STR", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"DESCRIPTION_POLICY", "DESCRIPTION_MAX_LENGTH", "TRANSFER_COST", "GENESIS_WALLETS",
	"LOG_LEVEL", "LOG_FORMAT",
}

// LoadConfig reads configuration from a .env file in the working directory, if present,
// and environment variables, which take precedence.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("GRPC_PORT", ":8080")
	viper.SetDefault("METRICS_PORT", ":9090")
	viper.SetDefault("API_TOKEN", "dev-token")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "wallet")
	viper.SetDefault("DESCRIPTION_POLICY", string(validator.DescriptionPolicyStrict))
	viper.SetDefault("DESCRIPTION_MAX_LENGTH", domain.DefaultDescriptionMaxLength)
	viper.SetDefault("TRANSFER_COST", 0)
	viper.SetDefault("GENESIS_WALLETS", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")

	viper.AutomaticEnv()

	// Bind environment variables explicitly so they appear in Unmarshal
	for _, key := range keys {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.normalize()
	return &cfg, nil
}

// normalize replaces invalid values with their defaults and records a warning for each
func (c *Config) normalize() {
	policy, err := validator.ParseDescriptionPolicy(string(c.DescriptionPolicy))
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("%v, using %s", err, validator.DescriptionPolicyStrict))
		policy = validator.DescriptionPolicyStrict
	}
	c.DescriptionPolicy = policy

	if c.DescriptionMaxLength < 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("DESCRIPTION_MAX_LENGTH %d is negative, using %d",
			c.DescriptionMaxLength, domain.DefaultDescriptionMaxLength))
		c.DescriptionMaxLength = domain.DefaultDescriptionMaxLength
	}

	if c.TransferCost < 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("TRANSFER_COST %d is negative, using 0", c.TransferCost))
		c.TransferCost = 0
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "text" && c.LogFormat != "json" {
		c.Warnings = append(c.Warnings, fmt.Sprintf("LOG_FORMAT %q is unknown, using text", c.LogFormat))
		c.LogFormat = "text"
	}
}

// DatabaseConnString returns DB_CONN_STR, or builds a connection string from the individual DB_* values
func (c *Config) DatabaseConnString() string {
	if c.DBConnStr != "" {
		return c.DBConnStr
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// Cost returns the configured network fee charged per outgoing transfer
func (c *Config) Cost() domain.Amount {
	return domain.MustAmount(c.TransferCost)
}
