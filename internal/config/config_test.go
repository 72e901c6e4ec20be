package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1r3sky/wallet-backend/internal/usecase/validator"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.GRPCPort)
	assert.Equal(t, ":9090", cfg.MetricsPort)
	assert.Equal(t, "dev-token", cfg.APIToken)
	assert.Equal(t, validator.DescriptionPolicyStrict, cfg.DescriptionPolicy)
	assert.Equal(t, 256, cfg.DescriptionMaxLength)
	assert.True(t, cfg.Cost().IsZero())
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.GenesisWallets)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=wallet sslmode=disable", cfg.DatabaseConnString())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())

	t.Setenv("DB_CONN_STR", "postgres://user:pass@db:5432/wallet?sslmode=disable")
	t.Setenv("DESCRIPTION_POLICY", "LENIENT")
	t.Setenv("DESCRIPTION_MAX_LENGTH", "64")
	t.Setenv("TRANSFER_COST", "3")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://user:pass@db:5432/wallet?sslmode=disable", cfg.DatabaseConnString())
	assert.Equal(t, validator.DescriptionPolicyLenient, cfg.DescriptionPolicy)
	assert.Equal(t, 64, cfg.DescriptionMaxLength)
	assert.Equal(t, "3", cfg.Cost().String())
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_CoercesInvalidValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())

	t.Setenv("DESCRIPTION_POLICY", "sometimes")
	t.Setenv("TRANSFER_COST", "-5")
	t.Setenv("LOG_FORMAT", "xml")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, validator.DescriptionPolicyStrict, cfg.DescriptionPolicy)
	assert.True(t, cfg.Cost().IsZero())
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Len(t, cfg.Warnings, 3)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	chdir(t, dir)

	content := "GENESIS_WALLETS=0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed:1000\nTRANSFER_COST=2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed:1000", cfg.GenesisWallets)
	assert.Equal(t, int64(2), cfg.TransferCost)
}

// chdir switches the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir on newer toolchains).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
