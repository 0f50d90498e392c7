package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "products.csv", cfg.Catalog.Path)
	assert.Equal(t, "abort", cfg.Catalog.LoadPolicy)
	assert.Equal(t, "exact", cfg.Catalog.MatchMode)
	assert.Equal(t, "receiptsFolder", cfg.Receipts.Dir)
	assert.Equal(t, 3, cfg.Receipts.WriteAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Receipts.RetryDelay)
	assert.Equal(t, 3, cfg.Checkout.PaymentAttempts)
	assert.Equal(t, "$", cfg.Checkout.Currency)
	assert.Equal(t, "file", cfg.Log.Output)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "products.csv", cfg.Catalog.Path)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
catalog:
  path: inventory.csv
  match_mode: contains
receipts:
  dir: out/receipts
  retry_delay: 250ms
checkout:
  payment_attempts: 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "inventory.csv", cfg.Catalog.Path)
	assert.Equal(t, "contains", cfg.Catalog.MatchMode)
	assert.Equal(t, "abort", cfg.Catalog.LoadPolicy)
	assert.Equal(t, "out/receipts", cfg.Receipts.Dir)
	assert.Equal(t, 250*time.Millisecond, cfg.Receipts.RetryDelay)
	assert.Equal(t, 1, cfg.Checkout.PaymentAttempts)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("STORE_CATALOG_PATH", "env.csv")
	t.Setenv("STORE_CATALOG_LOAD_POLICY", "skip")

	cfg, err := Load(writeConfig(t, "catalog:\n  path: file.csv\n"))
	require.NoError(t, err)

	assert.Equal(t, "env.csv", cfg.Catalog.Path)
	assert.Equal(t, "skip", cfg.Catalog.LoadPolicy)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"match mode", "catalog:\n  match_mode: fuzzy\n", "catalog.match_mode"},
		{"load policy", "catalog:\n  load_policy: ignore\n", "catalog.load_policy"},
		{"write attempts", "receipts:\n  write_attempts: 0\n", "receipts.write_attempts"},
		{"payment attempts", "checkout:\n  payment_attempts: 0\n", "checkout.payment_attempts"},
		{"log output", "log:\n  output: syslog\n", "log.output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestYAML(t *testing.T) {
	out, err := Default().YAML()
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.Contains(text, "match_mode: exact"), text)
	assert.True(t, strings.Contains(text, "dir: receiptsFolder"), text)
}
