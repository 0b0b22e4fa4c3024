package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Contains(t, cfg.DatabaseURL, "fibercare")
	assert.Empty(t, cfg.RulesFile)
	assert.False(t, cfg.StrictRules)
	assert.Empty(t, cfg.ArchiveBucket)
	assert.Equal(t, "http://localhost:5173", cfg.CORSAllowOrigin)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOPOLOGY_RULES_FILE", "/etc/fibercare/rules.yaml")
	t.Setenv("TOPOLOGY_STRICT_RULES", "true")
	t.Setenv("ANALYSIS_ARCHIVE_BUCKET", "fibercare-reports")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "/etc/fibercare/rules.yaml", cfg.RulesFile)
	assert.True(t, cfg.StrictRules)
	assert.Equal(t, "fibercare-reports", cfg.ArchiveBucket)
}

func TestEnvInt(t *testing.T) {
	assert.Equal(t, 42, EnvInt("NONEXISTENT_VAR", 42))

	t.Setenv("TEST_INT", "100")
	assert.Equal(t, 100, EnvInt("TEST_INT", 42))

	t.Setenv("TEST_BAD_INT", "notanumber")
	assert.Equal(t, 42, EnvInt("TEST_BAD_INT", 42))
}

func TestEnvBool(t *testing.T) {
	assert.False(t, EnvBool("NONEXISTENT_VAR", false))
	assert.True(t, EnvBool("NONEXISTENT_VAR", true))

	t.Setenv("TEST_BOOL", "1")
	assert.True(t, EnvBool("TEST_BOOL", false))

	t.Setenv("TEST_BAD_BOOL", "maybe")
	assert.False(t, EnvBool("TEST_BAD_BOOL", false))
}
