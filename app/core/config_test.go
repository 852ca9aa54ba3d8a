package core

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupConfigFromEnv(t *testing.T) {
	addr := "localhost:11111"
	os.Setenv("MEMOCHAT_SERVICE_ADDRESS", addr)
	os.Setenv("MEMOCHAT_POSTGRESQL_DSN", "postgres://localhost/memochat")

	cfg := LoadBaseConfigFromENV()

	assert.Equal(t, addr, cfg.Addr)
	assert.Equal(t, "postgres://localhost/memochat", cfg.Postgres.FormatDSN())
}

func TestConfigDefaults(t *testing.T) {
	cfg := CoreConfig{}
	cfg.applyDefaults()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 5, cfg.Chat.MaxToolSteps)
	assert.Equal(t, 8000, cfg.Chat.HistoryTokenLimit)
	assert.Equal(t, 30, cfg.Auth.SessionTTLDays)
}
