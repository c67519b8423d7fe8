package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetenv(t *testing.T, key string) {
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func setPostgresEnv(t *testing.T) {
	unsetenv(t, "DATABASE_URL")
	t.Setenv("POSTGRES_USER", "mines")
	t.Setenv("POSTGRES_PASSWORD", "p@ss word")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_DB", "minesweeper")
}

func TestPort(t *testing.T) {
	tests := map[string]string{
		"":          ":8080",
		"9000":      ":9000",
		":9001":     ":9001",
		"0.0.0.0:1": "0.0.0.0:1",
	}
	for env, expected := range tests {
		t.Setenv("APP_PORT", env)
		assert.Equal(t, expected, Port(), "APP_PORT=%q", env)
	}
}

func TestDevelopment(t *testing.T) {
	t.Setenv("DEVELOPMENT", "1")
	assert.True(t, Development())
	t.Setenv("DEVELOPMENT", "0")
	assert.False(t, Development())
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example, ,https://b.example ")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, AllowedOrigins())

	t.Setenv("CORS_ORIGINS", "")
	assert.Empty(t, AllowedOrigins())
}

func TestNewDatabaseFromEnv(t *testing.T) {
	setPostgresEnv(t)

	db, err := NewDatabase()
	require.NoError(t, err)

	assert.Equal(t, uint16(5433), db.Port)
	assert.Equal(t, "disable", db.SSLMode)
	assert.Equal(t,
		"postgresql://mines:p%40ss%20word@db:5433/minesweeper?sslmode=disable",
		db.URL(),
	)

	cfg, err := db.PgxpoolConfig()
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.ConnConfig.Host)
	assert.Equal(t, "p@ss word", cfg.ConnConfig.Password)
}

func TestNewDatabasePasswordFile(t *testing.T) {
	setPostgresEnv(t)
	unsetenv(t, "POSTGRES_PASSWORD")
	path := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(path, []byte("secret\n"), 0o600))
	t.Setenv("POSTGRES_PASSWORD_FILE", path)

	db, err := NewDatabase()
	require.NoError(t, err)

	assert.Equal(t, "secret", db.Password)
}

func TestNewDatabaseURLTakesPrecedence(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@h:1/d")

	db, err := NewDatabase()
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@h:1/d", db.URL())
}

func TestNewDatabaseMissingUser(t *testing.T) {
	unsetenv(t, "DATABASE_URL")
	unsetenv(t, "POSTGRES_USER")

	_, err := NewDatabase()
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("APP_PORT", "3000")
	t.Setenv("LOG_FILE", "/tmp/mines.log")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "/tmp/mines.log", cfg.LogFile)
	assert.Equal(t, "db", cfg.Fields()["pg_host"])
}
