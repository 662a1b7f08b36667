package config_test

import (
	"os"
	"path/filepath"
	"taskKeeper/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad тестирует чтение конфигурации из YAML
func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: "9090"

database:
  path: data/tasks.db

logging:
  development: true

repository:
  type: sqlite
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "data/tasks.db", cfg.Database.Path)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, config.RepositorySQLite, cfg.Repository.Type)
	assert.Equal(t, "127.0.0.1:9090", cfg.ServerAddr())
}

// TestLoad_Defaults тестирует значения по умолчанию
func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
repository:
  type: inmemory
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, config.RepositoryInMemory, cfg.Repository.Type)
}

// TestLoad_EnvOverride тестирует переопределение через окружение
func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
database:
  path: data/tasks.db

repository:
  type: inmemory
`)

	t.Setenv("TASKKEEPER_REPOSITORY_TYPE", "sqlite")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.RepositorySQLite, cfg.Repository.Type)
}

// TestLoad_InvalidRepositoryType тестирует закрытый список бэкендов
func TestLoad_InvalidRepositoryType(t *testing.T) {
	path := writeConfig(t, `
repository:
  type: mongo
`)

	cfg, err := config.Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

// TestLoad_SQLiteRequiresPath тестирует обязательность пути к файлу
func TestLoad_SQLiteRequiresPath(t *testing.T) {
	path := writeConfig(t, `
repository:
  type: sqlite
`)

	cfg, err := config.Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

// TestLoad_MissingFile тестирует отсутствие файла конфигурации
func TestLoad_MissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
