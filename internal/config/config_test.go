package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service_name: checkout-from-file
http_addr: ":9090"
shutdown_timeout: 10s
db:
  driver: postgres
  dsn: postgres://localhost/checkout
tracing:
  exporter: stdout
`), 0o600))

	cfg, err := load(env(map[string]string{
		"CONFIG_FILE":      path,
		"HTTP_ADDR":        ":7070",
		"SEED_DEMO":        "true",
		"SHUTDOWN_TIMEOUT": "3s",
	}))
	require.NoError(t, err)

	assert.Equal(t, "checkout-from-file", cfg.ServiceName)
	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.Shutdown)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "postgres://localhost/checkout", cfg.DB.DSN)
	assert.Equal(t, "warn", cfg.DB.LogLevel)
	assert.Equal(t, ExporterStdout, cfg.Tracing.Exporter)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"unknown exporter", map[string]string{"OTEL_TRACES_EXPORTER": "zipkin"}},
		{"bad duration", map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
		{"bad bool", map[string]string{"SEED_DEMO": "maybe"}},
		{"missing file", map[string]string{"CONFIG_FILE": "/nonexistent/config.yaml"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(env(tc.env))
			assert.Error(t, err)
		})
	}
}

func TestMemoryDriverNeedsNoDSN(t *testing.T) {
	cfg, err := load(env(map[string]string{"DB_DRIVER": "memory", "DB_DSN": ""}))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
}
