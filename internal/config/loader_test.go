package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ferry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultUpstreamURL, cfg.Upstream.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Upstream.Timeout.GetDuration(0))
	assert.Equal(t, "development", cfg.Server.LogMode)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/ferry.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  readTimeout: 5s
  writeTimeout: 15s
  logMode: production
  allowOrigins:
    - http://localhost:3000
upstream:
  baseUrl: "https://jsonplaceholder.typicode.com"
  timeout: 10s
  proxyUrl: "http://127.0.0.1:8888"
  insecureTls: true
  userAgent: "ferry-demo"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout.GetDuration(0))
	assert.Equal(t, "production", cfg.Server.LogMode)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowOrigins)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout.GetDuration(0))
	assert.Equal(t, "http://127.0.0.1:8888", cfg.Upstream.ProxyURL)
	assert.True(t, cfg.Upstream.InsecureTLS)
	assert.Equal(t, "ferry-demo", cfg.Upstream.UserAgent)
}

func TestLoad_PartialConfigGetsDefaults(t *testing.T) {
	path := writeConfig(t, `
upstream:
  baseUrl: "http://localhost:4000"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000", cfg.Upstream.BaseURL)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultTimeout, cfg.Upstream.Timeout.GetDuration(0))
}

func TestLoad_SchemaRejectsWrongType(t *testing.T) {
	path := writeConfig(t, `
upstream:
  insecureTls: "yes please"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestLoad_SchemaRejectsUnknownSection(t *testing.T) {
	path := writeConfig(t, `
databse:
  dsn: whoops
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, `
upstream:
  timeout: "ten seconds"
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestParse_EmptyDocumentIsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
}
