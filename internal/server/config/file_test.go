package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("loads from json", func(t *testing.T) {
		path := writeTempJSON(t, dir, "server.json", map[string]any{
			"endpoint_addr_grpc":              "www.example:9000",
			"database_dsn":                    "postgres://x",
			"secret_key":                      "my_secret_key",
			"access_token_validity_duration":  "1m",
			"refresh_token_validity_duration": 180000000000,
			"s3_bucket":                       "bucket",
			"s3_public_base_url":              "https://cdn.example.com/media",
			"max_upload_bytes":                1024,
			"ai_model":                        "llama3",
		})

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg, []string{"-config", path})

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 1*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 3*time.Minute, cfg.RefreshTokenValidityDuration)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "https://cdn.example.com/media", cfg.S3PublicBaseURL)
		assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
		assert.Equal(t, "llama3", cfg.AIModel)
		assert.Equal(t, "us-east-1", cfg.S3Region, "fields missing from the file keep defaults")
	})

	t.Run("loads from toml", func(t *testing.T) {
		path := filepath.Join(dir, "server.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
endpoint_addr_grpc = ":7000"
secret_key = "toml-secret"
ai_timeout = "5s"
max_upload_bytes = 2048
`), 0o600))

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg, []string{"-c", path})

		assert.Equal(t, ":7000", cfg.EndpointAddrGRPC)
		assert.Equal(t, "toml-secret", cfg.SecretKey)
		assert.Equal(t, 5*time.Second, cfg.AITimeout)
		assert.Equal(t, int64(2048), cfg.MaxUploadBytes)
	})

	t.Run("no config flag leaves config untouched", func(t *testing.T) {
		cfg := &Config{EndpointAddrGRPC: "defaults:1234", AITimeout: time.Second}
		parseFile(cfg, []string{"-a", ":1"})

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrGRPC)
		assert.Equal(t, time.Second, cfg.AITimeout)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Panics(t, func() { parseFile(&Config{}, []string{"-config", bad}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		require.Panics(t, func() { parseFile(&Config{}, []string{"-c", filepath.Join(dir, "nope.toml")}) })
	})
}
