package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
				"-t", "1", "-r", "3", "-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
				"-w", "https://cdn", "-m", "100", "-i", "http://ai", "-o", "model", "-k", "key",
			},
			expected: &Config{
				EndpointAddrGRPC:             "127.0.0.1:9090",
				DatabaseDSN:                  "db",
				SecretKey:                    "secret",
				AccessTokenValidityDuration:  1 * time.Minute,
				RefreshTokenValidityDuration: 3 * time.Minute,
				S3RootUser:                   "user",
				S3RootPassword:               "password",
				S3Bucket:                     "bucket",
				S3Region:                     "us-west-1",
				S3BaseEndpoint:               "http://endpoint",
				S3PublicBaseURL:              "https://cdn",
				MaxUploadBytes:               100,
				AIEndpoint:                   "http://ai",
				AIModel:                      "model",
				AIKey:                        "key",
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-c", "server.toml", "-x", "1"},
			expected: &Config{},
		},
		{
			name:        "bad int panics",
			args:        []string{"-t", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
