package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/saketh1999/consistency-cal-sub000/internal/flagx"
	"github.com/saketh1999/consistency-cal-sub000/internal/timex"
)

// fileConfig is the on-disk shape. Durations accept "15m" or nanoseconds.
// Fields left out of the file keep their current value.
type fileConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc" toml:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn" toml:"database_dsn"`
	SecretKey                    string         `json:"secret_key" toml:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" toml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" toml:"refresh_token_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user" toml:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password" toml:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket" toml:"s3_bucket"`
	S3Region                     string         `json:"s3_region" toml:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint" toml:"s3_base_endpoint"`
	S3PublicBaseURL              string         `json:"s3_public_base_url" toml:"s3_public_base_url"`
	PresignValidityDuration      timex.Duration `json:"presign_validity_duration" toml:"presign_validity_duration"`
	MaxUploadBytes               int64          `json:"max_upload_bytes" toml:"max_upload_bytes"`
	AIEndpoint                   string         `json:"ai_endpoint" toml:"ai_endpoint"`
	AIModel                      string         `json:"ai_model" toml:"ai_model"`
	AIKey                        string         `json:"ai_key" toml:"ai_key"`
	AITimeout                    timex.Duration `json:"ai_timeout" toml:"ai_timeout"`
}

// parseFile overlays the file named by -c / -config. Read or decode errors
// panic: a broken config file is not something to start with.
func parseFile(config *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	b, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &fileConfig{}
	switch flagx.FormatOf(path) {
	case flagx.FormatTOML:
		err = toml.Unmarshal(b, c)
	default:
		err = json.Unmarshal(b, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *fileConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	setDuration(&config.RefreshTokenValidityDuration, c.RefreshTokenValidityDuration)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)
	setDuration(&config.PresignValidityDuration, c.PresignValidityDuration)
	if c.MaxUploadBytes > 0 {
		config.MaxUploadBytes = c.MaxUploadBytes
	}
	setString(&config.AIEndpoint, c.AIEndpoint)
	setString(&config.AIModel, c.AIModel)
	setString(&config.AIKey, c.AIKey)
	setDuration(&config.AITimeout, c.AITimeout)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
