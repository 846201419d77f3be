package config

import (
	"flag"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/flagx"
)

// parseFlags applies command-line flags on top of config.
//
//	-a  gRPC bind address            -d  PostgreSQL DSN
//	-s  JWT HMAC secret              -t  access token validity, minutes
//	-r  refresh token validity, min  -u  S3 user
//	-p  S3 password                  -b  S3 bucket
//	-g  S3 region                    -e  S3 endpoint
//	-w  public media base URL        -m  max upload bytes
//	-i  AI endpoint                  -o  AI model
//	-k  AI API key
//
// Unknown flags are filtered out first so other components can own them.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-r", "-u", "-p", "-b", "-g", "-e", "-w", "-m", "-i", "-o", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTokenValidity := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicBaseURL, "w", config.S3PublicBaseURL, "public base URL of uploaded media")
	fs.Int64Var(&config.MaxUploadBytes, "m", config.MaxUploadBytes, "max upload size in bytes")
	fs.StringVar(&config.AIEndpoint, "i", config.AIEndpoint, "OpenAI-compatible API base URL")
	fs.StringVar(&config.AIModel, "o", config.AIModel, "chat-completions model")
	fs.StringVar(&config.AIKey, "k", config.AIKey, "AI API key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidity) * time.Minute
}
