package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/worldcovers/internal/flagx"
)

// parseFlags overlays command-line flags:
//
//	-a string       HTTP bind address (":8080")
//	-grpc string    gRPC health bind address (":50051")
//	-d string       PostgreSQL DSN
//	-s string       JWT HMAC secret key
//	-t int          access token validity, minutes
//	-r int          refresh token validity, minutes
//	-u string       S3 access key
//	-p string       S3 secret key
//	-b string       S3 bucket
//	-region string  S3 region
//	-e string       S3 base endpoint
//	-public-url     public base URL for stored images
//	-log-level      debug, info, warn or error
//
// Only these flags are parsed, so -c/-config and unknown flags pass through.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-a", "-grpc", "-d", "-s", "-t", "-r", "-u", "-p", "-b", "-region", "-e", "-public-url", "-log-level",
	})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "HTTP address and port")
	fs.StringVar(&cfg.GRPCAddr, "grpc", cfg.GRPCAddr, "gRPC health address and port")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")

	accessMinutes := fs.Int("t", int(cfg.AccessTokenValidityDuration.Minutes()), "access token validity (minutes)")
	refreshMinutes := fs.Int("r", int(cfg.RefreshTokenValidityDuration.Minutes()), "refresh token validity (minutes)")

	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret key")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "region", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.S3PublicBaseURL, "public-url", cfg.S3PublicBaseURL, "public base URL of the image bucket")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.AccessTokenValidityDuration = time.Duration(*accessMinutes) * time.Minute
	cfg.RefreshTokenValidityDuration = time.Duration(*refreshMinutes) * time.Minute
	return nil
}
