package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/worldcovers/internal/flagx"
	"github.com/dmitrijs2005/worldcovers/internal/timex"
)

// FileConfig is the on-disk form of Config. Durations accept "15m" or
// integer nanoseconds. Only fields present in the file override earlier
// layers.
type FileConfig struct {
	HTTPAddr                     string            `json:"http_addr" yaml:"http_addr"`
	GRPCAddr                     string            `json:"grpc_addr" yaml:"grpc_addr"`
	DatabaseDSN                  string            `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    string            `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration  timex.Duration    `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration    `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	S3AccessKey                  string            `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey                  string            `json:"s3_secret_key" yaml:"s3_secret_key"`
	S3Bucket                     string            `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                     string            `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               string            `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3PublicBaseURL              string            `json:"s3_public_base_url" yaml:"s3_public_base_url"`
	ReferenceAPIURLs             map[string]string `json:"reference_api_urls" yaml:"reference_api_urls"`
	RequestTimeout               timex.Duration    `json:"request_timeout" yaml:"request_timeout"`
	MaxImageSize                 int64             `json:"max_image_size" yaml:"max_image_size"`
	AllowedOrigins               []string          `json:"allowed_origins" yaml:"allowed_origins"`
	LoginRequestsPerMinute       int               `json:"login_requests_per_minute" yaml:"login_requests_per_minute"`
	LogLevel                     string            `json:"log_level" yaml:"log_level"`
}

// parseFile loads the file named by -c/-config, if any. Files ending in
// .yaml or .yml are YAML, everything else is JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.HTTPAddr, fc.HTTPAddr)
	set(&cfg.GRPCAddr, fc.GRPCAddr)
	set(&cfg.DatabaseDSN, fc.DatabaseDSN)
	set(&cfg.SecretKey, fc.SecretKey)
	set(&cfg.S3AccessKey, fc.S3AccessKey)
	set(&cfg.S3SecretKey, fc.S3SecretKey)
	set(&cfg.S3Bucket, fc.S3Bucket)
	set(&cfg.S3Region, fc.S3Region)
	set(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	set(&cfg.S3PublicBaseURL, fc.S3PublicBaseURL)
	set(&cfg.LogLevel, fc.LogLevel)

	if fc.AccessTokenValidityDuration.Duration > 0 {
		cfg.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.RefreshTokenValidityDuration.Duration > 0 {
		cfg.RefreshTokenValidityDuration = fc.RefreshTokenValidityDuration.Duration
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.MaxImageSize > 0 {
		cfg.MaxImageSize = fc.MaxImageSize
	}
	if len(fc.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.LoginRequestsPerMinute > 0 {
		cfg.LoginRequestsPerMinute = fc.LoginRequestsPerMinute
	}
	for name, u := range fc.ReferenceAPIURLs {
		cfg.ReferenceAPIURLs[name] = u
	}
}
