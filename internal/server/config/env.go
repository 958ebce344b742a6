package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/worldcovers/internal/refdata"
)

const envPrefix = "WORLDCOVERS_"

// applyEnv overlays WORLDCOVERS_* variables. Unparseable numbers and
// durations are ignored.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(envPrefix + key); ok {
			if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
				*dst = d
			}
		}
	}

	str("HTTP_ADDR", &cfg.HTTPAddr)
	str("GRPC_ADDR", &cfg.GRPCAddr)
	str("DATABASE_DSN", &cfg.DatabaseDSN)
	str("SECRET_KEY", &cfg.SecretKey)
	dur("ACCESS_TOKEN_TTL", &cfg.AccessTokenValidityDuration)
	dur("REFRESH_TOKEN_TTL", &cfg.RefreshTokenValidityDuration)
	str("S3_ACCESS_KEY", &cfg.S3AccessKey)
	str("S3_SECRET_KEY", &cfg.S3SecretKey)
	str("S3_BUCKET", &cfg.S3Bucket)
	str("S3_REGION", &cfg.S3Region)
	str("S3_BASE_ENDPOINT", &cfg.S3BaseEndpoint)
	str("S3_PUBLIC_BASE_URL", &cfg.S3PublicBaseURL)
	dur("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	str("LOG_LEVEL", &cfg.LogLevel)

	if v, ok := lookup(envPrefix + "MAX_IMAGE_SIZE"); ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil && n > 0 {
			cfg.MaxImageSize = n
		}
	}
	if v, ok := lookup(envPrefix + "ALLOWED_ORIGINS"); ok && strings.TrimSpace(v) != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	for _, r := range refdata.Resources {
		if v, ok := lookup(r.EnvKey()); ok && strings.TrimSpace(v) != "" {
			cfg.ReferenceAPIURLs[string(r)] = strings.TrimSpace(v)
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
