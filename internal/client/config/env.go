package config

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/worldcovers/internal/refdata"
)

const envPrefix = "WORLDCOVERS_"

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(envPrefix + key); ok {
			if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil && d > 0 {
				*dst = d
			}
		}
	}

	str("SERVER_URL", &cfg.ServerURL)
	str("HEALTH_ADDR", &cfg.HealthAddr)
	dur("ONLINE_CHECK_INTERVAL", &cfg.OnlineCheckInterval)
	dur("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	str("CLI_LOG_LEVEL", &cfg.LogLevel)

	for _, r := range refdata.Resources {
		if v, ok := lookup(r.EnvKey()); ok && strings.TrimSpace(v) != "" {
			cfg.ReferenceAPIURLs[string(r)] = strings.TrimSpace(v)
		}
	}
}
