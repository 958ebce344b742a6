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

// FileConfig is a DTO used exclusively for file unmarshalling. After
// parsing, values present in the file are copied into the runtime Config.
type FileConfig struct {
	ServerURL           string            `json:"server_url" yaml:"server_url"`
	HealthAddr          string            `json:"health_addr" yaml:"health_addr"`
	OnlineCheckInterval timex.Duration    `json:"online_check_interval" yaml:"online_check_interval"`
	RequestTimeout      timex.Duration    `json:"request_timeout" yaml:"request_timeout"`
	ReferenceAPIURLs    map[string]string `json:"reference_api_urls" yaml:"reference_api_urls"`
	LogLevel            string            `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. Files ending
// in .yaml or .yml are YAML, everything else is JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.HealthAddr != "" {
		cfg.HealthAddr = fc.HealthAddr
	}
	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	for name, u := range fc.ReferenceAPIURLs {
		cfg.ReferenceAPIURLs[name] = u
	}
	return nil
}
