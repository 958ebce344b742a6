package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/worldcovers/internal/refdata"
)

// Config holds runtime settings for the WorldCovers CLI.
//
// ReferenceAPIURLs lets the client read reference resources directly; a
// resource without a URL is served by the catalog server instead.
type Config struct {
	ServerURL           string
	HealthAddr          string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	ReferenceAPIURLs    map[string]string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.HealthAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = refdata.DefaultTimeout
	c.ReferenceAPIURLs = map[string]string{}
	c.LogLevel = "warn"
}

// ReferenceURLs returns ReferenceAPIURLs keyed by known resources.
func (c *Config) ReferenceURLs() map[refdata.Resource]string {
	out := make(map[refdata.Resource]string, len(c.ReferenceAPIURLs))
	for name, u := range c.ReferenceAPIURLs {
		if r, ok := refdata.ParseResource(name); ok {
			out[r] = u
		}
	}
	return out
}

// LoadConfig constructs a Config from defaults, the environment, the file
// named by -c/-config and the remaining flags. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	applyEnv(cfg, lookup)
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
