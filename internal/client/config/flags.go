package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/worldcovers/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only -a, -g and -i are parsed so other components' flags pass through.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-i"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the catalog server")
	fs.StringVar(&cfg.HealthAddr, "g", cfg.HealthAddr, "address and port of the health endpoint")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	return nil
}
