// Package config loads runtime configuration for the WorldCovers CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. WORLDCOVERS_* environment variables, after an optional .env file.
//  3. Optional JSON or YAML file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the catalog HTTP API
//	-g string   address:port of the gRPC health endpoint
//	-i int      online status check interval (seconds)
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "health_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "reference_api_urls": {"colors": "https://ref.example.com"}
//	}
package config
