// Package flagx holds small helpers for pre-parsing command-line flags
// before the main flag set runs.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the allowed flags from args, together with their
// values. Both "-c conf.yaml" and "-c=conf.yaml" forms are recognised. A
// separate value is taken only when the next argument does not start
// with "-".
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") {
			if name, _, ok := strings.Cut(arg, "="); ok {
				if _, keep := allowed[name]; keep {
					filtered = append(filtered, arg)
				}
				continue
			}
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigFile returns the value of -c / -config found in args, or "" when
// neither is present. The last occurrence wins. Other flags are ignored so
// the caller can parse them afterwards with its own flag set.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
