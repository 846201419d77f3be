// Package flagx contains helpers for reading the config-file flag before the
// full flag set is parsed.
package flagx

import (
	"flag"
	"path/filepath"
	"strings"
)

// FilterArgs keeps only the allowed flags (and their values) from args.
// Both "-c conf.json" and "--config=conf.json" forms are recognised. A token
// starting with '-' is never taken as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
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

// ConfigFileFlag returns the value of -c / -config from args (usually
// os.Args[1:]), or "" when neither is present. The last occurrence wins.
func ConfigFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}

// Format is the encoding of a config file.
type Format int

const (
	FormatJSON Format = iota
	FormatTOML
)

// FormatOf picks the decoder by file extension. Anything but .toml is JSON.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}
