package config

import (
	"flag"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/flagx"
)

// parseFlags applies command-line flags on top of cfg.
//
//	-a  server address:port        -i  online check interval, seconds
//	-f  local database file        -l  log file
//	-v  debug logging to stderr    -w  push debounce, milliseconds
//	-m  max upload bytes           -q  local value quota, bytes
//	-o  local media directory      -n  calendar id
//	-k  calendar bearer token
//
// Unknown flags are filtered out first so other components can own them.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-f", "-l", "-v", "-w", "-m", "-q", "-o", "-n", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DBPath, "f", cfg.DBPath, "local database file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file")
	fs.BoolVar(&cfg.Debug, "v", cfg.Debug, "debug logging, mirrored to stderr")
	debounce := fs.Int("w", int(cfg.PushDebounce.Milliseconds()), "push debounce (in milliseconds, 0 disables)")
	fs.Int64Var(&cfg.MaxUploadBytes, "m", cfg.MaxUploadBytes, "max upload size in bytes")
	fs.IntVar(&cfg.LocalQuotaBytes, "q", cfg.LocalQuotaBytes, "max size of one local value in bytes")
	fs.StringVar(&cfg.MediaDir, "o", cfg.MediaDir, "directory for locally stored media")
	fs.StringVar(&cfg.CalendarID, "n", cfg.CalendarID, "calendar id")
	fs.StringVar(&cfg.CalendarToken, "k", cfg.CalendarToken, "calendar API bearer token")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.PushDebounce = time.Duration(*debounce) * time.Millisecond
}
