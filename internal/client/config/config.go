package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
)

// DefaultLocalQuotaBytes caps a single local-storage value.
const DefaultLocalQuotaBytes = 5 << 20

// Config holds runtime settings for the journal client.
//
// DataDir holds the local database, the log file and locally stored media
// unless those paths are set explicitly. PushDebounce is the quiet period
// before edits of a date are sent to the server; zero sends immediately.
// Calendar* configure the read-only Google Calendar sync; an empty
// CalendarToken disables it.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	DataDir             string
	DBPath              string
	LogFile             string
	Debug               bool
	PushDebounce        time.Duration
	MaxUploadBytes      int64
	LocalQuotaBytes     int
	MediaDir            string
	CalendarBaseURL     string
	CalendarID          string
	CalendarToken       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.DataDir = defaultDataDir()
	c.PushDebounce = 400 * time.Millisecond
	c.MaxUploadBytes = common.DefaultMaxUploadBytes
	c.LocalQuotaBytes = DefaultLocalQuotaBytes
	c.CalendarBaseURL = "https://www.googleapis.com/calendar/v3"
	c.CalendarID = "primary"
}

// resolvePaths fills file locations left empty from DataDir.
func (c *Config) resolvePaths() {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "journal.db")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, "client.log")
	}
	if c.MediaDir == "" {
		c.MediaDir = filepath.Join(c.DataDir, "media")
	}
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".consistency-cal"
	}
	return filepath.Join(dir, "consistency-cal")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseFlags(cfg, args)
	cfg.resolvePaths()
	return cfg
}
