package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/saketh1999/consistency-cal-sub000/internal/flagx"
	"github.com/saketh1999/consistency-cal-sub000/internal/timex"
)

// fileConfig is the on-disk shape, JSON or TOML. Durations accept "400ms"
// style strings; JSON also accepts integer nanoseconds.
type fileConfig struct {
	ServerEndpointAddr  string          `json:"server_endpoint_addr" toml:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration  `json:"online_check_interval" toml:"online_check_interval"`
	RequestTimeout      timex.Duration  `json:"request_timeout" toml:"request_timeout"`
	DataDir             string          `json:"data_dir" toml:"data_dir"`
	DBPath              string          `json:"db_path" toml:"db_path"`
	LogFile             string          `json:"log_file" toml:"log_file"`
	Debug               *bool           `json:"debug" toml:"debug"`
	PushDebounce        *timex.Duration `json:"push_debounce" toml:"push_debounce"`
	MaxUploadBytes      int64           `json:"max_upload_bytes" toml:"max_upload_bytes"`
	LocalQuotaBytes     int             `json:"local_quota_bytes" toml:"local_quota_bytes"`
	MediaDir            string          `json:"media_dir" toml:"media_dir"`
	CalendarBaseURL     string          `json:"calendar_base_url" toml:"calendar_base_url"`
	CalendarID          string          `json:"calendar_id" toml:"calendar_id"`
	CalendarToken       string          `json:"calendar_token" toml:"calendar_token"`
}

// parseFile overlays the file named by -c / -config. Read or decode errors
// panic.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	b, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := &fileConfig{}
	switch flagx.FormatOf(path) {
	case flagx.FormatTOML:
		err = toml.Unmarshal(b, fc)
	default:
		err = json.Unmarshal(b, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.ServerEndpointAddr, fc.ServerEndpointAddr)
	setDuration(&cfg.OnlineCheckInterval, fc.OnlineCheckInterval)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.DBPath, fc.DBPath)
	setString(&cfg.LogFile, fc.LogFile)
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	// zero is meaningful here: it disables debouncing
	if fc.PushDebounce != nil {
		cfg.PushDebounce = fc.PushDebounce.Duration
	}
	if fc.MaxUploadBytes > 0 {
		cfg.MaxUploadBytes = fc.MaxUploadBytes
	}
	if fc.LocalQuotaBytes > 0 {
		cfg.LocalQuotaBytes = fc.LocalQuotaBytes
	}
	setString(&cfg.MediaDir, fc.MediaDir)
	setString(&cfg.CalendarBaseURL, fc.CalendarBaseURL)
	setString(&cfg.CalendarID, fc.CalendarID)
	setString(&cfg.CalendarToken, fc.CalendarToken)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
