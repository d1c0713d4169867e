package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dmitrijs2005/meetrec/internal/flagx"
	"github.com/dmitrijs2005/meetrec/internal/timex"
)

// FileConfig is a DTO used only for decoding config files. Pointer fields
// tell "absent" apart from "zero", so a file only overrides the keys it
// names.
type FileConfig struct {
	ServerURL        *string         `json:"server_url" toml:"server_url"`
	DBPath           *string         `json:"db_path" toml:"db_path"`
	LogFile          *string         `json:"log_file" toml:"log_file"`
	LogLevel         *string         `json:"log_level" toml:"log_level"`
	PollInterval     *timex.Duration `json:"poll_interval" toml:"poll_interval"`
	RequestTimeout   *timex.Duration `json:"request_timeout" toml:"request_timeout"`
	RefreshAfterStop *bool           `json:"refresh_after_stop" toml:"refresh_after_stop"`
}

// parseFile overlays cfg with the file named by -c or -config. Files ending
// in .toml are decoded as TOML, everything else as JSON. Read or decode
// errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.ServerURL != nil {
		cfg.ServerURL = *fc.ServerURL
	}
	if fc.DBPath != nil {
		cfg.DBPath = *fc.DBPath
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.PollInterval != nil {
		cfg.PollInterval = fc.PollInterval.Duration
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RefreshAfterStop != nil {
		cfg.RefreshAfterStop = *fc.RefreshAfterStop
	}
}
