package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/meetrec/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-i", "-l", "-log-file", "-t"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     base URL of the recording service
//	-d string     path of the local SQLite database
//	-i int        watch poll interval in seconds
//	-l string     log level
//	-log-file     JSON log file, empty to disable
//	-t int        request timeout in seconds, 0 for none
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// components (such as -c) do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the recording service")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "JSON log file, empty to disable")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "watch poll interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 for none)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
