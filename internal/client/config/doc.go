// Package config loads runtime configuration for the meetrec CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. A ".toml" file is
//     read as TOML, anything else as JSON. Only keys present in the file
//     override earlier values.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the recording service
//	-d string   local SQLite database path
//	-i int      watch poll interval (seconds)
//	-l string   log level
//	-log-file   JSON log file
//	-t int      request timeout (seconds)
//
// # File schema
//
// Intervals use timex.Duration, so they can be strings like "5s" (JSON and
// TOML) or integer nanoseconds (JSON only):
//
//	{
//	  "server_url": "http://localhost:7000",
//	  "db_path": "meetrec.db",
//	  "poll_interval": "5s",
//	  "refresh_after_stop": true
//	}
package config
