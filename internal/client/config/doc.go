// Package config loads runtime configuration for the TrueKicks CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. TRUEKICKS_* environment variables, after an optional .env file.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   storefront API base URL
//	-a string   address:port of the gRPC health endpoint
//	-i int      online status check interval (seconds)
//	-d string   local database file
//	-l string   log level
//
// # JSON schema
//
// Intervals are timex.Duration values, so they can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "health_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "db_path": "truekicks.db",
//	  "log_level": "info",
//	  "cache_max_age": "24h",
//	  "request_timeout": "10s"
//	}
package config
