// Package config loads and validates sepulcherd's YAML configuration file.
//
// # Configuration loading
//
//	cfg, err := config.LoadConfig("config.yaml")
//	cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment variable overrides
//
// Environment variables follow the naming convention SEPULCHER_SECTION_FIELD,
// e.g. SEPULCHER_SERVER_LISTEN_ADDRESS, SEPULCHER_LOGGING_LEVEL. They always
// take precedence over the YAML file.
//
// # Precedence
//
//  1. Default values (defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example
//
//	server:
//	  listen_address: "0.0.0.0:8080"
//
//	counter:
//	  partitions: 1024
//	  ttl_seconds: 300
//	  window_seconds: 60
//	  sweep_schedule: "@every 1m"
//
//	collections:
//	  inline: "logins=5:1m,signups=1:1h"
//	  ttl_seconds: 300
//
//	logging:
//	  level: "info"
//	  format: "json"
package config
