// Package config loads runtime configuration for the journal client.
//
// Sources and precedence:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .toml are decoded as TOML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Example TOML:
//
//	server_endpoint_addr = "127.0.0.1:50051"
//	push_debounce = "400ms"
//	calendar_token = "ya29..."
//
// Paths left empty are placed under DataDir.
package config
