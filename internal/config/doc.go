// Package config loads, normalizes, and validates the TOML configuration
// file shared by every transcriptor command.
package config
