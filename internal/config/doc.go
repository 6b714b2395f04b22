// Package config loads, validates, and defaults curator's TOML configuration.
//
// Values resolve in order: repository defaults, the config file, then
// environment overrides for secrets. All paths are expanded and absolute by
// the time a Config leaves Load.
package config
