// Package config loads, normalizes, and validates clipforge configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and centralizes every knob the daemon and CLI
// need: media directories, API bind address, render pacing, and encoder
// settings. Always obtain settings through this package so downstream code
// receives sanitized paths and clear validation errors.
package config
