// Package config loads, normalizes, and validates bindery configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the pipeline needs: external tool locations, the metadata transform inputs,
// the department allow-list, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors. The
// loaded Config is constructed once at startup and passed by reference into
// every component; nothing reads configuration from ambient scope.
package config
