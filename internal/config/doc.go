// Package config loads, normalizes, and validates flightrec configuration.
//
// Configuration is read from a TOML file, defaulting to
// ~/.config/flightrec/config.toml with a project-local flightrec.toml
// fallback. All path fields are tilde-expanded and made absolute during
// load, so downstream packages never see relative or unexpanded paths.
package config
