// Package config loads, normalizes, and validates lafter configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// LAFTER_LLM_API_KEY and OPENROUTER_API_KEY. The classifier threshold is
// checked here so a bad value stops the process before any title is scored.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
