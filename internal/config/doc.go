// Package config loads, validates, and normalizes bookvoice configuration.
//
// Configuration lives in a TOML file (default ~/.config/bookvoice/config.toml,
// or bookvoice.toml in the working directory) with sane defaults for every
// key, so a bare GEMINI_API_KEY environment variable is enough to run.
package config
