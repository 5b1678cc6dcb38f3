// Package file loads Pagehound configuration from a TOML file with
// environment variable overrides.
//
// Precedence, lowest to highest: built-in defaults, the TOML file at
// ~/.pagehound/config.toml (or the directory passed to Load), then
// PAGEHOUND_* environment variables. A .env file in the working directory
// is loaded into the environment by the entrypoint before Load runs.
package file
