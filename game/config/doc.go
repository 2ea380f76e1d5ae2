// Package config loads server configuration from the environment.
//
// A .env file in the working directory is read first when present, then the
// process environment takes precedence. Command-line flags in main override
// both.
package config
