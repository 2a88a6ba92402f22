// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the application configuration structure
// including the listen address, environment name, and logging level, and applies
// the hosting platform's PORT variable on top of the configured address.
package config
