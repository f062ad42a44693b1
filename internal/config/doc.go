// Package config loads the formcheck runtime configuration from an optional
// .env file, an optional YAML file and FORMCHECK_ environment variables.
package config
