// Package config provides configuration management for the sqlport CLI.
//
// Configuration is layered: defaults, then an optional sqlport.yaml file,
// then SQLPORT_ environment variables, then flags.
package config

// Config holds the resolved CLI configuration.
type Config struct {
	// From is the source dialect name.
	From string `koanf:"from"`
	// To is the target dialect name.
	To string `koanf:"to"`
	// Strict turns render diagnostics into errors.
	Strict bool `koanf:"strict"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
	// Extension filters files picked up from directory arguments.
	Extension string `koanf:"extension"`
}

// Defaults for unset values.
const (
	DefaultFrom      = "ansi"
	DefaultTo        = "postgres"
	DefaultExtension = ".sql"
)
