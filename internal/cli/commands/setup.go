// Package commands implements the sqlport subcommands.
package commands

import (
	"context"

	"github.com/leapstack-labs/sqlport/internal/cli/config"
	"github.com/leapstack-labs/sqlport/pkg/dialect"

	// Register the shipped dialects.
	_ "github.com/leapstack-labs/sqlport/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqlport/pkg/dialects/postgres"
)

// configKey is used to store config in context.
type configKey struct{}

// WithConfig stores the loaded config in the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromContext retrieves the config, falling back to defaults when the
// command runs without the root's PersistentPreRunE (tests).
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{
		From:      config.DefaultFrom,
		To:        config.DefaultTo,
		Extension: config.DefaultExtension,
	}
}

// DialectNames returns the registered dialect names.
func DialectNames() []string {
	return dialect.List()
}
