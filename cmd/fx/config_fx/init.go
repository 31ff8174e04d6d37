package config_fx

import (
	"go.uber.org/fx"

	"tripcraft/internal/config"
)

// Module supplies a configuration loaded before the container is built.
func Module(cfg config.Config) fx.Option {
	return fx.Supply(cfg)
}
