package mt5

import (
	"go.uber.org/fx"

	"signal_bot/internal/modules/mt5_client/service"
	"signal_bot/internal/runner"
)

var _ runner.Gateway = (*service.Client)(nil)

func Module() fx.Option {
	return fx.Module("mt5_client",
		fx.Provide(
			service.NewClient, // func(*config.Config) *service.Client
		),

		// Адаптер: *service.Client -> runner.Gateway
		fx.Provide(
			func(c *service.Client) runner.Gateway {
				return c
			},
		),
	)
}
