package store

import (
	"signal_bot/internal/modules/config"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("store",
		fx.Provide(
			func(cfg *config.Config) *Catalog {
				c := NewCatalog(cfg.Storage.SymbolsPath)
				c.Load()
				return c
			},
			func(cfg *config.Config) *PositionStore {
				s := NewPositionStore(cfg.Storage.PositionsPath)
				s.Load()
				return s
			},
			NewCorrelation,
		),
	)
}
