package runner

import (
	"context"

	"go.uber.org/fx"

	"signal_bot/internal/models"
	"signal_bot/internal/parser"
	"signal_bot/internal/store"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			func(catalog *store.Catalog) *parser.Parser {
				return parser.New(catalog)
			},
			NewRouter,
		),
		fx.Invoke(func(lc fx.Lifecycle, ctx context.Context, r *Router, events chan models.MessageEvent) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						for {
							select {
							case <-ctx.Done():
								return
							case ev := <-events:
								r.OnEvent(ctx, ev)
							}
						}
					}()
					return nil
				},
			})
		}),
	)
}
