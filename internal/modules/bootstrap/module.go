package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"signal_bot/internal/metrics"
	"signal_bot/internal/modules/ops/service"
	"signal_bot/internal/runner"
	"signal_bot/internal/store"
	"signal_bot/pkg/logger"
)

// Reconcile сверяет персистентное зеркало позиций с терминалом:
// тикеты, которых у брокера больше нет, выкидываются из зеркала.
// Выжившие тикеты остаются без монитора — после рестарта наблюдение
// не возобновляется, только зеркало честное.
func Reconcile(ctx context.Context, gw runner.Gateway, positions *store.PositionStore) error {
	broker, err := gw.Positions(ctx)
	if err != nil {
		return fmt.Errorf("positions query: %w", err)
	}

	live := make(map[int64]struct{}, len(broker))
	for _, p := range broker {
		live[p.Ticket] = struct{}{}
	}

	removed, err := positions.Reconcile(live)
	if err != nil {
		logger.Warn("reconcile: persist: %v", err)
	}
	for _, ticket := range removed {
		logger.Info("reconcile: тикет %d закрыт, пока нас не было — убран из зеркала", ticket)
	}
	for _, p := range positions.Snapshot() {
		logger.Warn("reconcile: тикет %d пережил рестарт, мониторинг не возобновлён", p.Ticket)
	}
	metrics.OpenPositions.Set(float64(positions.Len()))
	return nil
}

func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Invoke(func(lc fx.Lifecycle, ctx context.Context, gw runner.Gateway, catalog *store.Catalog, positions *store.PositionStore, state *service.State) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						g, gctx := errgroup.WithContext(ctx)
						g.Go(func() error {
							catalog.Refresh(gctx, gw)
							return nil
						})
						g.Go(func() error {
							return Reconcile(gctx, gw, positions)
						})
						if err := g.Wait(); err != nil {
							// Терминал может подняться позже нас; торгуем
							// по оптимистично загруженному зеркалу.
							logger.Error("[BOOT] %v", err)
						}
						state.SetReady(true)
						logger.Info("[BOOT] done: symbols=%d, positions=%d", catalog.Len(), positions.Len())
					}()
					return nil
				},
			})
		}),
	)
}
