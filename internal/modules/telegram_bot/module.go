package telegram

import (
	"context"

	"go.uber.org/fx"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/telegram_bot/service"
	"signal_bot/internal/runner"
)

func Module() fx.Option {
	return fx.Module("telegram",
		// Канал событий: его читает диспетчер, пишет — слушатель апдейтов.
		fx.Provide(
			func() chan models.MessageEvent {
				return make(chan models.MessageEvent, 64)
			},
		),

		fx.Provide(
			service.NewTelegram, // func(*config.Config, chan models.MessageEvent) (*service.Telegram, error)
		),

		// Адаптер: *service.Telegram -> runner.Notifier
		fx.Provide(
			func(t *service.Telegram) runner.Notifier {
				return t
			},
		),

		fx.Invoke(
			func(lc fx.Lifecycle, ctx context.Context, t *service.Telegram) {
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						go func() { _ = t.Start(ctx) }()
						return nil
					},
					OnStop: func(context.Context) error {
						t.Stop()
						return nil
					},
				})
			},
		),
	)
}
