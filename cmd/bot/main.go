package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"signal_bot/internal/modules/bootstrap"
	"signal_bot/internal/modules/config"
	mt5 "signal_bot/internal/modules/mt5_client"
	"signal_bot/internal/modules/ops"
	"signal_bot/internal/modules/postgres"
	telegram "signal_bot/internal/modules/telegram_bot"
	"signal_bot/internal/runner"
	"signal_bot/internal/store"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName("signal_bot")
	tracing.SetServiceName("signal_bot")

	var closeTracer func()

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		postgres.Module(),
		store.Module(),
		mt5.Module(),
		runner.Module(),
		telegram.Module(),
		ops.Module(),
		bootstrap.Module(),
		fx.Invoke(
			func(lc fx.Lifecycle, cfg *config.Config) {
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						_, closer, err := tracing.InitTracer(tracing.Config{
							Host: cfg.Jaeger.Host,
							Port: cfg.Jaeger.Port,
						})
						if err != nil {
							// Без jaeger-агента живём на noop-трейсере.
							logger.Warn("tracing отключён: %v", err)
							return nil
						}
						closeTracer = closer
						return nil
					},
					OnStop: func(context.Context) error {
						if closeTracer != nil {
							closeTracer()
						}
						return nil
					},
				})
			},
		),
	)
	app.Run()
}
