package runner

import (
	"context"

	"signal_bot/internal/models"
)

// Gateway — торговый шлюз терминала глазами диспетчера.
// Реализуется клиентом MT5-бриджа, в тестах — фейком.
type Gateway interface {
	AccountInfo(ctx context.Context) (models.AccountInfo, error)
	SymbolInfo(ctx context.Context, name string) (models.SymbolInfo, error)
	SymbolSelect(ctx context.Context, name string) error
	SymbolTick(ctx context.Context, name string) (models.Tick, error)
	Symbols(ctx context.Context) ([]string, error)
	Positions(ctx context.Context) ([]models.BrokerPosition, error)
	// PositionByTicket возвращает (nil, nil), если позиции больше нет.
	PositionByTicket(ctx context.Context, ticket int64) (*models.BrokerPosition, error)
	OrderSend(ctx context.Context, req models.OrderRequest) (models.OrderResult, error)
}

// Notifier шлёт сервисные уведомления оператору.
type Notifier interface {
	Send(ctx context.Context, msg string)
	SendF(ctx context.Context, format string, args ...any)
}
