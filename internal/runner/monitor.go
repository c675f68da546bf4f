package runner

import (
	"context"
	"time"

	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

const (
	// Опрос позиции раз в 5 секунд.
	defaultMonitorInterval = 5 * time.Second
	// Безубыток: profit > entry * 0.2%.
	breakEvenTriggerPct = 0.002
	// Принудительное закрытие: откат цены на 0.5% против позиции.
	reversalTriggerPct = 0.005
)

// watchPosition — жизненный цикл одного тикета. Крутится до тех пор,
// пока позиция открыта у брокера; единственный штатный выход — её
// исчезновение (SL/TP, ручное закрытие или наш reversal close).
// Транзиентные ошибки шлюза пропускают цикл, не убивая монитор.
func (r *Router) watchPosition(ctx context.Context, ticket int64, symbol string, side models.Side) {
	ticker := time.NewTicker(r.monitorInterval)
	defer ticker.Stop()

	breakEvenSet := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		pos, err := r.gateway.PositionByTicket(ctx, ticket)
		if err != nil {
			logger.Warn("monitor ticket=%d: position query: %v", ticket, err)
			continue
		}
		if pos == nil {
			logger.Info("monitor ticket=%d: позиция закрыта, снимаю наблюдение", ticket)
			if err := r.positions.Remove(ticket); err != nil {
				logger.Warn("monitor ticket=%d: persist: %v", ticket, err)
			}
			metrics.OpenPositions.Set(float64(r.positions.Len()))
			r.journal.RecordClose(ctx, ticket, "closed")
			return
		}

		tick, err := r.gateway.SymbolTick(ctx, symbol)
		if err != nil {
			logger.Warn("monitor ticket=%d: tick %s: %v", ticket, symbol, err)
			continue
		}

		// Для buy смотрим bid (цена выхода), для sell — ask.
		current := tick.Bid
		profit := current - pos.EntryPrice
		if side == models.SideSell {
			current = tick.Ask
			profit = pos.EntryPrice - current
		}

		// Защёлка одностороняя: после первого срабатывания SL не трогаем,
		// даже если запрос не прошёл.
		if !breakEvenSet && profit > pos.EntryPrice*breakEvenTriggerPct {
			r.setBreakEven(ctx, ticket, pos.EntryPrice)
			breakEvenSet = true
		}

		adverse := (side == models.SideBuy && current < pos.EntryPrice*(1-reversalTriggerPct)) ||
			(side == models.SideSell && current > pos.EntryPrice*(1+reversalTriggerPct))
		if adverse {
			logger.Info("monitor ticket=%d: разворот против позиции: entry=%.5f current=%.5f", ticket, pos.EntryPrice, current)
			r.closePosition(ctx, *pos, "reversal")
		}
	}
}
