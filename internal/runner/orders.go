package runner

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

const (
	orderDeviation = 20
	orderMagic     = 1000
)

// placeOrder — одно рыночное размещение по сигналу. Любая ошибка на
// любом шаге (счёт, символ, тик, отказ терминала) — это провал попытки,
// ретраев нет.
func (r *Router) placeOrder(ctx context.Context, sig *models.TradeSignal) (models.OpenPosition, error) {
	acct, err := r.gateway.AccountInfo(ctx)
	if err != nil {
		return models.OpenPosition{}, errors.Wrap(err, "account info")
	}
	lot := calculateLot(acct.Equity, r.cfg.RiskPct)

	info, err := r.gateway.SymbolInfo(ctx, sig.Symbol)
	if err != nil {
		return models.OpenPosition{}, errors.Wrapf(err, "symbol info %s", sig.Symbol)
	}
	if !info.Visible {
		if err := r.gateway.SymbolSelect(ctx, sig.Symbol); err != nil {
			return models.OpenPosition{}, errors.Wrapf(err, "symbol select %s", sig.Symbol)
		}
	}

	tick, err := r.gateway.SymbolTick(ctx, sig.Symbol)
	if err != nil {
		return models.OpenPosition{}, errors.Wrapf(err, "tick %s", sig.Symbol)
	}

	price := tick.Ask
	if sig.Action == models.SideSell {
		price = tick.Bid
	}

	req := models.OrderRequest{
		Action:    models.TradeActionDeal,
		Symbol:    sig.Symbol,
		Volume:    lot,
		Type:      string(sig.Action),
		Price:     price,
		Deviation: orderDeviation,
		Magic:     orderMagic,
		Comment:   "telegram signal " + uuid.New().String()[:8],
		TypeTime:  "gtc",
		Filling:   "ioc",
	}
	if sig.HasSL {
		req.SL = sig.SL
	}
	if sig.HasTP {
		req.TP = sig.TP
	}

	res, err := r.gateway.OrderSend(ctx, req)
	if err != nil {
		return models.OpenPosition{}, errors.Wrap(err, "order send")
	}
	if !res.Done() {
		return models.OpenPosition{}, errors.Errorf("order rejected: retcode=%d comment=%q", res.Retcode, res.Message)
	}

	return models.OpenPosition{
		Ticket: res.Ticket,
		Symbol: sig.Symbol,
		Volume: lot,
		Side:   sig.Action,
	}, nil
}

// amend переставляет SL/TP открытой позиции одним запросом.
func (r *Router) amend(ctx context.Context, ticket int64, sl, tp float64) error {
	req := models.OrderRequest{
		Action:   models.TradeActionSLTP,
		Position: ticket,
		SL:       sl,
		TP:       tp,
	}
	res, err := r.gateway.OrderSend(ctx, req)
	if err != nil {
		return errors.Wrapf(err, "amend ticket=%d", ticket)
	}
	if !res.Done() {
		return errors.Errorf("amend ticket=%d rejected: retcode=%d comment=%q", ticket, res.Retcode, res.Message)
	}
	return nil
}

// setBreakEven двигает SL на цену входа. TP не трогаем.
func (r *Router) setBreakEven(ctx context.Context, ticket int64, entry float64) {
	req := models.OrderRequest{
		Action:   models.TradeActionSLTP,
		Position: ticket,
		SL:       entry,
	}
	res, err := r.gateway.OrderSend(ctx, req)
	if err != nil {
		logger.Error("break-even ticket=%d: %v", ticket, err)
		return
	}
	if !res.Done() {
		logger.Error("break-even ticket=%d rejected: retcode=%d comment=%q", ticket, res.Retcode, res.Message)
		return
	}
	metrics.BreakEvens.Inc()
	logger.Info("break-even: ticket=%d sl=%.5f", ticket, entry)
	r.notifier.SendF(ctx, "🔒 Безубыток: тикет %d, SL=%.5f", ticket, entry)
}

// closePosition закрывает позицию встречной рыночной сделкой.
func (r *Router) closePosition(ctx context.Context, pos models.BrokerPosition, reason string) {
	tick, err := r.gateway.SymbolTick(ctx, pos.Symbol)
	if err != nil {
		logger.Error("close ticket=%d: tick %s: %v", pos.Ticket, pos.Symbol, err)
		return
	}

	closeType := string(models.SideSell)
	price := tick.Bid
	if pos.Side == models.SideSell {
		closeType = string(models.SideBuy)
		price = tick.Ask
	}

	req := models.OrderRequest{
		Action:    models.TradeActionDeal,
		Symbol:    pos.Symbol,
		Volume:    pos.Volume,
		Type:      closeType,
		Price:     price,
		Position:  pos.Ticket,
		Deviation: orderDeviation,
		Magic:     orderMagic,
		Comment:   "reversal close",
		TypeTime:  "gtc",
		Filling:   "ioc",
	}
	res, err := r.gateway.OrderSend(ctx, req)
	if err != nil {
		logger.Error("close ticket=%d: order send: %v", pos.Ticket, err)
		return
	}
	if !res.Done() {
		logger.Error("close ticket=%d rejected: retcode=%d comment=%q", pos.Ticket, res.Retcode, res.Message)
		return
	}

	if err := r.positions.Remove(pos.Ticket); err != nil {
		logger.Warn("close ticket=%d: persist: %v", pos.Ticket, err)
	}
	metrics.ReversalCloses.Inc()
	metrics.OpenPositions.Set(float64(r.positions.Len()))
	r.journal.RecordClose(ctx, pos.Ticket, reason)
	logger.Info("close: ticket=%d %s %s lot=%.2f (%s)", pos.Ticket, pos.Side, pos.Symbol, pos.Volume, reason)
	r.notifier.SendF(ctx, "🔻 Закрыта позиция: тикет %d %s %s (%s)", pos.Ticket, pos.Side, pos.Symbol, reason)
}
