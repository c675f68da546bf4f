package runner

import (
	"context"

	"signal_bot/pkg/logger"
)

// canAdmit — маржинальный фильтр перед каждым размещением:
// свободная маржа должна превышать риск-бюджет позиции.
// Ошибка запроса счёта трактуется как отказ.
func (r *Router) canAdmit(ctx context.Context) bool {
	acct, err := r.gateway.AccountInfo(ctx)
	if err != nil {
		logger.Error("admission: account info: %v", err)
		return false
	}

	required := acct.Equity * r.cfg.RiskPct / 100.0
	free := acct.Equity - acct.UsedMargin
	if free <= required {
		logger.Info("admission: недостаточно маржи: free=%.2f required=%.2f", free, required)
		return false
	}
	return true
}
