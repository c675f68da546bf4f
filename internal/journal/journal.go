package journal

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"signal_bot/internal/models"
	"signal_bot/pkg/db"
	"signal_bot/pkg/logger"
)

// Journal — журнал сделок в Postgres. Опционален: без DSN в конфиге
// все методы превращаются в no-op. Ошибки записи не роняют торговлю,
// только пишутся в лог.
type Journal struct {
	txManager *db.PgTxManager
}

func New(txManager *db.PgTxManager) *Journal {
	return &Journal{txManager: txManager}
}

func (j *Journal) Enabled() bool {
	return j != nil && j.txManager != nil
}

// Entry — запись об открытии позиции.
type Entry struct {
	Ticket    int64
	Symbol    string
	Side      models.Side
	Volume    float64
	Price     float64
	ChatID    int64
	MessageID int
	Signal    models.TradeSignal
}

func (j *Journal) RecordOpen(ctx context.Context, e Entry) {
	if !j.Enabled() {
		return
	}

	payload, err := sonic.Marshal(e.Signal)
	if err != nil {
		logger.Warn("journal: marshal signal: %v", err)
		payload = []byte("{}")
	}

	err = j.txManager.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx,
			`INSERT INTO trades (id, ticket, symbol, side, volume, price, chat_id, message_id, signal, opened_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			uuid.New().String(), e.Ticket, e.Symbol, string(e.Side), e.Volume, e.Price,
			e.ChatID, e.MessageID, payload, time.Now().UTC(),
		)
		return err
	})
	if err != nil {
		logger.Warn("journal: record open ticket=%d: %v", e.Ticket, err)
	}
}

func (j *Journal) RecordClose(ctx context.Context, ticket int64, reason string) {
	if !j.Enabled() {
		return
	}

	err := j.txManager.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx,
			`UPDATE trades SET closed_at = $2, close_reason = $3 WHERE ticket = $1 AND closed_at IS NULL`,
			ticket, time.Now().UTC(), reason,
		)
		return err
	})
	if err != nil {
		logger.Warn("journal: record close ticket=%d: %v", ticket, err)
	}
}

func (j *Journal) RecordAmend(ctx context.Context, ticket int64, sl, tp float64) {
	if !j.Enabled() {
		return
	}

	err := j.txManager.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx,
			`UPDATE trades SET sl = $2, tp = $3, amended_at = $4 WHERE ticket = $1`,
			ticket, sl, tp, time.Now().UTC(),
		)
		return err
	})
	if err != nil {
		logger.Warn("journal: record amend ticket=%d: %v", ticket, err)
	}
}
