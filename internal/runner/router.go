package runner

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"

	"signal_bot/internal/journal"
	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	opsservice "signal_bot/internal/modules/ops/service"
	"signal_bot/internal/parser"
	"signal_bot/internal/store"
	"signal_bot/pkg/logger"
)

// Router — диспетчер событий: новое сообщение превращает в размещения,
// редактирование — в модификацию SL/TP по ранее открытым тикетам.
type Router struct {
	cfg       *config.Config
	gateway   Gateway
	notifier  Notifier
	parser    *parser.Parser
	positions *store.PositionStore
	corr      *store.Correlation
	journal   *journal.Journal
	state     *opsservice.State

	monitorInterval time.Duration
}

func NewRouter(
	cfg *config.Config,
	gateway Gateway,
	notifier Notifier,
	p *parser.Parser,
	positions *store.PositionStore,
	corr *store.Correlation,
	j *journal.Journal,
	state *opsservice.State,
) *Router {
	return &Router{
		cfg:             cfg,
		gateway:         gateway,
		notifier:        notifier,
		parser:          p,
		positions:       positions,
		corr:            corr,
		journal:         j,
		state:           state,
		monitorInterval: defaultMonitorInterval,
	}
}

func (r *Router) OnEvent(ctx context.Context, ev models.MessageEvent) {
	span := opentracing.StartSpan("message_event")
	defer span.Finish()
	span.SetTag("chat_id", ev.Ref.ChatID)
	span.SetTag("message_id", ev.Ref.MessageID)

	metrics.EventsTotal.Inc()
	r.state.MarkEvent()

	switch ev.Kind {
	case models.EventNewMessage:
		span.SetTag("kind", "new")
		r.onNewMessage(opentracing.ContextWithSpan(ctx, span), ev)
	case models.EventMessageEdited:
		span.SetTag("kind", "edited")
		r.onEdited(opentracing.ContextWithSpan(ctx, span), ev)
	}
}

func (r *Router) onNewMessage(ctx context.Context, ev models.MessageEvent) {
	sig := r.parser.Parse(ev.Text)
	if sig == nil {
		return
	}
	metrics.SignalsParsed.Inc()
	logger.Info("signal: %s %s tf=%s from chat=%d", sig.Action, sig.Symbol, sig.Timeframe, ev.Ref.ChatID)

	// Дубль-фильтр: по одному символу держим позиции только одного сигнала.
	if r.positions.HasSymbol(sig.Symbol) {
		logger.Info("signal %s %s: уже есть открытые позиции по символу, пропускаю", sig.Action, sig.Symbol)
		r.notifier.SendF(ctx, "⚠️ Сигнал %s %s пропущен: по символу уже есть позиции", sig.Action, sig.Symbol)
		return
	}

	placed := 0
	for i := 0; i < r.cfg.PositionsPerSignal; i++ {
		if !r.canAdmit(ctx) {
			metrics.AdmissionRefused.Inc()
			break
		}

		pos, err := r.placeOrder(ctx, sig)
		if err != nil {
			metrics.OrdersFailed.Inc()
			logger.Error("place %s %s (попытка %d/%d): %v", sig.Action, sig.Symbol, i+1, r.cfg.PositionsPerSignal, err)
			r.notifier.SendF(ctx, "❌ Не удалось открыть %s %s: %v", sig.Action, sig.Symbol, err)
			break
		}

		placed++
		metrics.OrdersPlaced.Inc()
		if err := r.positions.Add(pos); err != nil {
			logger.Warn("persist ticket=%d: %v", pos.Ticket, err)
		}
		metrics.OpenPositions.Set(float64(r.positions.Len()))
		r.corr.Append(ev.Ref, pos.Ticket)
		r.journal.RecordOpen(ctx, journal.Entry{
			Ticket:    pos.Ticket,
			Symbol:    pos.Symbol,
			Side:      pos.Side,
			Volume:    pos.Volume,
			ChatID:    ev.Ref.ChatID,
			MessageID: ev.Ref.MessageID,
			Signal:    *sig,
		})

		logger.Info("opened: ticket=%d %s %s lot=%.2f", pos.Ticket, pos.Side, pos.Symbol, pos.Volume)
		r.notifier.SendF(ctx, "✅ Открыта позиция: тикет %d %s %s лот %.2f", pos.Ticket, pos.Side, pos.Symbol, pos.Volume)

		go r.watchPosition(ctx, pos.Ticket, pos.Symbol, pos.Side)
	}

	if placed == 0 {
		logger.Info("signal %s %s: ни одной позиции не открыто", sig.Action, sig.Symbol)
	}
}

// onEdited: правка сообщения с сигналом = перестановка SL/TP по всем
// связанным тикетам. Нужны оба уровня в новом тексте, иначе no-op.
func (r *Router) onEdited(ctx context.Context, ev models.MessageEvent) {
	tickets := r.corr.Tickets(ev.Ref)
	if len(tickets) == 0 {
		return
	}

	sig := r.parser.Parse(ev.Text)
	if sig == nil || !sig.HasSL || !sig.HasTP {
		return
	}

	for _, ticket := range tickets {
		if err := r.amend(ctx, ticket, sig.SL, sig.TP); err != nil {
			logger.Error("amend: %v", err)
			continue
		}
		metrics.Amendments.Inc()
		r.journal.RecordAmend(ctx, ticket, sig.SL, sig.TP)
		logger.Info("amended: ticket=%d sl=%.5f tp=%.5f", ticket, sig.SL, sig.TP)
	}
	r.notifier.SendF(ctx, "✏️ Обновлены SL=%.5f TP=%.5f по %d тикетам", sig.SL, sig.TP, len(tickets))
}
