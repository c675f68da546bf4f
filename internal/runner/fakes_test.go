package runner

import (
	"context"
	"fmt"
	"sync"

	"signal_bot/internal/models"
)

// fakeGateway — шлюз терминала в памяти для тестов диспетчера и мониторов.
type fakeGateway struct {
	mu sync.Mutex

	acct    models.AccountInfo
	acctErr error

	symbols   []string
	hidden    map[string]bool
	ticks     map[string]models.Tick
	positions map[int64]models.BrokerPosition

	orders     []models.OrderRequest
	selected   []string
	reject     bool
	orderErr   error
	nextTicket int64
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		acct:      models.AccountInfo{Equity: 10000},
		symbols:   []string{"VOL75", "VOL100"},
		hidden:    make(map[string]bool),
		ticks:     map[string]models.Tick{"VOL75": {Bid: 99.9, Ask: 100.1}},
		positions: make(map[int64]models.BrokerPosition),
		nextTicket: 100,
	}
}

var _ Gateway = (*fakeGateway)(nil)

func (g *fakeGateway) AccountInfo(ctx context.Context) (models.AccountInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.acct, g.acctErr
}

func (g *fakeGateway) SymbolInfo(ctx context.Context, name string) (models.SymbolInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return models.SymbolInfo{Name: name, Visible: !g.hidden[name]}, nil
}

func (g *fakeGateway) SymbolSelect(ctx context.Context, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.selected = append(g.selected, name)
	g.hidden[name] = false
	return nil
}

func (g *fakeGateway) SymbolTick(ctx context.Context, name string) (models.Tick, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	tick, ok := g.ticks[name]
	if !ok {
		return models.Tick{}, fmt.Errorf("tick %s: нет котировки", name)
	}
	return tick, nil
}

func (g *fakeGateway) Symbols(ctx context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.symbols, nil
}

func (g *fakeGateway) Positions(ctx context.Context) ([]models.BrokerPosition, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.BrokerPosition, 0, len(g.positions))
	for _, p := range g.positions {
		out = append(out, p)
	}
	return out, nil
}

func (g *fakeGateway) PositionByTicket(ctx context.Context, ticket int64) (*models.BrokerPosition, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.positions[ticket]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (g *fakeGateway) OrderSend(ctx context.Context, req models.OrderRequest) (models.OrderResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.orders = append(g.orders, req)
	if g.orderErr != nil {
		return models.OrderResult{}, g.orderErr
	}
	if g.reject {
		return models.OrderResult{Retcode: 10013, Message: "rejected"}, nil
	}

	if req.Action == models.TradeActionSLTP {
		return models.OrderResult{Retcode: models.RetcodeDone}, nil
	}

	// Сделка с тикетом = закрытие позиции.
	if req.Position != 0 {
		delete(g.positions, req.Position)
		return models.OrderResult{Retcode: models.RetcodeDone, Ticket: req.Position}, nil
	}

	g.nextTicket++
	side := models.Side(req.Type)
	g.positions[g.nextTicket] = models.BrokerPosition{
		Ticket:     g.nextTicket,
		Symbol:     req.Symbol,
		Volume:     req.Volume,
		Side:       side,
		EntryPrice: req.Price,
	}
	return models.OrderResult{Retcode: models.RetcodeDone, Ticket: g.nextTicket}, nil
}

func (g *fakeGateway) setTick(symbol string, tick models.Tick) {
	g.mu.Lock()
	g.ticks[symbol] = tick
	g.mu.Unlock()
}

func (g *fakeGateway) dropPosition(ticket int64) {
	g.mu.Lock()
	delete(g.positions, ticket)
	g.mu.Unlock()
}

func (g *fakeGateway) sentOrders(action string) []models.OrderRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []models.OrderRequest
	for _, o := range g.orders {
		if o.Action == action {
			out = append(out, o)
		}
	}
	return out
}

// fakeNotifier копит отправленные уведомления.
type fakeNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (n *fakeNotifier) Send(ctx context.Context, msg string) {
	n.mu.Lock()
	n.msgs = append(n.msgs, msg)
	n.mu.Unlock()
}

func (n *fakeNotifier) SendF(ctx context.Context, format string, args ...any) {
	n.Send(ctx, fmt.Sprintf(format, args...))
}
