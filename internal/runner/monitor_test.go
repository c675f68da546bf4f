package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"signal_bot/internal/models"
)

func startWatched(t *testing.T, gw *fakeGateway, entry float64, side models.Side) (*Router, int64, context.CancelFunc) {
	t.Helper()

	r, positions, _ := newTestRouter(t, gw)
	r.monitorInterval = 10 * time.Millisecond

	ticket := int64(1)
	gw.positions[ticket] = models.BrokerPosition{
		Ticket:     ticket,
		Symbol:     "VOL75",
		Volume:     1.0,
		Side:       side,
		EntryPrice: entry,
	}
	require.NoError(t, positions.Add(models.OpenPosition{Ticket: ticket, Symbol: "VOL75", Volume: 1.0, Side: side}))

	ctx, cancel := context.WithCancel(context.Background())
	go r.watchPosition(ctx, ticket, "VOL75", side)
	return r, ticket, cancel
}

func TestMonitor_ExitsWhenPositionGone(t *testing.T) {
	gw := newFakeGateway()
	r, ticket, cancel := startWatched(t, gw, 100, models.SideBuy)
	defer cancel()

	gw.dropPosition(ticket)

	require.Eventually(t, func() bool {
		return !r.positions.Has(ticket)
	}, time.Second, 5*time.Millisecond, "зеркало должно очиститься после исчезновения позиции")
}

func TestMonitor_BreakEvenFiresOnce(t *testing.T) {
	gw := newFakeGateway()
	// profit = 100.3 - 100 = 0.3 > 100 * 0.002
	gw.setTick("VOL75", models.Tick{Bid: 100.3, Ask: 100.5})
	_, ticket, cancel := startWatched(t, gw, 100, models.SideBuy)
	defer cancel()

	require.Eventually(t, func() bool {
		return len(gw.sentOrders(models.TradeActionSLTP)) > 0
	}, time.Second, 5*time.Millisecond)

	// ещё несколько циклов в плюсе — защёлка не даёт повторов
	time.Sleep(60 * time.Millisecond)
	amends := gw.sentOrders(models.TradeActionSLTP)
	require.Len(t, amends, 1)
	require.Equal(t, ticket, amends[0].Position)
	require.Equal(t, 100.0, amends[0].SL)
	require.Zero(t, amends[0].TP)
}

func TestMonitor_ReversalClosesBuy(t *testing.T) {
	gw := newFakeGateway()
	// bid 99.4 < 100 * 0.995 — разворот против лонга
	gw.setTick("VOL75", models.Tick{Bid: 99.4, Ask: 99.6})
	r, ticket, cancel := startWatched(t, gw, 100, models.SideBuy)
	defer cancel()

	require.Eventually(t, func() bool {
		return !r.positions.Has(ticket)
	}, time.Second, 5*time.Millisecond)

	deals := gw.sentOrders(models.TradeActionDeal)
	require.NotEmpty(t, deals)
	closeReq := deals[0]
	require.Equal(t, ticket, closeReq.Position)
	require.Equal(t, "sell", closeReq.Type)
	require.Equal(t, 99.4, closeReq.Price) // закрытие лонга по bid
	require.Equal(t, "reversal close", closeReq.Comment)
}

func TestMonitor_ReversalClosesSell(t *testing.T) {
	gw := newFakeGateway()
	// ask 100.6 > 100 * 1.005 — разворот против шорта
	gw.setTick("VOL75", models.Tick{Bid: 100.4, Ask: 100.6})
	r, ticket, cancel := startWatched(t, gw, 100, models.SideSell)
	defer cancel()

	require.Eventually(t, func() bool {
		return !r.positions.Has(ticket)
	}, time.Second, 5*time.Millisecond)

	deals := gw.sentOrders(models.TradeActionDeal)
	require.NotEmpty(t, deals)
	require.Equal(t, "buy", deals[0].Type)
	require.Equal(t, 100.6, deals[0].Price) // закрытие шорта по ask
}

func TestMonitor_QuietMarketDoesNothing(t *testing.T) {
	gw := newFakeGateway()
	// в пределах коридора: ни безубытка, ни закрытия
	gw.setTick("VOL75", models.Tick{Bid: 100.1, Ask: 100.2})
	r, ticket, cancel := startWatched(t, gw, 100, models.SideBuy)
	defer cancel()

	time.Sleep(60 * time.Millisecond)
	require.Empty(t, gw.sentOrders(models.TradeActionSLTP))
	require.Empty(t, gw.sentOrders(models.TradeActionDeal))
	require.True(t, r.positions.Has(ticket))
}
