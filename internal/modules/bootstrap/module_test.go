package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"signal_bot/internal/models"
	"signal_bot/internal/runner"
	"signal_bot/internal/store"
	"signal_bot/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// Достаточно перекрыть Positions, остальное реконсиляция не трогает.
type stubGateway struct {
	runner.Gateway
	positions []models.BrokerPosition
	err       error
}

func (g stubGateway) Positions(ctx context.Context) ([]models.BrokerPosition, error) {
	return g.positions, g.err
}

func TestReconcile_DropsStaleTickets(t *testing.T) {
	s := store.NewPositionStore(filepath.Join(t.TempDir(), "positions.json"))
	require.NoError(t, s.Add(models.OpenPosition{Ticket: 42, Symbol: "VOL75", Volume: 1, Side: models.SideBuy}))
	require.NoError(t, s.Add(models.OpenPosition{Ticket: 77, Symbol: "VOL100", Volume: 1, Side: models.SideSell}))

	gw := stubGateway{positions: []models.BrokerPosition{
		{Ticket: 42, Symbol: "VOL75", Volume: 1, Side: models.SideBuy, EntryPrice: 100},
	}}

	require.NoError(t, Reconcile(context.Background(), gw, s))
	require.True(t, s.Has(42))
	require.False(t, s.Has(77))
}

func TestReconcile_GatewayErrorLeavesMirrorIntact(t *testing.T) {
	s := store.NewPositionStore(filepath.Join(t.TempDir(), "positions.json"))
	require.NoError(t, s.Add(models.OpenPosition{Ticket: 42, Symbol: "VOL75", Volume: 1, Side: models.SideBuy}))

	gw := stubGateway{err: errors.New("bridge down")}

	require.Error(t, Reconcile(context.Background(), gw, s))
	require.True(t, s.Has(42))
}

func TestReconcile_BrokerOnlyPositionsAreIgnored(t *testing.T) {
	s := store.NewPositionStore(filepath.Join(t.TempDir(), "positions.json"))

	// Руками открытая позиция в терминале — не наша, в зеркало не попадает.
	gw := stubGateway{positions: []models.BrokerPosition{
		{Ticket: 7, Symbol: "STEP100", Volume: 2, Side: models.SideBuy, EntryPrice: 50},
	}}

	require.NoError(t, Reconcile(context.Background(), gw, s))
	require.Zero(t, s.Len())
}
