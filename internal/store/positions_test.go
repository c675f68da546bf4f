package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"signal_bot/internal/models"
)

func testPosition(ticket int64, symbol string) models.OpenPosition {
	return models.OpenPosition{Ticket: ticket, Symbol: symbol, Volume: 1.0, Side: models.SideBuy}
}

func TestPositionStore_PersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")

	s := NewPositionStore(path)
	require.NoError(t, s.Add(testPosition(1, "VOL75")))
	require.NoError(t, s.Add(testPosition(2, "VOL100")))

	// Новый процесс поднимает то же зеркало.
	reloaded := NewPositionStore(path)
	reloaded.Load()
	require.Equal(t, 2, reloaded.Len())
	require.True(t, reloaded.Has(1))
	require.True(t, reloaded.HasSymbol("VOL100"))

	got, ok := reloaded.Get(1)
	require.True(t, ok)
	require.Equal(t, testPosition(1, "VOL75"), got)
}

func TestPositionStore_RemoveIsIdempotent(t *testing.T) {
	s := NewPositionStore(filepath.Join(t.TempDir(), "positions.json"))
	require.NoError(t, s.Add(testPosition(1, "VOL75")))

	require.NoError(t, s.Remove(1))
	require.NoError(t, s.Remove(1))
	require.Zero(t, s.Len())
}

func TestPositionStore_BrokenSnapshotStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	s := NewPositionStore(path)
	s.Load()
	require.Zero(t, s.Len())
}

func TestPositionStore_Reconcile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")
	s := NewPositionStore(path)
	require.NoError(t, s.Add(testPosition(42, "VOL75")))
	require.NoError(t, s.Add(testPosition(77, "VOL100")))

	// Тикет 77 закрылся, пока процесс лежал.
	removed, err := s.Reconcile(map[int64]struct{}{42: {}})
	require.NoError(t, err)
	require.Equal(t, []int64{77}, removed)
	require.True(t, s.Has(42))
	require.False(t, s.Has(77))

	// Сверка сразу легла на диск.
	reloaded := NewPositionStore(path)
	reloaded.Load()
	require.False(t, reloaded.Has(77))
}

func TestPositionStore_ReconcileNoChanges(t *testing.T) {
	s := NewPositionStore(filepath.Join(t.TempDir(), "positions.json"))
	require.NoError(t, s.Add(testPosition(42, "VOL75")))

	removed, err := s.Reconcile(map[int64]struct{}{42: {}})
	require.NoError(t, err)
	require.Empty(t, removed)
	require.Equal(t, 1, s.Len())
}
