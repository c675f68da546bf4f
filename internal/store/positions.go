package store

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

type positionsDoc struct {
	Positions   map[int64]models.OpenPosition `json:"positions"`
	LastUpdated time.Time                     `json:"last_updated"`
}

// PositionStore — зеркало открытых позиций: карта тикет -> позиция
// в памяти плюс полный снапшот на диске после каждой мутации.
// Память авторитетна для живого процесса, брокер — после рестарта.
type PositionStore struct {
	mu        sync.RWMutex
	path      string
	positions map[int64]models.OpenPosition
}

func NewPositionStore(path string) *PositionStore {
	return &PositionStore{
		path:      path,
		positions: make(map[int64]models.OpenPosition),
	}
}

// Load оптимистично поднимает снапшот с диска; дальше его сверит
// реконсиляция против брокера. Битый файл — warning и пустое зеркало.
func (s *PositionStore) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var doc positionsDoc
	if err := sonic.Unmarshal(data, &doc); err != nil {
		logger.Warn("positions: broken snapshot %s: %v", s.path, err)
		return
	}
	if doc.Positions == nil {
		return
	}

	s.mu.Lock()
	s.positions = doc.Positions
	s.mu.Unlock()
}

func (s *PositionStore) Add(pos models.OpenPosition) error {
	s.mu.Lock()
	s.positions[pos.Ticket] = pos
	s.mu.Unlock()

	return s.save()
}

// Remove идемпотентен: удаление отсутствующего тикета — no-op.
func (s *PositionStore) Remove(ticket int64) error {
	s.mu.Lock()
	_, ok := s.positions[ticket]
	delete(s.positions, ticket)
	s.mu.Unlock()

	if !ok {
		return nil
	}
	return s.save()
}

func (s *PositionStore) Has(ticket int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.positions[ticket]
	return ok
}

// HasSymbol — есть ли открытая позиция по символу (дубль-гард).
func (s *PositionStore) HasSymbol(symbol string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.positions {
		if p.Symbol == symbol {
			return true
		}
	}
	return false
}

func (s *PositionStore) Get(ticket int64) (models.OpenPosition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.positions[ticket]
	return p, ok
}

func (s *PositionStore) Snapshot() []models.OpenPosition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.OpenPosition, 0, len(s.positions))
	for _, p := range s.positions {
		out = append(out, p)
	}
	return out
}

func (s *PositionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.positions)
}

// Reconcile выкидывает тикеты, которых брокер больше не видит.
// Возвращает удалённые тикеты.
func (s *PositionStore) Reconcile(live map[int64]struct{}) ([]int64, error) {
	var removed []int64

	s.mu.Lock()
	for ticket := range s.positions {
		if _, ok := live[ticket]; !ok {
			delete(s.positions, ticket)
			removed = append(removed, ticket)
		}
	}
	s.mu.Unlock()

	if len(removed) == 0 {
		return nil, nil
	}
	return removed, s.save()
}

func (s *PositionStore) save() error {
	s.mu.RLock()
	doc := positionsDoc{
		Positions:   make(map[int64]models.OpenPosition, len(s.positions)),
		LastUpdated: time.Now().UTC(),
	}
	for t, p := range s.positions {
		doc.Positions[t] = p
	}
	s.mu.RUnlock()

	data, err := sonic.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshal positions")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "mkdir")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "write tmp")
	}
	return errors.Wrap(os.Rename(tmp, s.path), "rename")
}
