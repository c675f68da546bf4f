package store

import (
	"sync"

	"signal_bot/internal/models"
)

// Correlation — связь входящего сообщения с тикетами, которые оно породило.
// Пишет только диспетчер, читается при редактировании сообщения.
// Записи не чистятся: карта растёт вместе с историей сообщений.
type Correlation struct {
	mu      sync.RWMutex
	tickets map[models.MessageRef][]int64
}

func NewCorrelation() *Correlation {
	return &Correlation{
		tickets: make(map[models.MessageRef][]int64),
	}
}

func (c *Correlation) Append(ref models.MessageRef, ticket int64) {
	c.mu.Lock()
	c.tickets[ref] = append(c.tickets[ref], ticket)
	c.mu.Unlock()
}

// Tickets возвращает копию списка в порядке размещения.
func (c *Correlation) Tickets(ref models.MessageRef) []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list, ok := c.tickets[ref]
	if !ok {
		return nil
	}
	out := make([]int64, len(list))
	copy(out, list)
	return out
}

func (c *Correlation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tickets)
}
