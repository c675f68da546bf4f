package service

import (
	"sync"
	"time"
)

// State — рантайм-состояние сервиса для health-эндпоинтов.
type State struct {
	startedAt time.Time

	mu        sync.RWMutex
	ready     bool
	lastEvent time.Time
}

func NewState() *State {
	return &State{startedAt: time.Now()}
}

// SetReady выставляется после стартовой сверки с терминалом.
func (s *State) SetReady(v bool) {
	s.mu.Lock()
	s.ready = v
	s.mu.Unlock()
}

func (s *State) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *State) MarkEvent() {
	s.mu.Lock()
	s.lastEvent = time.Now()
	s.mu.Unlock()
}

func (s *State) LastEvent() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastEvent
}

func (s *State) Uptime() time.Duration {
	return time.Since(s.startedAt)
}
