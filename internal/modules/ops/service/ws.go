package service

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"signal_bot/internal/store"
	"signal_bot/pkg/logger"
)

// PositionsFeed стримит снапшот открытых позиций по вебсокету.
// Раз в 5 секунд — того же порядка, что опрос мониторов.
type PositionsFeed struct {
	positions *store.PositionStore
	upgrader  websocket.Upgrader
}

func NewPositionsFeed(positions *store.PositionStore) *PositionsFeed {
	return &PositionsFeed{
		positions: positions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (f *PositionsFeed) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("ws upgrade: %v", err)
		return
	}
	go f.stream(conn)
}

func (f *PositionsFeed) stream(conn *websocket.Conn) {
	defer conn.Close()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	// Первый снапшот сразу, дальше по тикеру.
	if err := conn.WriteJSON(f.positions.Snapshot()); err != nil {
		return
	}
	for range ticker.C {
		if err := conn.WriteJSON(f.positions.Snapshot()); err != nil {
			return
		}
	}
}
