package service

import (
	"context"
	"fmt"
	"strconv"

	"signal_bot/internal/models"
)

func (c *Client) Positions(ctx context.Context) ([]models.BrokerPosition, error) {
	var payload []positionPayload
	if err := c.getJSON(ctx, "/api/v1/positions", &payload); err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	out := make([]models.BrokerPosition, 0, len(payload))
	for _, p := range payload {
		out = append(out, p.toModel())
	}
	return out, nil
}

// PositionByTicket: пустой ответ — это не ошибка, а «позиции больше нет».
func (c *Client) PositionByTicket(ctx context.Context, ticket int64) (*models.BrokerPosition, error) {
	var payload []positionPayload
	if err := c.getJSON(ctx, "/api/v1/positions?ticket="+strconv.FormatInt(ticket, 10), &payload); err != nil {
		return nil, fmt.Errorf("position ticket=%d: %w", ticket, err)
	}
	if len(payload) == 0 {
		return nil, nil
	}
	pos := payload[0].toModel()
	return &pos, nil
}
