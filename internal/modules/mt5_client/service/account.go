package service

import (
	"context"
	"fmt"

	"signal_bot/internal/models"
)

func (c *Client) AccountInfo(ctx context.Context) (models.AccountInfo, error) {
	var payload accountPayload
	if err := c.getJSON(ctx, "/api/v1/account", &payload); err != nil {
		return models.AccountInfo{}, fmt.Errorf("account: %w", err)
	}
	return models.AccountInfo{
		Equity:     payload.Equity,
		UsedMargin: payload.Margin,
	}, nil
}
