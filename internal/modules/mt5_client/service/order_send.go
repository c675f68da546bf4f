package service

import (
	"context"
	"fmt"

	"signal_bot/internal/models"
)

// OrderSend передаёт торговый запрос терминалу как есть.
// Retcode не интерпретируем — это решение вызывающего кода.
func (c *Client) OrderSend(ctx context.Context, req models.OrderRequest) (models.OrderResult, error) {
	var res models.OrderResult
	if err := c.postJSON(ctx, "/api/v1/order_send", req, &res); err != nil {
		return models.OrderResult{}, fmt.Errorf("order send: %w", err)
	}
	return res, nil
}
