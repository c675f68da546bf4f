package service

import (
	"context"
	"fmt"
	"net/url"

	"signal_bot/internal/models"
)

func (c *Client) Symbols(ctx context.Context) ([]string, error) {
	var payload symbolsPayload
	if err := c.getJSON(ctx, "/api/v1/symbols", &payload); err != nil {
		return nil, fmt.Errorf("symbols: %w", err)
	}
	return payload.Symbols, nil
}

func (c *Client) SymbolInfo(ctx context.Context, name string) (models.SymbolInfo, error) {
	var payload symbolInfoPayload
	if err := c.getJSON(ctx, "/api/v1/symbols/"+url.PathEscape(name), &payload); err != nil {
		return models.SymbolInfo{}, fmt.Errorf("symbol %s: %w", name, err)
	}
	if payload.Name == "" {
		return models.SymbolInfo{}, fmt.Errorf("symbol %s not found", name)
	}
	return models.SymbolInfo{
		Name:    payload.Name,
		Visible: payload.Visible,
	}, nil
}

// SymbolSelect добавляет символ в Market Watch терминала.
func (c *Client) SymbolSelect(ctx context.Context, name string) error {
	if err := c.postJSON(ctx, "/api/v1/symbols/"+url.PathEscape(name)+"/select", nil, nil); err != nil {
		return fmt.Errorf("symbol select %s: %w", name, err)
	}
	return nil
}

func (c *Client) SymbolTick(ctx context.Context, name string) (models.Tick, error) {
	var payload tickPayload
	if err := c.getJSON(ctx, "/api/v1/tick/"+url.PathEscape(name), &payload); err != nil {
		return models.Tick{}, fmt.Errorf("tick %s: %w", name, err)
	}
	if payload.Bid <= 0 && payload.Ask <= 0 {
		return models.Tick{}, fmt.Errorf("tick %s: нет котировки", name)
	}
	return models.Tick{Bid: payload.Bid, Ask: payload.Ask}, nil
}
