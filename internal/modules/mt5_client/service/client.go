package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sony/gobreaker"

	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"
)

// Client — HTTP-клиент REST-моста терминала MT5.
// Все вызовы идут через circuit breaker: лежащий мост не должен
// копить таймауты на каждом тике мониторов.
type Client struct {
	http    *http.Client
	baseURL string
	breaker *gobreaker.CircuitBreaker
}

func NewClient(cfg *config.Config) *Client {
	settings := gobreaker.Settings{
		Name:        "mt5-bridge",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("%s: breaker %s -> %s", name, from, to)
		},
	}

	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: cfg.MT5.BaseURL,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := sonic.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode/100 != 2 {
			b, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(b))
		}

		if out == nil {
			return nil, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return nil, nil
	})
	return err
}
