package service

import "signal_bot/internal/models"

// Формат ответов моста повторяет структуры MetaTrader5:
// тип позиции — число (0 = buy, 1 = sell), цена входа — price_open.

type accountPayload struct {
	Equity float64 `json:"equity"`
	Margin float64 `json:"margin"`
}

type symbolsPayload struct {
	Symbols []string `json:"symbols"`
}

type symbolInfoPayload struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

type tickPayload struct {
	Bid  float64 `json:"bid"`
	Ask  float64 `json:"ask"`
	Time int64   `json:"time"`
}

type positionPayload struct {
	Ticket    int64   `json:"ticket"`
	Symbol    string  `json:"symbol"`
	Volume    float64 `json:"volume"`
	Type      int     `json:"type"`
	PriceOpen float64 `json:"price_open"`
}

func (p positionPayload) toModel() models.BrokerPosition {
	side := models.SideBuy
	if p.Type == 1 {
		side = models.SideSell
	}
	return models.BrokerPosition{
		Ticket:     p.Ticket,
		Symbol:     p.Symbol,
		Volume:     p.Volume,
		Side:       side,
		EntryPrice: p.PriceOpen,
	}
}
