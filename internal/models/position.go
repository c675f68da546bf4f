package models

// OpenPosition — снапшот открытой позиции у брокера.
// Ключ — тикет, его выдаёт терминал при исполнении ордера.
type OpenPosition struct {
	Ticket int64   `json:"ticket"`
	Symbol string  `json:"symbol"`
	Volume float64 `json:"volume"`
	Side   Side    `json:"side"`
}

// BrokerPosition — позиция, как её отдаёт шлюз терминала.
type BrokerPosition struct {
	Ticket     int64
	Symbol     string
	Volume     float64
	Side       Side
	EntryPrice float64
}

type AccountInfo struct {
	Equity     float64
	UsedMargin float64
}

type Tick struct {
	Bid float64
	Ask float64
}

type SymbolInfo struct {
	Name    string
	Visible bool
}
