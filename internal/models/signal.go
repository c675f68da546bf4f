package models

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// TradeSignal — разобранная торговая инструкция из текста сообщения.
// Иммутабельна после парсинга, никуда не персистится.
type TradeSignal struct {
	Action    Side
	Symbol    string // каноническое имя инструмента, upper-case
	Timeframe string // свободная метка, по умолчанию "1s"
	SL        float64
	TP        float64
	HasSL     bool
	HasTP     bool
}
