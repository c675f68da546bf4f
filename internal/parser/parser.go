package parser

import (
	"regexp"
	"strconv"
	"strings"

	"signal_bot/internal/models"
)

// SymbolSet — снапшот каталога инструментов для валидации символа.
type SymbolSet interface {
	Has(name string) bool
	Empty() bool
}

var (
	signalRe = regexp.MustCompile(`(?i)\b(buy|sell)\s+([a-zA-Z]+)\s*(\d*)\s*(\w*)`)
	slRe     = regexp.MustCompile(`(?i)\bsl[\s:=]+(\d+(?:\.\d+)?)`)
	tpRe     = regexp.MustCompile(`(?i)\btp[\s:=]+(\d+(?:\.\d+)?)`)
)

// Синонимы семейств инструментов -> каноническое имя.
var synonyms = map[string]string{
	"VIX":        "VOL",
	"VOLATILITY": "VOL",
}

type Parser struct {
	catalog SymbolSet
}

func New(catalog SymbolSet) *Parser {
	return &Parser{catalog: catalog}
}

// Parse разбирает текст сообщения в торговый сигнал.
// nil — если сигнала нет или символ не прошёл каталог. Без сайд-эффектов.
func (p *Parser) Parse(text string) *models.TradeSignal {
	m := signalRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	base := strings.ToUpper(m[2])
	if canon, ok := synonyms[base]; ok {
		base = canon
	}
	symbol := base + m[3]

	if p.catalog != nil && !p.catalog.Empty() && !p.catalog.Has(symbol) {
		return nil
	}

	timeframe := m[4]
	if timeframe == "" {
		timeframe = "1s"
	}

	sig := &models.TradeSignal{
		Action:    models.Side(strings.ToLower(m[1])),
		Symbol:    symbol,
		Timeframe: timeframe,
	}

	// SL/TP ищем по всему тексту независимо от основного паттерна.
	if sm := slRe.FindStringSubmatch(text); sm != nil {
		if v, err := strconv.ParseFloat(sm[1], 64); err == nil {
			sig.SL, sig.HasSL = v, true
		}
	}
	if tm := tpRe.FindStringSubmatch(text); tm != nil {
		if v, err := strconv.ParseFloat(tm[1], 64); err == nil {
			sig.TP, sig.HasTP = v, true
		}
	}

	return sig
}
