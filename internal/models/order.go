package models

// Действия торгового запроса — как в терминале MT5.
const (
	TradeActionDeal = "deal" // рыночный ордер (открытие/закрытие)
	TradeActionSLTP = "sltp" // модификация SL/TP открытой позиции
)

// RetcodeDone — код успешного исполнения (TRADE_RETCODE_DONE).
const RetcodeDone = 10009

// OrderRequest покрывает три варианта запроса: рыночное открытие,
// модификация SL/TP и рыночное закрытие позиции.
type OrderRequest struct {
	Action    string  `json:"action"`
	Symbol    string  `json:"symbol,omitempty"`
	Volume    float64 `json:"volume,omitempty"`
	Type      string  `json:"type,omitempty"` // buy / sell
	Price     float64 `json:"price,omitempty"`
	SL        float64 `json:"sl,omitempty"`
	TP        float64 `json:"tp,omitempty"`
	Position  int64   `json:"position,omitempty"` // тикет для sltp/close
	Deviation int     `json:"deviation,omitempty"`
	Magic     int     `json:"magic,omitempty"`
	Comment   string  `json:"comment,omitempty"`
	TypeTime  string  `json:"type_time,omitempty"`
	Filling   string  `json:"type_filling,omitempty"`
}

type OrderResult struct {
	Retcode int    `json:"retcode"`
	Ticket  int64  `json:"order"`
	Message string `json:"comment"`
}

func (r OrderResult) Done() bool { return r.Retcode == RetcodeDone }
