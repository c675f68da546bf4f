package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"signal_bot/internal/models"
)

type fakeCatalog map[string]struct{}

func (c fakeCatalog) Has(name string) bool { _, ok := c[name]; return ok }
func (c fakeCatalog) Empty() bool          { return len(c) == 0 }

func TestParse_BasicSignals(t *testing.T) {
	p := New(fakeCatalog{"VOL75": {}, "VOL100": {}})

	tests := []struct {
		name string
		text string
		want *models.TradeSignal
	}{
		{
			name: "buy vix",
			text: "buy vix 75",
			want: &models.TradeSignal{Action: models.SideBuy, Symbol: "VOL75", Timeframe: "1s"},
		},
		{
			name: "sell volatility",
			text: "SELL Volatility 100",
			want: &models.TradeSignal{Action: models.SideSell, Symbol: "VOL100", Timeframe: "1s"},
		},
		{
			name: "каноническое имя семейства",
			text: "buy vol 75",
			want: &models.TradeSignal{Action: models.SideBuy, Symbol: "VOL75", Timeframe: "1s"},
		},
		{
			name: "сигнал посреди текста",
			text: "внимание!! buy vix 75 m1 заходим",
			want: &models.TradeSignal{Action: models.SideBuy, Symbol: "VOL75", Timeframe: "m1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, p.Parse(tt.text))
		})
	}
}

func TestParse_StopLevels(t *testing.T) {
	p := New(fakeCatalog{"VOL75": {}})

	sig := p.Parse("buy vix 75 sl 95.5 tp 110")
	require.NotNil(t, sig)
	require.True(t, sig.HasSL)
	require.True(t, sig.HasTP)
	require.Equal(t, 95.5, sig.SL)
	require.Equal(t, 110.0, sig.TP)

	sig = p.Parse("buy vix 75 sl=95.5")
	require.NotNil(t, sig)
	require.True(t, sig.HasSL)
	require.False(t, sig.HasTP)

	sig = p.Parse("buy vix 75")
	require.NotNil(t, sig)
	require.False(t, sig.HasSL)
	require.False(t, sig.HasTP)
}

func TestParse_Rejections(t *testing.T) {
	p := New(fakeCatalog{"VOL75": {}})

	require.Nil(t, p.Parse("доброе утро"))
	require.Nil(t, p.Parse("rebuy everything"))      // \b отсекает подстроку
	require.Nil(t, p.Parse("buy step 100"))          // символа нет в каталоге
	require.Nil(t, p.Parse(""))
}

func TestParse_EmptyCatalogPermitsAll(t *testing.T) {
	p := New(fakeCatalog{})

	sig := p.Parse("buy vix 75")
	require.NotNil(t, sig)
	require.Equal(t, "VOL75", sig.Symbol)
}
