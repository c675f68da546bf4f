package runner

import "math"

// lotDivisor связывает риск в деньгах с лотами брокера (минимальный
// лот/пипс-экономика терминала). Конфигурационная константа, не выводится.
const lotDivisor = 100.0

const minLot = 0.01

// calculateLot — размер позиции из equity и процента риска,
// с округлением до сотых и нижним порогом minLot.
func calculateLot(equity, riskPct float64) float64 {
	riskAmount := equity * riskPct / 100.0
	lot := math.Round(riskAmount/lotDivisor*100) / 100
	if lot < minLot {
		lot = minLot
	}
	return lot
}
