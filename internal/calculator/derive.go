package calculator

import "StockWatcher/internal/model"

// Derive computes every indicator column of series over its full history.
func Derive(series *model.PriceSeries, p model.Params) model.DerivedSeries {
	closes := series.Closes()
	return model.DerivedSeries{
		SMAFast:     SimpleMovingAverage(closes, p.SMAFast),
		SMASlow:     SimpleMovingAverage(closes, p.SMASlow),
		DailyReturn: DailyReturn(closes),
		RSI:         RSI(closes, p.RSIPeriod),
	}
}
