package market

import (
	"fmt"
	"math"
	"time"

	"github.com/chucky-1/papertrade/internal/model"
)

// Trading session bounds used for intraday timestamps
const (
	sessionOpenMinute  = 9*60 + 30
	sessionCloseMinute = 16 * 60
)

// maxPoints caps a series so the finest resolutions stay renderable
const maxPoints = 5000

var timeframeDays = map[model.Timeframe]int{
	model.Timeframe1m:  1,
	model.Timeframe5m:  1,
	model.Timeframe15m: 1,
	model.Timeframe30m: 1,
	model.Timeframe1h:  1,
	model.Timeframe1D:  1,
	model.Timeframe5D:  5,
	model.Timeframe1W:  7,
	model.Timeframe1M:  30,
	model.Timeframe3M:  90,
	model.Timeframe6M:  180,
	model.Timeframe1Y:  365,
	model.Timeframe5Y:  1825,
}

var resolutionStep = map[model.Resolution]time.Duration{
	model.Resolution1Sec:  time.Second,
	model.Resolution5Sec:  5 * time.Second,
	model.Resolution30Sec: 30 * time.Second,
	model.Resolution1Min:  time.Minute,
	model.Resolution5Min:  5 * time.Minute,
	model.Resolution15Min: 15 * time.Minute,
	model.Resolution30Min: 30 * time.Minute,
	model.Resolution1Hour: time.Hour,
	model.Resolution1Day:  24 * time.Hour,
	model.Resolution1Week: 7 * 24 * time.Hour,
}

// Per-step volatility shrinks with finer resolutions
var resolutionVolatility = map[model.Resolution]float64{
	model.Resolution1Sec:  0.0005,
	model.Resolution5Sec:  0.001,
	model.Resolution30Sec: 0.002,
	model.Resolution1Min:  0.005,
	model.Resolution5Min:  0.008,
	model.Resolution15Min: 0.01,
	model.Resolution30Min: 0.01,
	model.Resolution1Hour: 0.015,
	model.Resolution1Day:  0.02,
	model.Resolution1Week: 0.03,
}

// History synthesizes the price series for one (ticker, timeframe, resolution)
// request. Series are memoized for the session so re-renders see stable data;
// the cache is unbounded but small because the universe is bounded. An unknown
// ticker yields an empty series.
func (m *Market) History(ticker string, timeframe model.Timeframe, resolution model.Resolution) []model.PricePoint {
	key := fmt.Sprintf("%s-%s-%s", ticker, timeframe, resolution)

	m.muHistory.Lock()
	defer m.muHistory.Unlock()
	if points, ok := m.history[key]; ok {
		return points
	}

	var seed model.Stock
	found := false
	for _, s := range seedStocks {
		if s.Ticker == ticker {
			seed = s
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	days, ok := timeframeDays[timeframe]
	if !ok {
		days = 1
	}
	step, ok := resolutionStep[resolution]
	if !ok {
		step = time.Hour
		resolution = model.Resolution1Hour
	}
	count := pointCount(resolution, days)
	if count < 2 {
		// Degenerate combination: fall back to the timeframe's default
		// resolution instead of returning an empty series
		resolution = fallbackResolution(timeframe)
		step = resolutionStep[resolution]
		count = pointCount(resolution, days)
		if count < 2 {
			count = 2
		}
	}

	points := m.generate(ticker, days, count, step, seed.Price, resolutionVolatility[resolution])
	m.history[key] = points
	return points
}

// pointCount sizes a series: intraday steps only cover the 6.5h session and
// multi-day spans only count trading days
func pointCount(resolution model.Resolution, days int) int {
	tradingDays := days * 5 / 7
	if tradingDays < 1 {
		tradingDays = 1
	}
	var count int
	switch resolution {
	case model.Resolution1Day:
		count = tradingDays
	case model.Resolution1Week:
		count = days / 7
	default:
		step := resolutionStep[resolution]
		sessionSeconds := (sessionCloseMinute - sessionOpenMinute) * 60
		count = tradingDays * sessionSeconds / int(step.Seconds())
	}
	if count > maxPoints {
		count = maxPoints
	}
	return count
}

// fallbackResolution mirrors what the chart picks when a resolution makes no
// sense for a timeframe
func fallbackResolution(timeframe model.Timeframe) model.Resolution {
	switch timeframe {
	case model.Timeframe1m, model.Timeframe5m, model.Timeframe15m, model.Timeframe30m, model.Timeframe1h, model.Timeframe1D:
		return model.Resolution5Min
	case model.Timeframe5D, model.Timeframe1W:
		return model.Resolution30Min
	case model.Timeframe1M, model.Timeframe3M:
		return model.Resolution1Hour
	case model.Timeframe6M, model.Timeframe1Y:
		return model.Resolution1Day
	default:
		return model.Resolution1Week
	}
}

// generate walks an OHLC series forward from a seeded previous close
func (m *Market) generate(ticker string, days, count int, step time.Duration, basePrice, volatility float64) []model.PricePoint {
	// Per-symbol temperament: a fixed bias and volatility multiplier derived
	// from the ticker's bytes, so riskier names stay riskier between calls
	tickerSeed := 0
	for _, c := range ticker {
		tickerSeed += int(c)
	}
	bias := float64(tickerSeed%10-5) / 100
	volatility *= 0.75 + float64(tickerSeed%7)*0.1

	timestamps := m.timestamps(count, step, days)

	m.mu.Lock()
	defer m.mu.Unlock()

	points := make([]model.PricePoint, 0, count)
	prevClose := basePrice * (1 + (m.rnd.Float64()*0.02 - 0.01))
	for _, ts := range timestamps {
		open := round2(prevClose * (1 + (m.rnd.Float64()*0.004 - 0.002)))
		direction := (m.rnd.Float64() - 0.5 + bias) * 2
		strength := m.rnd.Float64()
		close := round2(open * (1 + direction*strength*volatility))
		if close < 0.01 {
			close = 0.01
		}
		maxOC := math.Max(open, close)
		minOC := math.Min(open, close)
		high := round2(maxOC * (1 + m.rnd.Float64()*volatility/2))
		if high < maxOC {
			high = maxOC
		}
		low := round2(minOC * (1 - m.rnd.Float64()*volatility/2))
		if low > minOC {
			low = minOC
		}
		relMove := math.Abs(close-open) / open
		volume := int64((100_000 + m.rnd.Float64()*900_000) * (1 + relMove/volatility))

		points = append(points, model.PricePoint{
			Timestamp: ts,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Price:     close,
			Volume:    volume,
		})
		prevClose = close
	}
	return points
}

// timestamps produces a strictly increasing time axis ending near now.
// Intraday steps stay inside the trading session and skip weekends; daily and
// weekly steps stamp the session close.
func (m *Market) timestamps(count int, step time.Duration, days int) []time.Time {
	start := m.now().AddDate(0, 0, -days)
	out := make([]time.Time, 0, count)

	if step < 24*time.Hour {
		cursor := start
		for len(out) < count {
			cursor = nextSessionTime(cursor)
			out = append(out, cursor)
			cursor = cursor.Add(step)
		}
		return out
	}

	cursor := time.Date(start.Year(), start.Month(), start.Day(), 16, 0, 0, 0, start.Location())
	for len(out) < count {
		for cursor.Weekday() == time.Saturday || cursor.Weekday() == time.Sunday {
			cursor = cursor.AddDate(0, 0, 1)
		}
		out = append(out, cursor)
		cursor = cursor.Add(step)
	}
	return out
}

// nextSessionTime clamps a moment into trading hours, rolling forward over
// closes and weekends
func nextSessionTime(t time.Time) time.Time {
	for {
		switch t.Weekday() {
		case time.Saturday:
			t = sessionOpen(t.AddDate(0, 0, 2))
			continue
		case time.Sunday:
			t = sessionOpen(t.AddDate(0, 0, 1))
			continue
		}
		minute := t.Hour()*60 + t.Minute()
		if minute < sessionOpenMinute {
			return sessionOpen(t)
		}
		if minute >= sessionCloseMinute {
			t = sessionOpen(t.AddDate(0, 0, 1))
			continue
		}
		return t
	}
}

func sessionOpen(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 9, 30, 0, 0, t.Location())
}
