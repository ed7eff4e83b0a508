package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chucky-1/papertrade/internal/model"
)

func TestHistory_OHLCValid(t *testing.T) {
	m := newTestMarket(nil)

	testTable := []struct {
		name       string
		timeframe  model.Timeframe
		resolution model.Resolution
	}{
		{name: "intraday", timeframe: model.Timeframe1D, resolution: model.Resolution5Min},
		{name: "week of half hours", timeframe: model.Timeframe1W, resolution: model.Resolution30Min},
		{name: "month of hours", timeframe: model.Timeframe1M, resolution: model.Resolution1Hour},
		{name: "year of days", timeframe: model.Timeframe1Y, resolution: model.Resolution1Day},
		{name: "five years of weeks", timeframe: model.Timeframe5Y, resolution: model.Resolution1Week},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			points := m.History("AAPL", testCase.timeframe, testCase.resolution)
			assert.NotEmpty(t, points)

			prev := time.Time{}
			for _, p := range points {
				assert.True(t, p.Timestamp.After(prev), "timestamps must strictly increase")
				prev = p.Timestamp

				assert.Greater(t, p.Open, 0.0)
				assert.Greater(t, p.Close, 0.0)
				assert.LessOrEqual(t, p.Low, p.Open)
				assert.LessOrEqual(t, p.Low, p.Close)
				assert.GreaterOrEqual(t, p.High, p.Open)
				assert.GreaterOrEqual(t, p.High, p.Close)
				assert.Equal(t, p.Close, p.Price)
				assert.Greater(t, p.Volume, int64(0))
			}
		})
	}
}

func TestHistory_UnknownTicker(t *testing.T) {
	m := newTestMarket(nil)
	assert.Empty(t, m.History("ZZZZ", model.Timeframe1D, model.Resolution1Min))
}

func TestHistory_Memoized(t *testing.T) {
	m := newTestMarket(nil)
	first := m.History("AAPL", model.Timeframe1D, model.Resolution1Min)
	second := m.History("AAPL", model.Timeframe1D, model.Resolution1Min)
	assert.Equal(t, first, second)

	other := m.History("AAPL", model.Timeframe1D, model.Resolution5Min)
	assert.NotEqual(t, len(first), len(other))
}

// A resolution coarser than the whole timeframe falls back instead of
// producing an empty series
func TestHistory_DegenerateResolutionFallsBack(t *testing.T) {
	m := newTestMarket(nil)

	testTable := []struct {
		name       string
		timeframe  model.Timeframe
		resolution model.Resolution
	}{
		{name: "day of weeks", timeframe: model.Timeframe1D, resolution: model.Resolution1Week},
		{name: "day of days", timeframe: model.Timeframe1D, resolution: model.Resolution1Day},
		{name: "five days of weeks", timeframe: model.Timeframe5D, resolution: model.Resolution1Week},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			points := m.History("AAPL", testCase.timeframe, testCase.resolution)
			assert.GreaterOrEqual(t, len(points), 2)
		})
	}
}

func TestHistory_CappedPointCount(t *testing.T) {
	m := newTestMarket(nil)
	points := m.History("AAPL", model.Timeframe5Y, model.Resolution1Sec)
	assert.Len(t, points, maxPoints)
}

func TestHistory_SkipsWeekends(t *testing.T) {
	m := newTestMarket(nil)

	for _, p := range m.History("MSFT", model.Timeframe1M, model.Resolution1Day) {
		assert.NotEqual(t, time.Saturday, p.Timestamp.Weekday())
		assert.NotEqual(t, time.Sunday, p.Timestamp.Weekday())
	}
}

func TestHistory_IntradayStaysInSession(t *testing.T) {
	m := newTestMarket(nil)

	for _, p := range m.History("TSLA", model.Timeframe5D, model.Resolution30Min) {
		minute := p.Timestamp.Hour()*60 + p.Timestamp.Minute()
		assert.GreaterOrEqual(t, minute, sessionOpenMinute)
		assert.Less(t, minute, sessionCloseMinute)
		assert.NotEqual(t, time.Saturday, p.Timestamp.Weekday())
		assert.NotEqual(t, time.Sunday, p.Timestamp.Weekday())
	}
}

// Riskier tickers carry a larger per-step volatility multiplier, but every
// series stays positive
func TestHistory_PricesStayPositive(t *testing.T) {
	m := newTestMarket(nil)
	for _, ticker := range []string{"AAPL", "NVDA", "BAC"} {
		for _, p := range m.History(ticker, model.Timeframe1Y, model.Resolution1Day) {
			assert.Greater(t, p.Low, 0.0)
		}
	}
}
