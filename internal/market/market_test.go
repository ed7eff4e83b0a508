package market

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chucky-1/papertrade/internal/model"
)

func newTestMarket(now func() time.Time, handlers ...SnapshotHandler) *Market {
	return NewMarket(rand.New(rand.NewSource(42)), now, time.Hour, handlers...)
}

func TestMarket_ListAndGet(t *testing.T) {
	m := newTestMarket(nil)

	stocks := m.List()
	assert.Len(t, stocks, len(seedStocks))
	assert.Equal(t, "AAPL", stocks[0].Ticker)

	q, ok := m.Get("AAPL")
	assert.True(t, ok)
	assert.Greater(t, q.Price, 0.0)

	_, ok = m.Get("ZZZZ")
	assert.False(t, ok)
}

// Daily change must always be measured against the stored previous close,
// never the prior tick
func TestMarket_DailyChangeStableAcrossTicks(t *testing.T) {
	m := newTestMarket(nil)
	previousClose := round2(178.42 - 3.26) // AAPL's listed basis

	for i := 0; i < 20; i++ {
		m.Refresh()
		q, ok := m.Get("AAPL")
		assert.True(t, ok)
		assert.Equal(t, round2(q.Price-previousClose), q.Change)
		assert.Equal(t, round2(q.Change/previousClose*100), q.PercentChange)
	}
}

func TestMarket_DayRolloverReseedsBasis(t *testing.T) {
	now := time.Date(2023, 5, 15, 12, 0, 0, 0, time.UTC)
	m := newTestMarket(func() time.Time { return now })

	for i := 0; i < 5; i++ {
		m.Refresh()
	}
	lastPrice, _ := m.Get("AAPL")

	// Crossing midnight makes yesterday's last price the new basis
	now = now.AddDate(0, 0, 1)
	m.Refresh()
	q, ok := m.Get("AAPL")
	assert.True(t, ok)
	assert.Equal(t, round2(q.Price-lastPrice.Price), q.Change)
}

func TestMarket_SameDayKeepsBasis(t *testing.T) {
	now := time.Date(2023, 5, 15, 9, 0, 0, 0, time.UTC)
	m := newTestMarket(func() time.Time { return now })
	basis := round2(178.42 - 3.26)

	now = now.Add(8 * time.Hour) // still the same calendar day
	m.Refresh()
	q, _ := m.Get("AAPL")
	assert.Equal(t, round2(q.Price-basis), q.Change)
}

func TestMarket_RefreshNotifiesHandlers(t *testing.T) {
	var got []model.Stock
	handler := SnapshotHandlerFunc(func(stocks []model.Stock) {
		got = stocks
	})
	m := newTestMarket(nil, handler)
	assert.Len(t, got, len(seedStocks))

	got = nil
	m.Refresh()
	assert.Len(t, got, len(seedStocks))
}

func TestMarket_StartStop(t *testing.T) {
	ticks := make(chan struct{}, 100)
	handler := SnapshotHandlerFunc(func([]model.Stock) {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})
	m := NewMarket(rand.New(rand.NewSource(42)), nil, 10*time.Millisecond, handler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("no refresh cycle ran")
	}
	m.Stop()
}

func TestMarket_Detail(t *testing.T) {
	m := newTestMarket(nil)

	d, ok := m.Detail("AAPL")
	assert.True(t, ok)
	assert.Equal(t, "AAPL", d.Ticker)
	assert.GreaterOrEqual(t, d.High, d.Low)
	assert.Greater(t, d.PE, 0.0)
	assert.Contains(t, d.Description, "Apple")

	// Fundamentals are generated once per session
	again, _ := m.Detail("AAPL")
	assert.Equal(t, d.PE, again.PE)

	d, ok = m.Detail("TXN")
	assert.True(t, ok)
	assert.Equal(t, "No description available.", d.Description)

	_, ok = m.Detail("ZZZZ")
	assert.False(t, ok)
}
