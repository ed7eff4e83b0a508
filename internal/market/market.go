// Package market simulates the exchange: it keeps the instrument universe,
// ticks live quotes on an interval and synthesizes price history
package market

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/chucky-1/papertrade/internal/model"
)

// SnapshotHandler receives every refresh cycle's quotes
type SnapshotHandler interface {
	HandleSnapshot(stocks []model.Stock)
}

// SnapshotHandlerFunc is a function adapter for SnapshotHandler
type SnapshotHandlerFunc func(stocks []model.Stock)

func (f SnapshotHandlerFunc) HandleSnapshot(stocks []model.Stock) {
	f(stocks)
}

// basis is the reference a ticker's daily change is measured against.
// PreviousClose is immutable while DayStart matches the current local date.
type basis struct {
	previousClose float64
	dayStart      string
}

// Market owns the quote and history state for one session
type Market struct {
	mu       sync.RWMutex
	rnd      *rand.Rand
	now      func() time.Time
	quotes   map[string]model.Stock
	bases    map[string]basis
	details  map[string]model.StockDetail
	handlers []SnapshotHandler

	muHistory sync.Mutex
	history   map[string][]model.PricePoint

	interval time.Duration
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewMarket is constructor. rnd is the random source quote walks and history
// draw from; tests pass a fixed seed. now is the clock day rollovers are
// detected with.
func NewMarket(rnd *rand.Rand, now func() time.Time, interval time.Duration, handlers ...SnapshotHandler) *Market {
	if now == nil {
		now = time.Now
	}
	m := &Market{
		rnd:      rnd,
		now:      now,
		quotes:   make(map[string]model.Stock),
		bases:    make(map[string]basis),
		details:  make(map[string]model.StockDetail),
		history:  make(map[string][]model.PricePoint),
		handlers: handlers,
		interval: interval,
	}
	m.Refresh()
	return m
}

// Start begins the periodic refresh loop
func (m *Market) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Refresh()
			}
		}
	}()
	log.Infof("market ticker started, interval %s", m.interval)
}

// Stop shuts the refresh loop down and waits for the current cycle
func (m *Market) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	log.Info("market ticker stopped")
}

// Refresh runs one quote update cycle: seed or roll the day basis, walk every
// price and recompute the daily change against the stored previous close
func (m *Market) Refresh() {
	m.mu.Lock()
	today := m.now().Format("2006-01-02")
	for ticker, b := range m.bases {
		if b.dayStart == today {
			continue
		}
		// New day: yesterday's last traded price becomes the new close basis
		if q, ok := m.quotes[ticker]; ok {
			m.bases[ticker] = basis{previousClose: q.Price, dayStart: today}
		} else {
			delete(m.bases, ticker)
		}
	}
	snapshot := make([]model.Stock, 0, len(seedStocks))
	for _, seed := range seedStocks {
		b, ok := m.bases[seed.Ticker]
		if !ok {
			b = basis{previousClose: round2(seed.Price - seed.Change), dayStart: today}
			m.bases[seed.Ticker] = b
		}
		price := round2(seed.Price * (1 + (m.rnd.Float64()*0.04 - 0.02)))
		if price < 0.01 {
			price = 0.01
		}
		q := seed
		q.Price = price
		q.Change = round2(price - b.previousClose)
		q.PercentChange = round2(q.Change / b.previousClose * 100)
		m.quotes[seed.Ticker] = q
		snapshot = append(snapshot, q)
	}
	m.mu.Unlock()

	for _, h := range m.handlers {
		h.HandleSnapshot(snapshot)
	}
}

// List returns a snapshot of all live quotes in listing order
func (m *Market) List() []model.Stock {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stocks := make([]model.Stock, 0, len(seedStocks))
	for _, seed := range seedStocks {
		stocks = append(stocks, m.quotes[seed.Ticker])
	}
	return stocks
}

// Get returns the live quote for one ticker. A missing ticker is a soft
// not-found, never an error
func (m *Market) Get(ticker string) (model.Stock, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quotes[ticker]
	return q, ok
}

// Detail returns the generated fundamentals for one ticker, priced against
// the live quote
func (m *Market) Detail(ticker string) (model.StockDetail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[ticker]
	if !ok {
		return model.StockDetail{}, false
	}
	d, ok := m.details[ticker]
	if !ok {
		b := m.bases[ticker]
		open := round2(q.Price * (1 + (m.rnd.Float64()*0.02 - 0.01)))
		d = model.StockDetail{
			Open:          open,
			High:          round2(math.Max(q.Price, open) * (1 + m.rnd.Float64()*0.02)),
			Low:           round2(math.Min(q.Price, open) * (1 - m.rnd.Float64()*0.02)),
			PreviousClose: round2(b.previousClose),
			PE:            round2(m.rnd.Float64()*40 + 10),
			Dividend:      round2(m.rnd.Float64() * 3),
			Description:   "No description available.",
		}
		if descr, ok := stockDescriptions[ticker]; ok {
			d.Description = descr
		}
		m.details[ticker] = d
	}
	d.Stock = q
	return d, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
