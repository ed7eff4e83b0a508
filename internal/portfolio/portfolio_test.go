package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chucky-1/papertrade/internal/model"
)

func TestLedger_Buy(t *testing.T) {
	testTable := []struct {
		name          string
		ledger        Ledger
		ticker        string
		shares        float64
		price         float64
		expectBalance float64
		expectHolding model.Holding
		expectErr     error
	}{
		{
			name:          "first buy creates the holding",
			ledger:        New(10000, nil),
			ticker:        "AAPL",
			shares:        10,
			price:         160.42,
			expectBalance: 8395.80,
			expectHolding: model.Holding{Ticker: "AAPL", Shares: 10, AverageCost: 160.42},
		},
		{
			name: "second buy merges with weighted average cost",
			ledger: New(10000, []model.Holding{
				{Ticker: "AAPL", Shares: 10, AverageCost: 100},
			}),
			ticker:        "AAPL",
			shares:        10,
			price:         200,
			expectBalance: 8000,
			expectHolding: model.Holding{Ticker: "AAPL", Shares: 20, AverageCost: 150},
		},
		{
			name:      "not enough money",
			ledger:    New(100, nil),
			ticker:    "AAPL",
			shares:    10,
			price:     160.42,
			expectErr: ErrInsufficientFunds,
		},
		{
			name:      "zero shares rejected",
			ledger:    New(10000, nil),
			ticker:    "AAPL",
			shares:    0,
			price:     160.42,
			expectErr: ErrInvalidShares,
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			next, err := testCase.ledger.Buy(testCase.ticker, testCase.shares, testCase.price)
			if testCase.expectErr != nil {
				assert.ErrorIs(t, err, testCase.expectErr)
				assert.Equal(t, testCase.ledger, next)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.expectBalance, next.Balance)
			h, ok := next.Holding(testCase.ticker)
			assert.True(t, ok)
			assert.Equal(t, testCase.expectHolding, h)
		})
	}
}

func TestLedger_Sell(t *testing.T) {
	testTable := []struct {
		name          string
		ledger        Ledger
		shares        float64
		price         float64
		expectBalance float64
		expectShares  float64
		expectGone    bool
		expectErr     error
	}{
		{
			name: "partial sell keeps average cost",
			ledger: New(0, []model.Holding{
				{Ticker: "AAPL", Shares: 10, AverageCost: 160.42},
			}),
			shares:        4,
			price:         178.42,
			expectBalance: 713.68,
			expectShares:  6,
		},
		{
			name: "selling the whole position removes it",
			ledger: New(0, []model.Holding{
				{Ticker: "AAPL", Shares: 10, AverageCost: 160.42},
			}),
			shares:        10,
			price:         178.42,
			expectBalance: 1784.20,
			expectGone:    true,
		},
		{
			name: "more shares than held",
			ledger: New(0, []model.Holding{
				{Ticker: "AAPL", Shares: 6, AverageCost: 160.42},
			}),
			shares:    20,
			price:     178.42,
			expectErr: ErrInsufficientShares,
		},
		{
			name:      "unknown ticker",
			ledger:    New(0, nil),
			shares:    1,
			price:     178.42,
			expectErr: ErrInsufficientShares,
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			next, err := testCase.ledger.Sell("AAPL", testCase.shares, testCase.price)
			if testCase.expectErr != nil {
				assert.ErrorIs(t, err, testCase.expectErr)
				assert.Equal(t, testCase.ledger, next)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.expectBalance, next.Balance)
			h, ok := next.Holding("AAPL")
			if testCase.expectGone {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, testCase.expectShares, h.Shares)
			assert.Equal(t, 160.42, h.AverageCost)
		})
	}
}

func TestLedger_ModifyFunds(t *testing.T) {
	testTable := []struct {
		name          string
		balance       float64
		amount        float64
		expectBalance float64
		expectErr     error
	}{
		{name: "deposit", balance: 100, amount: 50, expectBalance: 150},
		{name: "withdrawal", balance: 100, amount: -60, expectBalance: 40},
		{name: "withdraw everything", balance: 100, amount: -100, expectBalance: 0},
		{name: "withdrawal beyond balance", balance: 100, amount: -100.01, expectErr: ErrInvalidAmount},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			l := New(testCase.balance, nil)
			next, err := l.ModifyFunds(testCase.amount)
			if testCase.expectErr != nil {
				assert.ErrorIs(t, err, testCase.expectErr)
				assert.Equal(t, testCase.balance, next.Balance)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.expectBalance, next.Balance)
		})
	}
}

func TestLedger_AverageCostOrderIndependent(t *testing.T) {
	a := New(100000, nil)
	a, err := a.Buy("AAPL", 10, 100)
	assert.NoError(t, err)
	a, err = a.Buy("AAPL", 30, 140)
	assert.NoError(t, err)

	b := New(100000, nil)
	b, err = b.Buy("AAPL", 30, 140)
	assert.NoError(t, err)
	b, err = b.Buy("AAPL", 10, 100)
	assert.NoError(t, err)

	ha, _ := a.Holding("AAPL")
	hb, _ := b.Holding("AAPL")
	assert.Equal(t, 130.0, ha.AverageCost)
	assert.Equal(t, ha.AverageCost, hb.AverageCost)
}

func TestLedger_Valuation(t *testing.T) {
	quotes := map[string]model.Stock{
		"AAPL": {Ticker: "AAPL", Price: 178.42},
	}

	t.Run("profit over cost basis", func(t *testing.T) {
		l := New(1000, []model.Holding{{Ticker: "AAPL", Shares: 10, AverageCost: 160.42}})
		p := l.Valuation(quotes)
		assert.Equal(t, 1000.0, p.Balance)
		assert.Equal(t, 2784.20, p.TotalValue)
		assert.Equal(t, 180.0, p.TotalProfit)
		assert.Equal(t, 11.22, p.TotalProfitPercent)
	})

	t.Run("no cost basis means zero percent", func(t *testing.T) {
		l := New(1000, nil)
		p := l.Valuation(quotes)
		assert.Equal(t, 1000.0, p.TotalValue)
		assert.Equal(t, 0.0, p.TotalProfit)
		assert.Equal(t, 0.0, p.TotalProfitPercent)
	})

	t.Run("valuation does not mutate the ledger", func(t *testing.T) {
		l := New(1000, []model.Holding{{Ticker: "AAPL", Shares: 10, AverageCost: 160.42}})
		p := l.Valuation(quotes)
		p.Holdings[0].Shares = 999
		h, _ := l.Holding("AAPL")
		assert.Equal(t, 10.0, h.Shares)
	})
}
