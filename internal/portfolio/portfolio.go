// Package portfolio keeps cash and holdings for one user and applies
// buy/sell transactions under solvency and ownership constraints
package portfolio

import (
	"errors"
	"math"

	"github.com/chucky-1/papertrade/internal/model"
)

// Business-rule violations callers match with errors.Is
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrInvalidShares      = errors.New("shares must be positive")
	ErrInvalidAmount      = errors.New("withdrawal exceeds balance")
)

// Ledger is the account state. Methods never mutate the receiver: every
// transaction returns a replacement ledger, so a caller swaps whole states
// and a failed persistence write leaves the old state untouched.
type Ledger struct {
	Balance  float64
	Holdings []model.Holding
}

// New is constructor
func New(balance float64, holdings []model.Holding) Ledger {
	return Ledger{Balance: balance, Holdings: holdings}
}

// Holding returns the position for one ticker
func (l Ledger) Holding(ticker string) (model.Holding, bool) {
	for _, h := range l.Holdings {
		if h.Ticker == ticker {
			return h, true
		}
	}
	return model.Holding{}, false
}

// Buy charges shares*price to the balance and merges the position using a
// weighted-average cost
func (l Ledger) Buy(ticker string, shares, price float64) (Ledger, error) {
	if shares <= 0 {
		return l, ErrInvalidShares
	}
	cost := round2(shares * price)
	if l.Balance < cost {
		return l, ErrInsufficientFunds
	}

	next := l.copy()
	next.Balance = round2(next.Balance - cost)
	for i, h := range next.Holdings {
		if h.Ticker != ticker {
			continue
		}
		totalShares := h.Shares + shares
		next.Holdings[i].AverageCost = round2((h.AverageCost*h.Shares + price*shares) / totalShares)
		next.Holdings[i].Shares = totalShares
		return next, nil
	}
	next.Holdings = append(next.Holdings, model.Holding{Ticker: ticker, Shares: shares, AverageCost: price})
	return next, nil
}

// Sell credits shares*price to the balance and decrements the position. The
// average cost of a partial sell is unchanged; a position sold to zero is
// removed entirely.
func (l Ledger) Sell(ticker string, shares, price float64) (Ledger, error) {
	if shares <= 0 {
		return l, ErrInvalidShares
	}
	held, ok := l.Holding(ticker)
	if !ok || held.Shares < shares {
		return l, ErrInsufficientShares
	}

	next := l.copy()
	next.Balance = round2(next.Balance + shares*price)
	for i, h := range next.Holdings {
		if h.Ticker != ticker {
			continue
		}
		remaining := h.Shares - shares
		if remaining > 0 {
			next.Holdings[i].Shares = remaining
		} else {
			next.Holdings = append(next.Holdings[:i], next.Holdings[i+1:]...)
		}
		break
	}
	return next, nil
}

// ModifyFunds deposits a positive amount or withdraws a negative one. A
// withdrawal that would drive the balance negative is rejected before any
// mutation.
func (l Ledger) ModifyFunds(amount float64) (Ledger, error) {
	if l.Balance+amount < 0 {
		return l, ErrInvalidAmount
	}
	next := l.copy()
	next.Balance = round2(next.Balance + amount)
	return next, nil
}

// Valuation prices the ledger against the supplied quotes. TotalProfitPercent
// is cumulative profit over cost basis, distinct from a quote's daily change
// percent, and is 0 when nothing has been bought.
func (l Ledger) Valuation(quotes map[string]model.Stock) model.Portfolio {
	totalValue := l.Balance
	totalCost := 0.0
	for _, h := range l.Holdings {
		if q, ok := quotes[h.Ticker]; ok {
			totalValue += q.Price * h.Shares
		}
		totalCost += h.AverageCost * h.Shares
	}
	totalProfit := totalValue - l.Balance - totalCost
	totalProfitPercent := 0.0
	if totalCost > 0 {
		totalProfitPercent = totalProfit / totalCost * 100
	}
	return model.Portfolio{
		Balance:            round2(l.Balance),
		Holdings:           l.copy().Holdings,
		TotalValue:         round2(totalValue),
		TotalProfit:        round2(totalProfit),
		TotalProfitPercent: round2(totalProfitPercent),
	}
}

func (l Ledger) copy() Ledger {
	holdings := make([]model.Holding, len(l.Holdings))
	copy(holdings, l.Holdings)
	return Ledger{Balance: l.Balance, Holdings: holdings}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
