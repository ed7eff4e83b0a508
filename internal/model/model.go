// Package model contains the domain structs shared by all layers
package model

import "time"

// Stock is a live quote for one instrument. Change and PercentChange are
// always measured against the day's previous close, never the prior tick.
type Stock struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Price         float64 `json:"price" validate:"gt=0"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percentChange"`
	Volume        int64   `json:"volume"`
	MarketCap     int64   `json:"marketCap"`
}

// StockDetail extends Stock with per-session generated fundamentals
type StockDetail struct {
	Stock
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	PreviousClose float64 `json:"previousClose"`
	PE            float64 `json:"pe"`
	Dividend      float64 `json:"dividend"`
	Description   string  `json:"description"`
}

// PricePoint is one bar of a synthetic price series. Price mirrors Close for
// line-chart consumers.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Price     float64   `json:"price"`
	Volume    int64     `json:"volume"`
}

// Holding is a user's position in one instrument
type Holding struct {
	Ticker      string  `json:"ticker"`
	Shares      float64 `json:"shares" validate:"gt=0"`
	AverageCost float64 `json:"averageCost"`
}

// Portfolio is the full account state of one user
type Portfolio struct {
	Balance            float64   `json:"balance"`
	Holdings           []Holding `json:"holdings"`
	TotalValue         float64   `json:"totalValue"`
	TotalProfit        float64   `json:"totalProfit"`
	TotalProfitPercent float64   `json:"totalProfitPercent"`
}

// OrderType is the side of an order
type OrderType string

const (
	Buy  OrderType = "buy"
	Sell OrderType = "sell"
)

// OrderStatus is the lifecycle state of an order. Pending transitions to
// exactly one of Completed or Failed and never changes again.
type OrderStatus string

const (
	Pending   OrderStatus = "pending"
	Completed OrderStatus = "completed"
	Failed    OrderStatus = "failed"
)

// Order is one row of the append-only trade log. Price is the quote captured
// at submit time.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"-"`
	Ticker    string      `json:"ticker"`
	Shares    float64     `json:"shares" validate:"gt=0"`
	Price     float64     `json:"price"`
	Type      OrderType   `json:"type"`
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

// User is the auth collaborator's view of an account
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Timeframe is the span of a history request
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe30m Timeframe = "30m"
	Timeframe1h  Timeframe = "1h"
	Timeframe1D  Timeframe = "1D"
	Timeframe5D  Timeframe = "5D"
	Timeframe1W  Timeframe = "1W"
	Timeframe1M  Timeframe = "1M"
	Timeframe3M  Timeframe = "3M"
	Timeframe6M  Timeframe = "6M"
	Timeframe1Y  Timeframe = "1Y"
	Timeframe5Y  Timeframe = "5Y"
)

// Resolution is the bar size of a history request
type Resolution string

const (
	Resolution1Sec  Resolution = "1sec"
	Resolution5Sec  Resolution = "5sec"
	Resolution30Sec Resolution = "30sec"
	Resolution1Min  Resolution = "1min"
	Resolution5Min  Resolution = "5min"
	Resolution15Min Resolution = "15min"
	Resolution30Min Resolution = "30min"
	Resolution1Hour Resolution = "1hour"
	Resolution1Day  Resolution = "1day"
	Resolution1Week Resolution = "1week"
)
