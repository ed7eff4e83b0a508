package repository

import (
	"context"
	"time"

	"github.com/go-redis/cache/v8"

	"github.com/chucky-1/papertrade/internal/model"
)

// Cache keeps the latest quote snapshot per ticker in redis. The market
// ticker writes it every refresh cycle; order execution reads its price
// snapshot from here.
type Cache struct {
	cache *cache.Cache
}

// NewCache is constructor
func NewCache(cache *cache.Cache) *Cache {
	return &Cache{cache: cache}
}

// SetQuote stores one quote under its ticker
func (c *Cache) SetQuote(stock model.Stock) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return c.cache.Set(&cache.Item{
		Ctx:   ctx,
		Key:   stock.Ticker,
		Value: stock,
		TTL:   time.Hour * 24,
	})
}

// GetQuote returns the cached quote for a ticker. A cache miss is a soft
// not-found
func (c *Cache) GetQuote(ticker string) (model.Stock, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	var stock model.Stock
	if err := c.cache.Get(ctx, ticker, &stock); err != nil {
		return model.Stock{}, false
	}
	return stock, true
}
