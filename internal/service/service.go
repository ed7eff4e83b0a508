// Package service have business logic
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/chucky-1/papertrade/internal/market"
	"github.com/chucky-1/papertrade/internal/model"
	"github.com/chucky-1/papertrade/internal/portfolio"
)

// Business-rule violations reported to the caller, never thrown as faults
var (
	ErrStockNotFound = errors.New("stock not found")
	ErrNoSession     = errors.New("you must be signed in")
	ErrUserExists    = errors.New("user already exists")
	ErrUnknownUser   = errors.New("user not found")
)

// Storage is the persistence gateway the service writes through
type Storage interface {
	CreateUser(ctx context.Context, email string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, bool, error)
	CreatePortfolio(ctx context.Context, userID string, p model.Portfolio) error
	GetPortfolio(ctx context.Context, userID string) (model.Portfolio, bool, error)
	SavePortfolio(ctx context.Context, userID string, p model.Portfolio) error
	InsertOrder(ctx context.Context, order model.Order) error
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	GetOrders(ctx context.Context, userID string) ([]model.Order, error)
	AddWatchlist(ctx context.Context, userID, ticker string) error
	RemoveWatchlist(ctx context.Context, userID, ticker string) error
	GetWatchlist(ctx context.Context, userID string) ([]string, error)
}

// QuoteCache is the read side of the live-quote cache. Execution falls back
// to the market itself on a miss, so a nil cache is allowed.
type QuoteCache interface {
	GetQuote(ticker string) (model.Stock, bool)
}

// Starter positions every new account gets, priced at historical buys
var starterHoldings = []model.Holding{
	{Ticker: "AAPL", Shares: 10, AverageCost: 160.42},
	{Ticker: "MSFT", Shares: 5, AverageCost: 320.18},
	{Ticker: "TSLA", Shares: 8, AverageCost: 250.75},
}

var starterWatchlist = []string{"GOOGL", "NFLX", "DIS"}

// session is the in-memory state of one signed-in user
type session struct {
	user      model.User
	mu        sync.RWMutex
	ledger    portfolio.Ledger
	watchlist []string
	// trade serializes order execution and fund changes so two concurrent
	// trades never race the same balance check-then-mutate
	trade sync.Mutex
}

// Service implements business logic
type Service struct {
	rep        Storage
	market     *market.Market
	cache      QuoteCache
	muSessions sync.RWMutex
	sessions   map[string]*session // map[user.ID]*session

	orderDelay      time.Duration
	startingBalance float64
}

// NewService is constructor
func NewService(rep Storage, mkt *market.Market, cache QuoteCache, orderDelay time.Duration, startingBalance float64) *Service {
	return &Service{
		rep:             rep,
		market:          mkt,
		cache:           cache,
		sessions:        make(map[string]*session),
		orderDelay:      orderDelay,
		startingBalance: startingBalance,
	}
}

// SignUp registers a user and seeds the starter portfolio and watchlist
func (s *Service) SignUp(ctx context.Context, email string) (model.User, error) {
	if _, ok, err := s.rep.GetUserByEmail(ctx, email); err != nil {
		return model.User{}, fmt.Errorf("sign up: %w", err)
	} else if ok {
		return model.User{}, ErrUserExists
	}

	u, err := s.rep.CreateUser(ctx, email)
	if err != nil {
		return model.User{}, fmt.Errorf("sign up: %w", err)
	}

	ledger := portfolio.New(s.startingBalance, append([]model.Holding(nil), starterHoldings...))
	if err = s.rep.CreatePortfolio(ctx, u.ID, ledger.Valuation(s.quotes())); err != nil {
		return model.User{}, fmt.Errorf("sign up: %w", err)
	}
	watchlist := make([]string, 0, len(starterWatchlist))
	for _, ticker := range starterWatchlist {
		if err = s.rep.AddWatchlist(ctx, u.ID, ticker); err != nil {
			log.Errorf("seed watchlist %s: %v", ticker, err)
			continue
		}
		watchlist = append(watchlist, ticker)
	}

	s.muSessions.Lock()
	s.sessions[u.ID] = &session{user: u, ledger: ledger, watchlist: watchlist}
	s.muSessions.Unlock()
	return u, nil
}

// SignIn loads an existing user's portfolio and watchlist into a session
func (s *Service) SignIn(ctx context.Context, email string) (model.User, error) {
	u, ok, err := s.rep.GetUserByEmail(ctx, email)
	if err != nil {
		return model.User{}, fmt.Errorf("sign in: %w", err)
	}
	if !ok {
		return model.User{}, ErrUnknownUser
	}

	p, ok, err := s.rep.GetPortfolio(ctx, u.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("sign in: %w", err)
	}
	if !ok {
		p = portfolio.New(s.startingBalance, nil).Valuation(nil)
	}
	watchlist, err := s.rep.GetWatchlist(ctx, u.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("sign in: %w", err)
	}

	s.muSessions.Lock()
	s.sessions[u.ID] = &session{user: u, ledger: portfolio.New(p.Balance, p.Holdings), watchlist: watchlist}
	s.muSessions.Unlock()
	return u, nil
}

// SignOut tears the session down. Without a session no order or watchlist
// mutation is possible.
func (s *Service) SignOut(userID string) {
	s.muSessions.Lock()
	delete(s.sessions, userID)
	s.muSessions.Unlock()
}

// ExecuteOrder validates and runs one buy or sell. Expected violations are
// rejected before any order row exists; a persistence failure after that
// yields a failed terminal order and leaves the ledger unmutated.
func (s *Service) ExecuteOrder(ctx context.Context, userID, ticker string, shares float64, orderType model.OrderType) (model.Order, error) {
	sess, err := s.session(userID)
	if err != nil {
		return model.Order{}, err
	}
	sess.trade.Lock()
	defer sess.trade.Unlock()

	quote, ok := s.quote(ticker)
	if !ok {
		return model.Order{}, ErrStockNotFound
	}
	if shares <= 0 {
		return model.Order{}, portfolio.ErrInvalidShares
	}
	sess.mu.RLock()
	ledger := sess.ledger
	sess.mu.RUnlock()
	if orderType == model.Sell {
		if held, ok := ledger.Holding(ticker); !ok || held.Shares < shares {
			return model.Order{}, portfolio.ErrInsufficientShares
		}
	} else if ledger.Balance < shares*quote.Price {
		return model.Order{}, portfolio.ErrInsufficientFunds
	}

	order := model.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Ticker:    ticker,
		Shares:    shares,
		Price:     quote.Price,
		Type:      orderType,
		Status:    model.Pending,
		Timestamp: time.Now(),
	}
	if err = s.rep.InsertOrder(ctx, order); err != nil {
		return model.Order{}, fmt.Errorf("insert order: %w", err)
	}

	// Simulated processing latency
	time.Sleep(s.orderDelay)

	// The mutation uses the price captured at submit time, not a re-fetch
	var next portfolio.Ledger
	if orderType == model.Buy {
		next, err = ledger.Buy(ticker, shares, order.Price)
	} else {
		next, err = ledger.Sell(ticker, shares, order.Price)
	}
	if err != nil {
		order.Status = s.failOrder(ctx, order.ID)
		return order, err
	}

	if err = s.rep.SavePortfolio(ctx, userID, next.Valuation(s.quotes())); err != nil {
		order.Status = s.failOrder(ctx, order.ID)
		return order, fmt.Errorf("save portfolio: %w", err)
	}
	if err = s.rep.UpdateOrderStatus(ctx, order.ID, model.Completed); err != nil {
		// Compensate: restore the stored snapshot so no partial application
		// survives a failed status write
		if errSave := s.rep.SavePortfolio(ctx, userID, ledger.Valuation(s.quotes())); errSave != nil {
			log.Errorf("rollback portfolio for user %s: %v", userID, errSave)
		}
		order.Status = s.failOrder(ctx, order.ID)
		return order, fmt.Errorf("complete order: %w", err)
	}

	sess.mu.Lock()
	sess.ledger = next
	sess.mu.Unlock()
	order.Status = model.Completed
	log.Infof("user %s %s %.2f shares of %s at %.2f", userID, orderType, shares, ticker, order.Price)
	return order, nil
}

// ModifyFunds deposits or withdraws cash
func (s *Service) ModifyFunds(ctx context.Context, userID string, amount float64) (model.Portfolio, error) {
	sess, err := s.session(userID)
	if err != nil {
		return model.Portfolio{}, err
	}
	sess.trade.Lock()
	defer sess.trade.Unlock()

	sess.mu.RLock()
	ledger := sess.ledger
	sess.mu.RUnlock()
	next, err := ledger.ModifyFunds(amount)
	if err != nil {
		return model.Portfolio{}, err
	}
	valuation := next.Valuation(s.quotes())
	if err = s.rep.SavePortfolio(ctx, userID, valuation); err != nil {
		return model.Portfolio{}, fmt.Errorf("save portfolio: %w", err)
	}
	sess.mu.Lock()
	sess.ledger = next
	sess.mu.Unlock()
	return valuation, nil
}

// Portfolio prices the session's ledger against current quotes
func (s *Service) Portfolio(userID string) (model.Portfolio, error) {
	sess, err := s.session(userID)
	if err != nil {
		return model.Portfolio{}, err
	}
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.ledger.Valuation(s.quotes()), nil
}

// Orders returns the append-only trade log, newest first
func (s *Service) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	if _, err := s.session(userID); err != nil {
		return nil, err
	}
	orders, err := s.rep.GetOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return orders, nil
}

// AddToWatchlist applies the membership optimistically and reverts on a
// failed persistence write
func (s *Service) AddToWatchlist(ctx context.Context, userID, ticker string) error {
	sess, err := s.session(userID)
	if err != nil {
		return err
	}
	if _, ok := s.market.Get(ticker); !ok {
		return ErrStockNotFound
	}

	sess.mu.Lock()
	for _, t := range sess.watchlist {
		if t == ticker {
			sess.mu.Unlock()
			return nil
		}
	}
	sess.watchlist = append(sess.watchlist, ticker)
	sess.mu.Unlock()

	if err = s.rep.AddWatchlist(ctx, userID, ticker); err != nil {
		sess.mu.Lock()
		sess.watchlist = removeTicker(sess.watchlist, ticker)
		sess.mu.Unlock()
		return fmt.Errorf("add to watchlist: %w", err)
	}
	return nil
}

// RemoveFromWatchlist is the inverse operation with the inverse compensation
func (s *Service) RemoveFromWatchlist(ctx context.Context, userID, ticker string) error {
	sess, err := s.session(userID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	before := len(sess.watchlist)
	sess.watchlist = removeTicker(sess.watchlist, ticker)
	changed := len(sess.watchlist) != before
	sess.mu.Unlock()
	if !changed {
		return nil
	}

	if err = s.rep.RemoveWatchlist(ctx, userID, ticker); err != nil {
		sess.mu.Lock()
		sess.watchlist = append(sess.watchlist, ticker)
		sess.mu.Unlock()
		return fmt.Errorf("remove from watchlist: %w", err)
	}
	return nil
}

// Watchlist returns the session's watched tickers
func (s *Service) Watchlist(userID string) ([]string, error) {
	sess, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return append([]string(nil), sess.watchlist...), nil
}

func (s *Service) session(userID string) (*session, error) {
	s.muSessions.RLock()
	sess, ok := s.sessions[userID]
	s.muSessions.RUnlock()
	if !ok {
		return nil, ErrNoSession
	}
	return sess, nil
}

// quote reads the execution price snapshot, preferring the cache
func (s *Service) quote(ticker string) (model.Stock, bool) {
	if s.cache != nil {
		if q, ok := s.cache.GetQuote(ticker); ok {
			return q, true
		}
	}
	return s.market.Get(ticker)
}

func (s *Service) quotes() map[string]model.Stock {
	stocks := s.market.List()
	quotes := make(map[string]model.Stock, len(stocks))
	for _, st := range stocks {
		quotes[st.Ticker] = st
	}
	return quotes
}

func removeTicker(tickers []string, ticker string) []string {
	out := tickers[:0]
	for _, t := range tickers {
		if t != ticker {
			out = append(out, t)
		}
	}
	return out
}

// failOrder moves an order to its Failed terminal state
func (s *Service) failOrder(ctx context.Context, orderID string) model.OrderStatus {
	if err := s.rep.UpdateOrderStatus(ctx, orderID, model.Failed); err != nil {
		log.Errorf("mark order %s failed: %v", orderID, err)
	}
	return model.Failed
}
