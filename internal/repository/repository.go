// Package repository stores users, portfolios, orders and watchlists in postgres
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/chucky-1/papertrade/internal/model"
)

// Repository works with postgres
type Repository struct {
	conn *pgx.Conn
}

// NewRepository is constructor
func NewRepository(conn *pgx.Conn) *Repository {
	return &Repository{conn: conn}
}

// CreateUser inserts a new account and returns it
func (r *Repository) CreateUser(ctx context.Context, email string) (model.User, error) {
	u := model.User{ID: uuid.NewString(), Email: email, CreatedAt: time.Now()}
	_, err := r.conn.Exec(ctx, "INSERT INTO users (id, email, created_at) VALUES ($1, $2, $3)",
		u.ID, u.Email, u.CreatedAt)
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// GetUserByEmail looks an account up. A missing account is reported through
// the bool, not an error
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (model.User, bool, error) {
	var u model.User
	err := r.conn.QueryRow(ctx, "SELECT id, email, created_at FROM users WHERE email = $1", email).
		Scan(&u.ID, &u.Email, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, err
	}
	return u, true, nil
}

// CreatePortfolio inserts the initial portfolio row and its holdings
func (r *Repository) CreatePortfolio(ctx context.Context, userID string, p model.Portfolio) error {
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "INSERT INTO portfolios (user_id, balance, total_value, total_profit, total_profit_percent) "+
		"VALUES ($1, $2, $3, $4, $5)",
		userID, p.Balance, p.TotalValue, p.TotalProfit, p.TotalProfitPercent)
	if err != nil {
		return err
	}
	for _, h := range p.Holdings {
		_, err = tx.Exec(ctx, "INSERT INTO holdings (user_id, ticker, shares, average_cost) VALUES ($1, $2, $3, $4)",
			userID, h.Ticker, h.Shares, h.AverageCost)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetPortfolio loads the portfolio row and holdings for one user
func (r *Repository) GetPortfolio(ctx context.Context, userID string) (model.Portfolio, bool, error) {
	var p model.Portfolio
	err := r.conn.QueryRow(ctx, "SELECT balance, total_value, total_profit, total_profit_percent "+
		"FROM portfolios WHERE user_id = $1", userID).
		Scan(&p.Balance, &p.TotalValue, &p.TotalProfit, &p.TotalProfitPercent)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Portfolio{}, false, nil
	}
	if err != nil {
		return model.Portfolio{}, false, err
	}

	rows, err := r.conn.Query(ctx, "SELECT ticker, shares, average_cost FROM holdings WHERE user_id = $1", userID)
	if err != nil {
		return model.Portfolio{}, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var h model.Holding
		if err = rows.Scan(&h.Ticker, &h.Shares, &h.AverageCost); err != nil {
			return model.Portfolio{}, false, err
		}
		p.Holdings = append(p.Holdings, h)
	}
	if err = rows.Err(); err != nil {
		return model.Portfolio{}, false, err
	}
	return p, true, nil
}

// SavePortfolio replaces the stored portfolio snapshot in one transaction so
// a failed write never leaves balance and holdings disagreeing
func (r *Repository) SavePortfolio(ctx context.Context, userID string, p model.Portfolio) error {
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "UPDATE portfolios SET balance = $1, total_value = $2, total_profit = $3, "+
		"total_profit_percent = $4 WHERE user_id = $5",
		p.Balance, p.TotalValue, p.TotalProfit, p.TotalProfitPercent, userID)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, "DELETE FROM holdings WHERE user_id = $1", userID)
	if err != nil {
		return err
	}
	for _, h := range p.Holdings {
		_, err = tx.Exec(ctx, "INSERT INTO holdings (user_id, ticker, shares, average_cost) VALUES ($1, $2, $3, $4)",
			userID, h.Ticker, h.Shares, h.AverageCost)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// InsertOrder appends one order row
func (r *Repository) InsertOrder(ctx context.Context, order model.Order) error {
	_, err := r.conn.Exec(ctx, "INSERT INTO orders (id, user_id, ticker, shares, price, type, status, ts) "+
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		order.ID, order.UserID, order.Ticker, order.Shares, order.Price, order.Type, order.Status, order.Timestamp)
	return err
}

// UpdateOrderStatus moves an order to its terminal state
func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	_, err := r.conn.Exec(ctx, "UPDATE orders SET status = $1 WHERE id = $2", status, orderID)
	return err
}

// GetOrders returns a user's order log, newest first
func (r *Repository) GetOrders(ctx context.Context, userID string) ([]model.Order, error) {
	rows, err := r.conn.Query(ctx, "SELECT id, user_id, ticker, shares, price, type, status, ts "+
		"FROM orders WHERE user_id = $1 ORDER BY ts DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err = rows.Scan(&o.ID, &o.UserID, &o.Ticker, &o.Shares, &o.Price, &o.Type, &o.Status, &o.Timestamp); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// AddWatchlist inserts one watchlist row; duplicates are ignored
func (r *Repository) AddWatchlist(ctx context.Context, userID, ticker string) error {
	_, err := r.conn.Exec(ctx, "INSERT INTO watchlist_items (user_id, ticker) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		userID, ticker)
	return err
}

// RemoveWatchlist deletes one watchlist row
func (r *Repository) RemoveWatchlist(ctx context.Context, userID, ticker string) error {
	_, err := r.conn.Exec(ctx, "DELETE FROM watchlist_items WHERE user_id = $1 AND ticker = $2", userID, ticker)
	return err
}

// GetWatchlist returns a user's watched tickers
func (r *Repository) GetWatchlist(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.conn.Query(ctx, "SELECT ticker FROM watchlist_items WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err = rows.Scan(&t); err != nil {
			return nil, err
		}
		tickers = append(tickers, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tickers, nil
}
