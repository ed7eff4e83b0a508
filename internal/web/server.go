// Package web exposes the quote, history and trading surface to the
// presentation layer as JSON over HTTP plus a websocket quote stream
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/chucky-1/papertrade/internal/market"
	"github.com/chucky-1/papertrade/internal/model"
	"github.com/chucky-1/papertrade/internal/portfolio"
	"github.com/chucky-1/papertrade/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server serves the presentation layer
type Server struct {
	svc  *service.Service
	mkt  *market.Market
	hub  *Hub
	http *http.Server
}

// NewServer is constructor
func NewServer(addr string, svc *service.Service, mkt *market.Market, hub *Hub) *Server {
	s := &Server{svc: svc, mkt: mkt, hub: hub}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/stocks", s.stocks)
	mux.HandleFunc("/api/stocks/", s.stockDetail)
	mux.HandleFunc("/api/history", s.history)
	mux.HandleFunc("/api/signup", s.signUp)
	mux.HandleFunc("/api/signin", s.signIn)
	mux.HandleFunc("/api/signout", s.signOut)
	mux.HandleFunc("/api/portfolio", s.portfolio)
	mux.HandleFunc("/api/funds", s.funds)
	mux.HandleFunc("/api/orders", s.orders)
	mux.HandleFunc("/api/watchlist", s.watchlist)
	mux.HandleFunc("/api/watchlist/", s.watchlistRemove)
	mux.HandleFunc("/ws", s.stream)

	s.http = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Run blocks serving until Shutdown
func (s *Server) Run() error {
	log.Infof("http server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener and closes the quote stream
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.http.Shutdown(ctx)
}

func (s *Server) stocks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.mkt.List())
}

func (s *Server) stockDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ticker := strings.TrimPrefix(r.URL.Path, "/api/stocks/")
	detail, ok := s.mkt.Detail(ticker)
	if !ok {
		writeError(w, service.ErrStockNotFound)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	ticker := q.Get("ticker")
	timeframe := model.Timeframe(q.Get("timeframe"))
	resolution := model.Resolution(q.Get("resolution"))
	if timeframe == "" {
		timeframe = model.Timeframe1D
	}
	if resolution == "" {
		resolution = model.Resolution1Min
	}
	points := s.mkt.History(ticker, timeframe, resolution)
	if points == nil {
		points = []model.PricePoint{}
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}
	u, err := s.svc.SignUp(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}
	u, err := s.svc.SignIn(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) signOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.svc.SignOut(userID(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) portfolio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p, err := s.svc.Portfolio(userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) funds(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if !decode(w, r, &req) {
		return
	}
	p, err := s.svc.ModifyFunds(r.Context(), userID(r), req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) orders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		orders, err := s.svc.Orders(r.Context(), userID(r))
		if err != nil {
			writeError(w, err)
			return
		}
		if orders == nil {
			orders = []model.Order{}
		}
		writeJSON(w, http.StatusOK, orders)
	case http.MethodPost:
		var req struct {
			Ticker string          `json:"ticker"`
			Shares float64         `json:"shares"`
			Type   model.OrderType `json:"type"`
		}
		if !decode(w, r, &req) {
			return
		}
		order, err := s.svc.ExecuteOrder(r.Context(), userID(r), req.Ticker, req.Shares, req.Type)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) watchlist(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tickers, err := s.svc.Watchlist(userID(r))
		if err != nil {
			writeError(w, err)
			return
		}
		if tickers == nil {
			tickers = []string{}
		}
		writeJSON(w, http.StatusOK, tickers)
	case http.MethodPost:
		var req struct {
			Ticker string `json:"ticker"`
		}
		if !decode(w, r, &req) {
			return
		}
		if err := s.svc.AddToWatchlist(r.Context(), userID(r), req.Ticker); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) watchlistRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ticker := strings.TrimPrefix(r.URL.Path, "/api/watchlist/")
	if err := s.svc.RemoveFromWatchlist(r.Context(), userID(r), ticker); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("websocket upgrade: %v", err)
		return
	}
	conn.WriteJSON(s.mkt.List())
	s.hub.add(conn)
}

func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error(err)
	}
}

// writeError maps expected violations to client statuses with their
// human-readable reason; anything else is a storage failure
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrNoSession):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrStockNotFound), errors.Is(err, service.ErrUnknownUser):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUserExists):
		status = http.StatusConflict
	case errors.Is(err, portfolio.ErrInsufficientFunds),
		errors.Is(err, portfolio.ErrInsufficientShares),
		errors.Is(err, portfolio.ErrInvalidShares),
		errors.Is(err, portfolio.ErrInvalidAmount):
		status = http.StatusUnprocessableEntity
	default:
		log.Error(err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "storage failure, try again"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
