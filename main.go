package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v4"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/chucky-1/papertrade/internal/config"
	"github.com/chucky-1/papertrade/internal/market"
	"github.com/chucky-1/papertrade/internal/model"
	"github.com/chucky-1/papertrade/internal/repository"
	"github.com/chucky-1/papertrade/internal/service"
	"github.com/chucky-1/papertrade/internal/web"
)

func main() {
	// Configuration
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, using environment")
	}
	cfg := new(config.Config)
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("%v", err)
	}

	// Postgres
	url := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		cfg.UsernamePostgres, cfg.PasswordPostgres, cfg.HostPostgres, cfg.PortPostgres, cfg.DBNamePostgres)
	conn, err := pgx.Connect(context.Background(), url)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer func(conn *pgx.Conn, ctx context.Context) {
		if err = conn.Close(ctx); err != nil {
			log.Error(err)
		}
	}(conn, context.Background())

	// Redis cache
	hostAndPort := fmt.Sprint(cfg.HostRedisCache, ":", cfg.PortRedisCache)
	ring := redis.NewRing(&redis.RingOptions{Addrs: map[string]string{cfg.ServerRedisCache: hostAndPort}})
	c := cache.New(&cache.Options{Redis: ring})

	cch := repository.NewCache(c)
	rep := repository.NewRepository(conn)

	// Market: publish every refresh cycle to the quote cache and websocket hub
	hub := web.NewHub()
	cacheWriter := market.SnapshotHandlerFunc(func(stocks []model.Stock) {
		for _, stock := range stocks {
			if err := cch.SetQuote(stock); err != nil {
				log.Error(err)
			}
		}
	})
	mkt := market.NewMarket(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now,
		cfg.RefreshInterval, cacheWriter, hub)

	svc := service.NewService(rep, mkt, cch, cfg.OrderDelay, cfg.StartingBalance)

	addr := fmt.Sprint(cfg.HostHTTP, ":", cfg.PortHTTP)
	srv := web.NewServer(addr, svc, mkt, hub)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mkt.Start(ctx)
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	mkt.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err)
	}
}
