package main

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"customizer-console/internal/config"
	"customizer-console/internal/httpserver"
	"customizer-console/internal/logger"
	"customizer-console/internal/session"
	"customizer-console/internal/upstream"
)

func main() {
	cfg := config.MustLoad()
	lg := logger.New()
	defer lg.Sync()

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.Timeout,
		WriteTimeout: cfg.Redis.Timeout,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		lg.Fatalw("redis connect failed", "addr", cfg.Redis.Addr, "error", err)
	}

	sessions := session.NewStore(session.NewRedisKV(rdb), cfg.SessionSecret, cfg.SessionTTL)
	api := upstream.New(cfg.UpstreamBaseURL)
	router := httpserver.NewRouter(api, sessions, lg)

	lg.Infow("listening", "addr", cfg.HTTPAddr, "upstream", cfg.UpstreamBaseURL)
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		lg.Fatalw("server stopped", "error", err)
	}
}
