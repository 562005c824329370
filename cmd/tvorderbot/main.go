package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Spok95/orderbots/internal/bot/tvorder"
	"github.com/Spok95/orderbots/internal/config"
	httpx "github.com/Spok95/orderbots/internal/infra/http"
	"github.com/Spok95/orderbots/internal/infra/logger"
	"github.com/Spok95/orderbots/internal/infra/metrics"
	"github.com/Spok95/orderbots/internal/infra/telegram"
)

func main() {
	cfgPath := flag.String("config", "config/tvorder.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, "tvorder")

	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		gatherer = reg
	}
	srv := httpx.New(cfg.HTTP.Addr, gatherer)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}
	api.Debug = cfg.Telegram.Debug
	log.Info("authorized", "bot", api.Self.UserName)

	recipients := cfg.Recipients()
	if len(recipients) == 0 {
		log.Warn("no admin chat configured, requests will only be logged")
	}

	client := telegram.NewClient(api, log, m)
	bot := tvorder.New(client, log, tvorder.NewStateRepo(), recipients, m)
	lim := telegram.NewLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	runner := telegram.NewRunner(api, bot, log, m, lim, cfg.Telegram.PollTimeout).
		NotifyDrops(client)

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("bot stopped", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
