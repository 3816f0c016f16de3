// Package main Hotel Book API
//
// @title           Hotel Book API
// @version         1.0
// @description     Локальный учёт клиентов столовой, абонементов на питание и платежей

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      127.0.0.1:8080
// @BasePath  /api/v1
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/saranzafar/hotel-book/internal/app/hotelbook"
	"github.com/saranzafar/hotel-book/internal/config"
	"github.com/saranzafar/hotel-book/internal/lib/logger"
	"github.com/saranzafar/hotel-book/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env, os.Stdout)

	log.Info("starting hotel-book", slog.String("env", cfg.Env), slog.String("driver", cfg.Driver))
	log.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := hotelbook.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	log.Info("hotel-book stopped gracefully")
}
