package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"indash/config"
	"indash/pkg/app"
	"indash/pkg/logging"
	"indash/pkg/middleware"
	"indash/router"

	// Dashboard
	dashCtrlImp "indash/pkg/dashboard/controllerImp"

	// Health
	healthCtrlImp "indash/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// 2) Logger
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 3) Executors + services
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a, err := app.New(cfg, logger, reg)
	if err != nil {
		logger.Fatal("build app", zap.Error(err))
	}
	defer func() { _ = a.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4) Reference period (never fatal)
	loadCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	a.Dashboard.LoadReferencePeriod(loadCtx)
	cancel()

	// 5) Controllers
	dCtrl := dashCtrlImp.New(a.Dashboard, a.Irrigation, a.Summary)
	hCtrl := healthCtrlImp.NewHealthCtrl(a.DB, cfg.QueryBackend, func() (int, int) {
		p := a.Dashboard.Period()
		return p.Year, p.Season
	})

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLog(logger))
	r := router.New(e, dCtrl, hCtrl, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	// 7) Start
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port), zap.String("backend", cfg.QueryBackend))
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
