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

	"github.com/charmbracelet/log"

	"abvt/config"
	"abvt/network"
	"abvt/session"
)

func main() {
	envFile := flag.String("env", ".env", "optional environment file")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "abvt",
	})

	if err := config.InitConfig(*envFile); err != nil {
		logger.Fatal("Error loading environment variables", "err", err)
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", "err", err)
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("Unknown log level, using info", "level", cfg.LogLevel)
	}

	logger.Info("Initializing ABVT",
		"addr", cfg.Addr,
		"agents", cfg.AgentCount,
		"dimX", cfg.Params().DimX(),
		"dimY", cfg.Params().DimY(),
		"tick", cfg.TickInterval,
	)

	m := session.NewManager(cfg.Params(),
		session.WithTickInterval(cfg.TickInterval),
		session.WithLogger(logger),
	)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           network.Routes(m, cfg.StaticDir, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down", "sessions", m.Count())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
