package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/u16-io/InviteTracker4Discord/bot"
	"github.com/u16-io/InviteTracker4Discord/config"
	"github.com/u16-io/InviteTracker4Discord/db"
	"github.com/u16-io/InviteTracker4Discord/logger"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	lg := logger.Setup(conf.Log.Level, conf.Log.Pretty)

	if conf.JoinLog.Path != "" {
		if err := db.Init(conf.JoinLog.Path); err != nil {
			lg.Fatal().Err(err).Msg("failed to open join log")
		}
		defer db.Close()
		lg.Info().Str("path", conf.JoinLog.Path).Msg("join log enabled")
	}

	metrics := bot.NewMetrics()
	var metricsSrv *http.Server
	if conf.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsSrv = &http.Server{Addr: conf.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				lg.Error().Err(err).Msg("metrics server stopped")
			}
		}()
		lg.Info().Str("addr", conf.Metrics.Addr).Msg("serving metrics")
	}

	b, err := bot.New(lg, metrics)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to create bot")
	}
	if err := b.Start(); err != nil {
		lg.Fatal().Err(err).Msg("failed to start bot")
	}
	lg.Info().Msg("bot is running, press Ctrl-C to exit")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	lg.Info().Msg("shutting down")
	if err := b.Close(); err != nil {
		lg.Warn().Err(err).Msg("failed to close gateway session")
	}
	if metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(ctx); err != nil {
			lg.Warn().Err(err).Msg("failed to stop metrics server")
		}
	}
}
