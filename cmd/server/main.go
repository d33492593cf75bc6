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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jaminalder/tower-siege-chess/internal/app"
	"github.com/jaminalder/tower-siege-chess/internal/config"
	"github.com/jaminalder/tower-siege-chess/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	// Flags override the environment.
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "master seed for terrain and combat (0 = random)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	flag.BoolVar(&cfg.PrettyLogs, "pretty", cfg.PrettyLogs, "human readable console logs")
	flag.StringVar(&cfg.LayoutFile, "layout", cfg.LayoutFile, "YAML board layout used for every new game")
	flag.Parse()

	if err := setupLogger(cfg); err != nil {
		log.Fatal().Err(err).Msg("logger")
	}

	seed, err := cfg.ResolveSeed()
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	opts := []app.Option{app.WithSeed(seed), app.WithLogger(log.Logger)}
	if cfg.LayoutFile != "" {
		layout, err := config.LoadLayout(cfg.LayoutFile)
		if err != nil {
			log.Fatal().Err(err).Msg("layout")
		}
		gameOpts, err := layout.Options()
		if err != nil {
			log.Fatal().Err(err).Msg("layout")
		}
		opts = append(opts, app.WithGameOptions(gameOpts...))
		log.Info().Msgf("using layout %s with %d units", cfg.LayoutFile, len(layout.Units))
	}

	svc := app.NewService(opts...)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           web.NewServer(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Uint64("seed", seed).Msgf("HTTP listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("listen")
	}
}

func setupLogger(cfg config.Config) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	if cfg.PrettyLogs {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return nil
}
