package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/indigo-web/catalina"
	"github.com/indigo-web/catalina/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "catalina:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a JSON config file")
	addr := flag.String("addr", "", "address to listen on, overrides the config")
	flag.Parse()

	cfg := config.Default()
	if len(*configPath) > 0 {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	if len(*addr) > 0 {
		cfg.NET.Addr = *addr
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := catalina.New(cfg, logger)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.Serve(ctx)
	})

	if len(cfg.Metrics.Addr) > 0 {
		g.Go(func() error {
			return serveMetrics(ctx, cfg.Metrics, app.MetricsHandler(), logger)
		})
	}

	return g.Wait()
}

func newLogger(cfg config.Log) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("log level: %w", err)
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger(), nil
}

func serveMetrics(ctx context.Context, cfg config.Metrics, handler stdhttp.Handler, logger zerolog.Logger) error {
	mux := stdhttp.NewServeMux()
	mux.Handle(cfg.Path, handler)
	server := &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", cfg.Addr).Str("path", cfg.Path).Msg("serving metrics")
	if err := server.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}

	return nil
}
