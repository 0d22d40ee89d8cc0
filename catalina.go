package catalina

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/indigo-web/catalina/app"
	"github.com/indigo-web/catalina/config"
	"github.com/indigo-web/catalina/internal/metrics"
	"github.com/indigo-web/catalina/internal/server/http"
	"github.com/indigo-web/catalina/internal/server/tcp"
	"github.com/indigo-web/catalina/resource"
	"github.com/indigo-web/catalina/session"
	"github.com/indigo-web/catalina/user"
)

// App wires all the parts of the server together. Dependencies which weren't set
// explicitly are built from the config on Serve.
type App struct {
	cfg      *config.Config
	logger   zerolog.Logger
	hooks    hooks
	listener net.Listener
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	sessions *session.Registry
	users    user.Repository
	static   resource.Provider

	mu     sync.Mutex
	server *tcp.Server
}

// New returns a new App instance. Nil config means config.Default().
func New(cfg *config.Config, logger zerolog.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &App{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		metrics:  metrics.New(registry),
		sessions: session.NewRegistry(),
	}
}

// NotifyOnStart calls the callback at the moment, when the server is started. However,
// it isn't strongly guaranteed that it'll be able to accept new connections immediately
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when the server is down and all the clients
// are already disconnected
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Listener replaces the listener, which otherwise is created on config.NET.Addr.
func (a *App) Listener(listener net.Listener) *App {
	a.listener = listener
	return a
}

// Users replaces the repository loaded from config.Users.Seed.
func (a *App) Users(repo user.Repository) *App {
	a.users = repo
	return a
}

// Static replaces the provider of config.Static.Root.
func (a *App) Static(provider resource.Provider) *App {
	a.static = provider
	return a
}

func (a *App) Sessions() *session.Registry {
	return a.sessions
}

// MetricsHandler exposes collected metrics in the Prometheus format.
func (a *App) MetricsHandler() stdhttp.Handler {
	return promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})
}

// Serve blocks until the context is done or Stop is called. On context cancellation
// the listener is closed, but running connections are served till the end.
func (a *App) Serve(ctx context.Context) error {
	if err := a.init(); err != nil {
		return err
	}

	handlers := app.New(a.cfg, a.logger, a.sessions, a.users, a.static, a.metrics)
	processor := http.NewServer(a.cfg, handlers.Routes(), a.logger, a.metrics)
	server := tcp.NewServer(a.listener, processor.Run)

	a.mu.Lock()
	a.server = server
	a.mu.Unlock()

	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
			a.logger.Info().Msg("shutting down gracefully")
			_ = server.GracefulShutdown()
		case <-stopped:
		}
	}()

	a.logger.Info().Str("addr", a.listener.Addr().String()).Msg("listening")
	callIfNotNil(a.hooks.OnStart)
	err := server.Start()
	callIfNotNil(a.hooks.OnStop)

	if errors.Is(err, tcp.ErrShutdown) {
		return nil
	}

	return err
}

// Stop closes the listener and all the connections immediately.
//
// NOTE: the call isn't blocking. So by that, after the method returned, Serve may
// still be returning
func (a *App) Stop() error {
	a.mu.Lock()
	server := a.server
	a.mu.Unlock()

	if server == nil {
		return nil
	}

	return server.Stop()
}

func (a *App) init() (err error) {
	if a.users == nil {
		users, err := user.LoadSeedFile(a.cfg.Users.Seed, a.cfg.Users.BcryptCost)
		if err != nil {
			return err
		}

		a.users = user.NewInMemory(users...)
		a.logger.Debug().Int("users", len(users)).Msg("users loaded")
	}

	if a.static == nil {
		if a.static, err = resource.Dir(a.cfg.Static.Root); err != nil {
			return err
		}
	}

	if a.listener == nil {
		if a.listener, err = net.Listen("tcp", a.cfg.NET.Addr); err != nil {
			return err
		}
	}

	return nil
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
