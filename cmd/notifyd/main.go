// Command notifyd runs the notification engine as a standalone daemon: it
// binds the engine to a fixed identity, serves the HTTP API (including the
// SSE stream) and wires the transport and persistence backends selected
// through the environment.
//
// Backends:
//
//	NOTIFY_TRANSPORT  memory | redis     (default memory)
//	NOTIFY_STORAGE    memory | postgres | mongo  (default memory)
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/shopstack/notifykit/pkg/config"
	"github.com/shopstack/notifykit/pkg/httpapi"
	"github.com/shopstack/notifykit/pkg/httpserver"
	"github.com/shopstack/notifykit/pkg/logger"
	"github.com/shopstack/notifykit/pkg/mongo"
	"github.com/shopstack/notifykit/pkg/mongostore"
	"github.com/shopstack/notifykit/pkg/notifier"
	"github.com/shopstack/notifykit/pkg/pg"
	"github.com/shopstack/notifykit/pkg/pgstore"
	"github.com/shopstack/notifykit/pkg/redis"
	"github.com/shopstack/notifykit/pkg/transport"
)

type appConfig struct {
	LogLevel  slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat logger.Format `env:"LOG_FORMAT" envDefault:"json"`

	Identity  string `env:"NOTIFY_IDENTITY,required"`
	Transport string `env:"NOTIFY_TRANSPORT" envDefault:"memory"`
	Storage   string `env:"NOTIFY_STORAGE" envDefault:"memory"`

	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"shop"`

	HTTP httpserver.Config
}

func main() {
	if err := run(); err != nil {
		slog.Error("notifyd exited", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithLevel(cfg.LogLevel),
		logger.WithFormat(cfg.LogFormat),
		logger.WithAttr(slog.String("service", "notifyd")),
	)
	logger.SetAsDefault(log)

	var checks []func(context.Context) error

	tp, checks, err := buildTransport(ctx, cfg, log, checks)
	if err != nil {
		return err
	}

	engineOpts := []notifier.Option{notifier.WithLogger(log)}
	engineOpts, checks, err = buildStorage(ctx, cfg, log, engineOpts, checks)
	if err != nil {
		return err
	}

	engine := notifier.NewEngine(tp, engineOpts...)
	defer engine.Close()

	go func() {
		if err := engine.Run(ctx, notifier.StaticIdentity(cfg.Identity)); err != nil && ctx.Err() == nil {
			log.ErrorContext(ctx, "Engine stopped", logger.Error(err))
		}
	}()

	r := chi.NewRouter()
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log, checks...))
	r.Mount("/api/notify", httpapi.Router(engine, log))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

func buildTransport(ctx context.Context, cfg appConfig, log *slog.Logger, checks []func(context.Context) error) (notifier.Transport, []func(context.Context) error, error) {
	switch cfg.Transport {
	case "memory":
		return transport.NewMemory(), checks, nil

	case "redis":
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		checks = append(checks, redis.Healthcheck(client))
		return transport.NewRedis(client, transport.WithRedisLogger(log)), checks, nil

	default:
		return nil, nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

func buildStorage(ctx context.Context, cfg appConfig, log *slog.Logger, opts []notifier.Option, checks []func(context.Context) error) ([]notifier.Option, []func(context.Context) error, error) {
	switch cfg.Storage {
	case "memory":
		storage := notifier.NewMemoryStorage()
		opts = append(opts, notifier.WithStorage(storage), notifier.WithPreferenceStorage(storage))
		return opts, checks, nil

	case "postgres":
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
			return nil, nil, err
		}
		storage := pgstore.New(pool)
		checks = append(checks, pg.Healthcheck(pool))
		opts = append(opts, notifier.WithStorage(storage), notifier.WithPreferenceStorage(storage))
		return opts, checks, nil

	case "mongo":
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return nil, nil, err
		}
		client, err := mongo.Connect(ctx, mongoCfg)
		if err != nil {
			return nil, nil, err
		}
		storage := mongostore.New(client.Database(cfg.MongoDatabase))
		if err := storage.EnsureIndexes(ctx); err != nil {
			return nil, nil, err
		}
		checks = append(checks, mongo.Healthcheck(client))
		opts = append(opts, notifier.WithStorage(storage), notifier.WithPreferenceStorage(storage))
		return opts, checks, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}
