package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/rentadmin/modules/realtime"
	"github.com/dmitrymomot/rentadmin/pkg/clientip"
	"github.com/dmitrymomot/rentadmin/pkg/config"
	"github.com/dmitrymomot/rentadmin/pkg/events"
	"github.com/dmitrymomot/rentadmin/pkg/httpserver"
	"github.com/dmitrymomot/rentadmin/pkg/live"
	"github.com/dmitrymomot/rentadmin/pkg/logger"
	"github.com/dmitrymomot/rentadmin/pkg/mongo"
	"github.com/dmitrymomot/rentadmin/pkg/notifications"
	"github.com/dmitrymomot/rentadmin/pkg/opensearch"
	"github.com/dmitrymomot/rentadmin/pkg/principal"
	"github.com/dmitrymomot/rentadmin/pkg/ratelimiter"
	"github.com/dmitrymomot/rentadmin/pkg/redis"
	"github.com/dmitrymomot/rentadmin/pkg/requestid"
)

const healthTimeout = 3 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Usage:       "Run the HTTP server",
		Description: "Serves the notification stream, inbox endpoints and telemetry ingestion",
		Action:      runServe,
	}
}

type serveConfig struct {
	app        AppConfig
	http       httpserver.Config
	mongo      mongo.Config
	redis      redis.Config
	opensearch opensearch.Config
	auth       principal.Config
	live       live.Config
	events     events.Config
	rateLimit  ratelimiter.Config
}

func loadServeConfig() (serveConfig, error) {
	var cfg serveConfig
	app, err := loadAppConfig()
	if err != nil {
		return cfg, err
	}
	cfg.app = app
	err = errors.Join(
		config.Load(&cfg.http),
		config.Load(&cfg.mongo),
		config.Load(&cfg.redis),
		config.Load(&cfg.opensearch),
		config.Load(&cfg.auth),
		config.Load(&cfg.live),
		config.Load(&cfg.events),
		config.Load(&cfg.rateLimit),
	)
	return cfg, err
}

func runServe(c *cli.Context) error {
	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}
	log := setupLogging(cfg.app)
	ctx := c.Context

	db, err := mongo.Open(ctx, cfg.mongo)
	if err != nil {
		return err
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	checks := []httpserver.Check{{Name: "mongo", Fn: mongo.Healthcheck(db.Client())}}

	notifStore := notifications.NewMongoStorage(db)
	eventStore := events.NewMongoStorage(db, cfg.events.Collection)
	if err := errors.Join(notifStore.EnsureIndexes(ctx), eventStore.EnsureIndexes(ctx)); err != nil {
		log.WarnContext(ctx, "index creation failed", logger.Error(err))
	}
	eventTargets := []events.Storage{eventStore}

	if cfg.opensearch.Enabled() {
		client, err := opensearch.New(ctx, cfg.opensearch)
		if err != nil {
			// The mirror is optional; run without it.
			log.WarnContext(ctx, "opensearch unavailable, event mirror disabled", logger.Error(err))
		} else {
			eventTargets = append(eventTargets, events.NewOpenSearchStorage(client, cfg.events.OpenSearchIndex))
			checks = append(checks, httpserver.Check{Name: "opensearch", Fn: opensearch.Healthcheck(client)})
		}
	}

	resolvers := make([]principal.Resolver, 0, 2)
	if cfg.auth.JWTSecret != "" {
		jwtRes, err := principal.NewJWTResolver(cfg.auth.JWTSecret,
			principal.WithIssuer(cfg.auth.JWTIssuer),
			principal.WithExtractor(principal.FirstOf(
				principal.BearerTokenExtractor,
				principal.CookieTokenExtractor(cfg.auth.TokenCookie),
			)),
		)
		if err != nil {
			return err
		}
		resolvers = append(resolvers, jwtRes)
	}
	if cfg.redis.Enabled() {
		rdb, err := redis.Connect(ctx, cfg.redis)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		resolvers = append(resolvers, principal.NewRedisSessionResolver(rdb, cfg.auth.SessionCookie, cfg.auth.SessionPrefix))
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(rdb)})
	}
	if len(resolvers) == 0 {
		log.WarnContext(ctx, "no credential source configured, every request is anonymous")
	}

	registry := live.New[notifications.Payload](append(cfg.live.Options(), live.WithLogger(log))...)
	dispatcher := notifications.NewDispatcher(notifStore, registry, notifications.WithDispatcherLogger(log))
	eventLog := events.NewLogger(events.NewMultiStorage(eventTargets...), append(cfg.events.Options(),
		events.WithLogger(log),
		events.WithRequestIDExtractor(requestid.Lookup),
		events.WithIPExtractor(clientip.FromContext),
		events.WithUserIDExtractor(principal.UserID),
	)...)

	limiterStore := ratelimiter.NewMemoryStore()
	defer limiterStore.Close()
	eventLimiter, err := ratelimiter.NewBucket(limiterStore, cfg.rateLimit)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		middleware.Recoverer,
		clientip.New(cfg.app.TrustedProxyHeaders...).Middleware,
		principal.Middleware(principal.NewChain(resolvers...), log),
	)
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, healthTimeout, checks...))
	r.Mount("/", realtime.Router(realtime.RouterOptions{
		Stream: realtime.NewStreamHandler(registry, dispatcher,
			realtime.WithStreamLogger(log),
			realtime.WithHeartbeat(cfg.live.Heartbeat),
			realtime.WithBufferSize(cfg.live.StreamBufferSize),
		),
		Events: realtime.NewEventsHandler(eventLog, log, realtime.WithRateLimit(eventLimiter)),
		Inbox:  realtime.NewInboxHandler(dispatcher, log),
	}))

	srv := httpserver.NewFromConfig(cfg.http,
		httpserver.WithLogger(log),
		httpserver.WithDrainHook(func(ctx context.Context, _ *slog.Logger) error {
			return registry.Shutdown(ctx)
		}),
		httpserver.WithStopHook(func(ctx context.Context, log *slog.Logger) error {
			stats := eventLog.Stats()
			log.InfoContext(ctx, "event logger draining",
				slog.Uint64("attempts", stats.Attempts),
				slog.Uint64("failures", stats.Failures),
			)
			return eventLog.Close(ctx)
		}),
	)

	return srv.Run(ctx, r)
}
