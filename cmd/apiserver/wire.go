package main

import (
	"context"
	"net/http"
	"time"

	"github.com/turtacn/GeoRose/internal/application/diagram"
	"github.com/turtacn/GeoRose/internal/config"
	"github.com/turtacn/GeoRose/internal/infrastructure/database/redis"
	"github.com/turtacn/GeoRose/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/GeoRose/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRose/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/GeoRose/internal/infrastructure/render"
	storageminio "github.com/turtacn/GeoRose/internal/infrastructure/storage/minio"
	httpserver "github.com/turtacn/GeoRose/internal/interfaces/http"
	"github.com/turtacn/GeoRose/internal/interfaces/http/handlers"
	"github.com/turtacn/GeoRose/internal/interfaces/http/middleware"
)

const rateLimitCleanupInterval = 5 * time.Minute

// application holds the assembled HTTP handler and everything that must be
// released on shutdown.
type application struct {
	handler http.Handler
	closers []func() error
	logger  logging.Logger
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("shutdown: release failed", logging.Err(err))
		}
	}
}

// buildApplication wires the diagram service and its optional
// collaborators.  A collaborator that is enabled but cannot be reached is
// logged and left out; diagrams are still served without it.
func buildApplication(ctx context.Context, cfg *config.Config, logger logging.Logger) *application {
	app := &application{logger: logger}
	var (
		opts     []diagram.Option
		checkers []handlers.HealthChecker
	)
	opts = append(opts, diagram.WithDefaults(diagram.Defaults{
		Title:    cfg.Diagram.DefaultTitle,
		BinWidth: cfg.Diagram.DefaultBinWidth,
		Palette:  cfg.Diagram.DefaultPalette,
	}))

	routerCfg := httpserver.RouterConfig{
		Mode:          cfg.Server.Mode,
		Logger:        logger,
		LoggingConfig: middleware.DefaultLoggingConfig(),
		MaxBodySize:   cfg.Server.MaxBodySize,
	}
	if cfg.Server.SlowRequest > 0 {
		routerCfg.LoggingConfig.SlowThreshold = cfg.Server.SlowRequest
	}

	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			logger.Warn("metrics disabled", logging.Err(err))
		} else {
			metrics := prometheus.NewRoseMetrics(collector)
			opts = append(opts, diagram.WithMetrics(metrics))
			routerCfg.HTTPMetrics = metrics
			routerCfg.MetricsHandler = collector.Handler()
			routerCfg.MetricsPath = cfg.Metrics.Path
		}
	}

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(redis.ClientConfig{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}, logger.Named("redis"))
		if err != nil {
			logger.Warn("render cache disabled: redis unavailable", logging.Err(err))
		} else {
			opts = append(opts, diagram.WithRenderCache(redis.NewRenderCache(client, logger.Named("cache"),
				redis.WithPrefix(cfg.Redis.KeyPrefix),
				redis.WithTTL(cfg.Redis.TTL),
			)))
			checkers = append(checkers, redisHealth(client))
			app.closers = append(app.closers, client.Close)
		}
	}

	if cfg.MinIO.Enabled {
		client, err := storageminio.NewMinIOClient(storageminio.ClientConfig{
			Endpoint:      cfg.MinIO.Endpoint,
			AccessKey:     cfg.MinIO.AccessKey,
			SecretKey:     cfg.MinIO.SecretKey,
			UseSSL:        cfg.MinIO.UseSSL,
			Region:        cfg.MinIO.Region,
			Bucket:        cfg.MinIO.Bucket,
			PresignExpiry: cfg.MinIO.PresignExpiry,
		}, logger.Named("minio"))
		if err != nil {
			logger.Warn("artifact archive disabled: minio unavailable", logging.Err(err))
		} else {
			opts = append(opts, diagram.WithArchive(storageminio.NewDiagramArchive(client, logger.Named("archive"))))
			checkers = append(checkers, minioHealth(client))
		}
	}

	if cfg.Kafka.Enabled {
		if publisher, checker, closers, err := buildEventPublisher(ctx, cfg.Kafka, logger.Named("kafka")); err != nil {
			logger.Warn("diagram events disabled", logging.Err(err))
		} else {
			opts = append(opts, diagram.WithEventPublisher(publisher))
			checkers = append(checkers, checker)
			app.closers = append(app.closers, closers...)
		}
	}

	renderer := render.NewRenderer(render.Options{
		WidthInches:  cfg.Diagram.WidthInches,
		HeightInches: cfg.Diagram.HeightInches,
		DPI:          cfg.Diagram.DPI,
	}, logger.Named("render"))
	svc := diagram.NewService(renderer, logger.Named("diagram"), opts...)

	routerCfg.DiagramHandler = handlers.NewDiagramHandler(svc, logger.Named("http"))
	routerCfg.HealthHandler = handlers.NewHealthHandler(version, checkers...)

	if len(cfg.Server.CORSOrigins) > 0 {
		cors := middleware.DefaultCORSConfig()
		cors.AllowedOrigins = cfg.Server.CORSOrigins
		routerCfg.CORS = &cors
	}
	if cfg.Server.RateLimitRPS > 0 {
		limiter := middleware.NewTokenBucketLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, rateLimitCleanupInterval)
		routerCfg.RateLimiter = limiter
		app.closers = append(app.closers, func() error {
			limiter.Stop()
			return nil
		})
	}

	app.handler = httpserver.NewRouter(routerCfg)
	return app
}

// buildEventPublisher creates the producer, makes sure the topic exists and
// returns the publisher with its readiness probe.
func buildEventPublisher(ctx context.Context, cfg config.KafkaConfig, logger logging.Logger) (*kafka.DiagramEventPublisher, handlers.HealthChecker, []func() error, error) {
	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.Brokers,
		Acks:         acksName(cfg.RequiredAcks),
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	topic := cfg.Topic
	if topic == "" {
		topic = kafka.TopicDiagramGenerated
	}
	topics, err := kafka.NewTopicManager(cfg.Brokers, logger)
	if err != nil {
		_ = producer.Close()
		return nil, nil, nil, err
	}
	for _, tc := range kafka.DefaultTopics(topic) {
		if err := topics.EnsureTopic(ctx, tc); err != nil {
			logger.Warn("topic not created", logging.String("topic", tc.Name), logging.Err(err))
		}
	}

	return kafka.NewDiagramEventPublisher(producer, topic),
		kafkaHealth(topics, topic),
		[]func() error{producer.Close, topics.Close},
		nil
}

//Personal.AI order the ending
