package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/samuelordialeseya/fruit-pos/configs"
	"github.com/samuelordialeseya/fruit-pos/internal/adapter/cache"
	"github.com/samuelordialeseya/fruit-pos/internal/adapter/http"
	"github.com/samuelordialeseya/fruit-pos/internal/adapter/kafka"
	"github.com/samuelordialeseya/fruit-pos/internal/adapter/kv"
	"github.com/samuelordialeseya/fruit-pos/internal/adapter/queue"
	"github.com/samuelordialeseya/fruit-pos/internal/logging"
	"github.com/samuelordialeseya/fruit-pos/internal/usecase"
)

type App struct {
	Router *gin.Engine
	POS    *usecase.POS
	Log    *slog.Logger
}

// closers run in reverse order of acquisition
type closers []func()

func (c *closers) add(f func()) { *c = append(*c, f) }

func (c closers) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// InitWithConfig wires every adapter around one POS. Background consumers
// stop when ctx is cancelled.
func InitWithConfig(ctx context.Context, cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)
	if logging.ParseLevel(cfg.App.LogLevel) != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	var cl closers
	fail := func(err error) (*App, func(), error) {
		cl.run()
		return nil, nil, err
	}

	// init redis (store and/or idempotency)
	var rdb *redis.Client
	if cfg.Store.Driver == "redis" || cfg.Idempotency.Driver == "redis" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cl.add(func() { _ = rdb.Close() })
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fail(fmt.Errorf("redis ping: %w", err))
		}
	}

	store, err := openStore(ctx, cfg, rdb, &cl)
	if err != nil {
		return fail(err)
	}

	var idem usecase.IdempotencyStore = cache.NewMemoryIdempotencyStore(cfg.Idempotency.TTL)
	if cfg.Idempotency.Driver == "redis" {
		idem = cache.NewRedisIdempotencyStore(rdb, cfg.Store.KeyPrefix, cfg.Idempotency.TTL)
	}

	// init rabbitmq
	var conn *amqp091.Connection
	var events usecase.EventPublisher
	if cfg.Rabbit.Enabled {
		conn, err = amqp091.Dial(cfg.Rabbit.URL)
		if err != nil {
			return fail(fmt.Errorf("rabbitmq dial: %w", err))
		}
		cl.add(func() { _ = conn.Close() })
		ch, err := conn.Channel()
		if err != nil {
			return fail(fmt.Errorf("rabbitmq channel: %w", err))
		}
		producer, err := queue.NewRabbitPublisher(ch, cfg.Rabbit.Exchange)
		if err != nil {
			return fail(err)
		}
		events = producer
	}

	policy, err := usecase.UnitPolicyByName(cfg.Pricing.UnitPolicy)
	if err != nil {
		return fail(err)
	}

	pos, err := usecase.NewPOS(ctx, usecase.Options{
		Store:             store,
		Events:            events,
		Idempotency:       idem,
		Logger:            logging.New("pos"),
		Location:          cfg.Location(),
		UnitPolicy:        policy,
		WalkInLabel:       cfg.Ledger.WalkInLabel,
		NoticeTTL:         cfg.Notice.TTL,
		CheckoutNoticeTTL: cfg.Notice.CheckoutTTL,
		FoldPreOrderCase:  cfg.PreOrder.CaseInsensitiveMerge,
	})
	if err != nil {
		return fail(fmt.Errorf("load pos state: %w", err))
	}

	dispatch := usecase.NewDispatchStatusHandler(pos, logging.New("dispatch"))

	// register queue-handler
	if conn != nil && cfg.Rabbit.DispatchQueue != "" {
		if err := setupQueue(ctx, cfg, conn, dispatch); err != nil {
			return fail(err)
		}
	}

	// register kafka-listener
	if cfg.Kafka.Enabled {
		if err := setupKafkaListener(ctx, cfg, dispatch, &cl); err != nil {
			return fail(err)
		}
	}

	h := http.NewHandler(pos, cfg.HTTP.HandlerTimeout)
	router := http.NewRouter(h, logging.New("http"))

	logger.Info("pos-api ready",
		"store", cfg.Store.Driver,
		"idempotency", cfg.Idempotency.Driver,
		"rabbitmq", cfg.Rabbit.Enabled,
		"kafka", cfg.Kafka.Enabled,
	)
	return &App{Router: router, POS: pos, Log: logger}, cl.run, nil
}

func openStore(ctx context.Context, cfg configs.Config, rdb *redis.Client, cl *closers) (usecase.KVStore, error) {
	var store usecase.KVStore
	switch cfg.Store.Driver {
	case "redis":
		store = kv.NewRedisStore(rdb, cfg.Store.KeyPrefix)
	case "sql":
		db, err := kv.OpenGorm(cfg.SQL.Dialect, cfg.SQL.DSN)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.SQL.Dialect, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		cl.add(func() { _ = sqlDB.Close() })
		if cfg.SQL.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.SQL.MaxOpenConns)
			sqlDB.SetMaxIdleConns(cfg.SQL.MaxOpenConns)
		}
		sqlDB.SetConnMaxLifetime(cfg.SQL.ConnMaxLifetime)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = sqlDB.PingContext(pingCtx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%s ping: %w", cfg.SQL.Dialect, err)
		}
		gs, err := kv.NewGormStore(db)
		if err != nil {
			return nil, err
		}
		store = gs
	default:
		store = kv.NewMemoryStore()
	}
	return kv.NewInstrumented(store, cfg.Store.Driver), nil
}

func setupQueue(ctx context.Context, cfg configs.Config, conn *amqp091.Connection, h *usecase.DispatchStatusHandler) error {
	// consumers get their own channel
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq consumer channel: %w", err)
	}
	router := queue.NewRouter(ch,
		queue.WithPrefetch(cfg.Rabbit.Prefetch),
		queue.WithLogger(logging.New("rmq-router")),
	)
	router.Register(cfg.Rabbit.DispatchQueue, cfg.Rabbit.Exchange, cfg.Rabbit.DispatchKey,
		queue.JSONHandler[usecase.DispatchStatusMsg]{HandleFunc: h.Handle})
	return router.Start(ctx)
}

func setupKafkaListener(ctx context.Context, cfg configs.Config, h *usecase.DispatchStatusHandler, cl *closers) error {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.App.Name)
	if err != nil {
		return fmt.Errorf("kafka group: %w", err)
	}
	cl.add(func() { _ = grp.Close() })

	log := logging.New("kafka")
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.Topic}, h.Handle, log)
	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error("kafka consumer stopped", "err", err)
		}
	}()
	return nil
}
