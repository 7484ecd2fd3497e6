package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"deposit-address-service/config"
	httpHandler "deposit-address-service/internal/adapter/http/handler"
	"deposit-address-service/internal/adapter/http/middleware"
	amqpBroker "deposit-address-service/internal/adapter/messaging/amqp"
	pgStorage "deposit-address-service/internal/adapter/storage/postgres"
	redisStorage "deposit-address-service/internal/adapter/storage/redis"
	"deposit-address-service/internal/adapter/wallet"
	"deposit-address-service/internal/core/ports"
	"deposit-address-service/internal/service"
	"deposit-address-service/pkg/backoff"
	"deposit-address-service/pkg/logger"
	"deposit-address-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().
		Str("addr", cfg.Server.Addr()).
		Str("queue", cfg.AMQP.Queue).
		Msg("Starting deposit address worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Initialize broker
	broker, err := amqpBroker.Dial(cfg.AMQP, logger.Component(log, "amqp"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
	}
	defer broker.Close()
	if err := broker.Setup(); err != nil {
		log.Fatal().Err(err).Msg("Failed to declare AMQP topology")
	}

	// Initialize repositories
	accountRepo := pgStorage.NewAccountRepo(pool)
	currencyRepo := pgStorage.NewCurrencyRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	addressRepo := pgStorage.NewPaymentAddressRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	retryScheduler := redisStorage.NewRetryScheduler(
		rdb,
		backoff.Policy{Base: cfg.Retry.BaseDelay, Max: cfg.Retry.MaxDelay},
		cfg.Retry.MaxAttempts,
		m,
		logger.Component(log, "retry"),
	)
	enqueueGuard := redisStorage.NewEnqueueGuard(rdb, cfg.Worker.EnqueueCooldown)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Messaging
	publisher := amqpBroker.NewPublisher(broker.Channel)
	defer publisher.Close()
	queue := amqpBroker.NewAssignmentQueue(publisher, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
	notifier := amqpBroker.NewNotifier(publisher, cfg.AMQP.EventsExchange)

	// Wallet gateways
	registry := wallet.NewRegistry(wallet.BreakerSettings{
		MaxFailures: cfg.Worker.BreakerMaxFailures,
		OpenTimeout: cfg.Worker.BreakerOpenTimeout,
	}, logger.Component(log, "wallet"))
	if cfg.HDWallet.Mnemonic != "" {
		params, err := wallet.ParseNetwork(cfg.HDWallet.Network)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid HD wallet network")
		}
		hd, err := wallet.NewHDWallet(cfg.HDWallet.Mnemonic, params)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load HD wallet")
		}
		registry.Register(wallet.GatewayHD, wallet.HDFactory(hd))
	} else {
		log.Warn().Msg("hdwallet.mnemonic not set, hd gateway disabled")
	}
	registry.Register(wallet.GatewayBitcoind, wallet.BitcoindFactory(cfg.Bitcoind))

	// Initialize core services
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
	reporter := service.NewLogReporter(logger.Component(log, "reporter"), m)

	assigner := service.NewAddressService(service.AddressServiceDeps{
		Accounts:      accountRepo,
		Currencies:    currencyRepo,
		Wallets:       walletRepo,
		Addresses:     addressRepo,
		Resolver:      registry,
		Transactor:    transactor,
		EncSvc:        encSvc,
		Retries:       retryScheduler,
		Notifier:      notifier,
		Reporter:      reporter,
		Metrics:       m,
		WalletTimeout: cfg.Worker.WalletTimeout,
		Logger:        logger.Component(log, "assigner"),
	})
	depositSvc := service.NewDepositAddressService(accountRepo, currencyRepo, addressRepo, queue, enqueueGuard, logger.Component(log, "lookup"))
	relay := service.NewRetryRelay(retryScheduler, queue, cfg.Retry.PollInterval, cfg.Retry.BatchSize, cfg.Retry.BaseDelay, logger.Component(log, "relay"))

	// Setup Gin router
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		DepositSvc:     depositSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		LookupLimit:    middleware.RateLimitRule{Limit: cfg.RateLimit.LookupLimit, Window: cfg.RateLimit.LookupWindow},
		HealthCheckers: []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			redisStorage.NewHealthCheck(rdb),
			broker,
		},
		Gatherer: reg,
		Logger:   logger.Component(log, "http"),
	})
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup

	// Consumer: a closed delivery channel is fatal; the process restarts
	// and reconnects.
	consumerCh, err := broker.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open consumer channel")
	}
	consumer := amqpBroker.NewConsumer(consumerCh, amqpBroker.ConsumerConfig{
		Queue:       cfg.AMQP.Queue,
		Tag:         cfg.AMQP.ConsumerTag,
		Prefetch:    cfg.AMQP.Prefetch,
		Concurrency: cfg.AMQP.Concurrency,
	}, m, logger.Component(log, "consumer"))

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumer.Run(ctx, assigner.Handle); err != nil {
			log.Error().Err(err).Msg("consumer exited")
			stop()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		relay.Run(ctx)
	}()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server failed")
			stop()
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	log.Info().Msg("Shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server forced to shutdown")
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warn().Msg("in-flight assignments did not finish before timeout")
	}

	log.Info().Msg("Worker exited")
}
