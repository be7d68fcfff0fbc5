package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auction "auction-rooms/internal/auctionService"
	"auction-rooms/internal/clock"
	"auction-rooms/internal/config"
	"auction-rooms/internal/events"
	"auction-rooms/internal/identity"
	"auction-rooms/internal/repository"
	"auction-rooms/internal/repository/mongostore"
	"auction-rooms/internal/server"
	"auction-rooms/internal/supervisor"
	"auction-rooms/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		utils.Error("Auction server stopped with error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	utils.SetLevel(cfg.LogLevel)
	if cfg.LogLevel != "debug" && cfg.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher, closePublisher, err := openPublisher(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	clk := clock.NewSystem()
	rooms := supervisor.New(store, publisher, clk, supervisor.Options{
		SnipeWindow:  cfg.SnipeWindow,
		LockWait:     cfg.BidLockTimeout,
		GracePeriod:  cfg.SettlementGrace,
		ScanInterval: cfg.ScanInterval,
		RetryDelay:   cfg.RetryDelay,
	})
	if err := rooms.Restore(ctx); err != nil {
		return err
	}

	service := auction.NewAuctionService(store, rooms, clk, cfg.DefaultDuration)
	router := server.SetupRouter(service, identity.NewVerifier(cfg.JWTSecret))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.Info("Starting auction server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return rooms.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.Info("Shutting down auction server", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore picks the Mongo store when MONGO_URI is set and the in-memory store otherwise
func openStore(ctx context.Context, cfg *config.Config) (repository.AuctionStore, func(), error) {
	retry := repository.RetryOptions{
		MaxRetries:      cfg.StorageMaxRetries,
		InitialInterval: cfg.StorageRetryInterval,
	}

	if cfg.MongoURI == "" {
		utils.Info("Using in-memory store", nil)
		return repository.NewRetryingStore(repository.NewMemoryStore(), retry), func() {}, nil
	}

	client, err := mongostore.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	store := mongostore.New(client.Database(cfg.MongoDatabase))
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	utils.Info("Connected to MongoDB", map[string]any{"database": cfg.MongoDatabase})
	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			utils.Warn("MongoDB disconnect failed", map[string]any{"error": err.Error()})
		}
	}
	return repository.NewRetryingStore(store, retry), closeFn, nil
}

// openPublisher enables Redis event fan-out when REDIS_ADDR is set
func openPublisher(ctx context.Context, cfg *config.Config) (events.Publisher, func(), error) {
	if cfg.RedisAddr == "" {
		return events.NopPublisher{}, func() {}, nil
	}

	rdb, err := events.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	utils.Info("Publishing room events to Redis", map[string]any{"addr": cfg.RedisAddr})
	return events.NewRedisPublisher(rdb), func() { _ = rdb.Close() }, nil
}
