package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/snip/internal/config"
	"github.com/MrSnakeDoc/snip/internal/httpserver"
	"github.com/MrSnakeDoc/snip/internal/httpserver/deps"
	"github.com/MrSnakeDoc/snip/internal/httpserver/mw"
	"github.com/MrSnakeDoc/snip/internal/logger"
	"github.com/MrSnakeDoc/snip/internal/redis"
	"github.com/MrSnakeDoc/snip/internal/seed"
	"github.com/MrSnakeDoc/snip/internal/shortener"
	"github.com/MrSnakeDoc/snip/internal/slug"
	"github.com/MrSnakeDoc/snip/internal/store"
	memorystore "github.com/MrSnakeDoc/snip/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/snip/internal/store/redis"
	"github.com/MrSnakeDoc/snip/internal/throttle"
	"github.com/MrSnakeDoc/snip/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	redisClient  *goredis.Client
	janitor      *throttle.Janitor
	seedReloader *seed.Reloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Pick the link store backend - fail fast if Redis is unavailable
	var linkStore store.LinkStore
	var redisClient *goredis.Client
	switch cfg.StoreBackend {
	case config.StoreRedis:
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		linkStore = redisstore.NewStore(client)
	default:
		loggerClient.Warn("using in-memory link store, links are lost on restart")
		linkStore = memorystore.NewStore()
	}

	// Creation throttle plus its janitor
	creationThrottle := throttle.New(cfg.ThrottleWindow)
	janitor := throttle.NewJanitor(creationThrottle, loggerClient, cfg.ThrottleSweep, cfg.ThrottleIdleTTL)

	svc := shortener.New(shortener.Options{
		Store:           linkStore,
		Generator:       slug.NewGenerator(cfg.SlugLength),
		Throttle:        creationThrottle,
		Logger:          loggerClient,
		BaseURL:         cfg.BaseURL,
		MaxSlugAttempts: cfg.MaxSlugAttempts,
	})

	// Seed reloader (if a seed file is configured)
	var seedReloader *seed.Reloader
	var reloadTrigger chan struct{}
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, initializing seed reloader",
			logger.String("file", cfg.SeedFile))
		reloadTrigger = make(chan struct{}, 1)
		seedReloader = seed.NewReloader(cfg.SeedFile, linkStore, loggerClient, cfg.SeedInterval, reloadTrigger)
	}

	// Dependencies passed to routes
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		Shortener:    svc,
		Store:        linkStore,
		BaseURL:      cfg.BaseURL,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		APIRateLimit: mw.RateLimitConfig{
			Burst:             cfg.APIBurst,
			RefillPerIPPerMin: cfg.APIRefillPerMin,
			TrustProxy:        cfg.TrustProxy,
		},
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       server,
		redisClient:  redisClient,
		janitor:      janitor,
		seedReloader: seedReloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting snip v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("snip %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Seed predefined links and start periodic refresh
	if a.seedReloader != nil {
		if err := a.seedReloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seed reloader: %w", err)
		}
		a.logger.Info("seed reloader started",
			logger.Duration("interval", a.cfg.SeedInterval))
	}

	// Start throttle janitor
	a.janitor.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.seedReloader != nil {
		a.seedReloader.Stop()
	}
	a.janitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ snip stopped cleanly")
	return nil
}
