package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fcnca-dashboard/api"
	"fcnca-dashboard/cache"
	"fcnca-dashboard/config"
	"fcnca-dashboard/content"
	"fcnca-dashboard/dashboard"
	"fcnca-dashboard/database"
	"fcnca-dashboard/llm"
	"fcnca-dashboard/qa"
	"fcnca-dashboard/realtime"
	"fcnca-dashboard/stock"
)

const shutdownTimeout = 10 * time.Second

// App represents the main application
type App struct {
	config *config.Config
	db     *database.Database
	redis  *cache.RedisClient
	broker *realtime.Broker
	loader *stock.Loader
	qa     *qa.Service
	server *api.Server
}

// New builds every component from cfg. Optional backends (Redis, PostgreSQL,
// LLM) are only contacted when enabled. A database failure is fatal when the
// database is enabled; an unreachable Redis only disables caching.
func New(cfg *config.Config) (*App, error) {
	a := &App{config: cfg}

	page, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("load dashboard content: %w", err)
	}
	renderer, err := dashboard.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}

	a.broker = realtime.NewBroker()

	// 1. Stock data
	provider := stock.NewYahooProvider(cfg.Stock.YahooBaseURL, cfg.Stock.ProxyURL, cfg.Stock.Timeout)
	a.loader = stock.NewLoader(provider, stock.NewFileStore(cfg.Stock.CacheFile),
		cfg.Stock.Symbol, cfg.Stock.Start, cfg.Stock.End)
	a.loader.SetBroadcaster(a.broker)
	zap.S().Infof("📈 Tracking %s from %s to %s (cache: %s)", cfg.Stock.Symbol,
		cfg.Stock.Start.Format(config.DateLayout), cfg.Stock.End.Format(config.DateLayout), cfg.Stock.CacheFile)

	// 2. Question answering
	var answerer qa.Answerer = qa.ExtractiveAnswerer{}
	if cfg.LLM.Enabled {
		client := llm.NewClient(cfg.LLM.Endpoint, cfg.LLM.APIKey, cfg.LLM.Model)
		answerer = qa.NewLLMAnswerer(client)
		zap.S().Infof("✅ LLM question answering ENABLED (Model: %s)", client.Model())
	} else {
		zap.S().Info("ℹ️  LLM question answering DISABLED, using extractive answers")
	}
	a.qa = qa.NewService(page.QA.Context, answerer)
	a.qa.SetBroadcaster(a.broker)

	// 3. Redis answer cache
	if cfg.Redis.Enabled {
		zap.S().Info("🧠 Connecting to Redis...")
		a.redis = cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password)
		if a.redis == nil {
			zap.S().Warn("⚠️  Redis connection failed. Answer caching disabled.")
		} else {
			a.qa.SetCache(cache.NewAnswerCache(a.redis), cfg.QACacheTTL)
		}
	}

	a.server = api.NewServer(a.loader, renderer, page, a.qa, cfg.LLM.Enabled)
	a.server.SetEventStream(a.broker)

	// 4. QA history
	if cfg.Database.Enabled {
		zap.S().Info("🗄️  Connecting to database...")
		db, err := database.Connect(cfg.Database.Host, cfg.Database.Port,
			cfg.Database.Name, cfg.Database.User, cfg.Database.Password)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		a.db = db

		repo := database.NewQARepository(db)
		if err := repo.InitSchema(); err != nil {
			a.Close()
			return nil, fmt.Errorf("schema initialization failed: %w", err)
		}
		a.qa.SetHistoryStore(repo)
		a.server.SetHistory(repo)
		zap.S().Info("✅ QA history ENABLED")
	}

	return a, nil
}

// Handler exposes the routed HTTP handler
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

// Start runs the application until SIGINT or SIGTERM
func (a *App) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Run(ctx)
}

// Run serves until ctx is cancelled or the HTTP server fails, then shuts down
// gracefully.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.broker.Run(ctx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.server.Start(a.config.HTTPPort)
	}()

	var runErr error
	serverStopped := false
	select {
	case <-ctx.Done():
		zap.S().Info("🛑 Shutdown signal received, initiating graceful shutdown...")
	case err := <-serverErr:
		serverStopped = true
		if err != nil {
			runErr = fmt.Errorf("API server failed: %w", err)
		}
	}

	cancel()
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		zap.S().Warnf("⚠️  HTTP server shutdown: %v", err)
		if runErr == nil {
			runErr = fmt.Errorf("shutdown: %w", err)
		}
	}
	if !serverStopped {
		if err := <-serverErr; err != nil && runErr == nil {
			runErr = fmt.Errorf("API server failed: %w", err)
		}
	}

	a.Close()
	if runErr == nil {
		zap.S().Info("✅ Graceful shutdown completed")
	}
	return runErr
}

// Close releases the optional backend connections
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			zap.S().Warnf("Error closing database: %v", err)
		} else {
			zap.S().Info("✅ Database connection closed")
		}
		a.db = nil
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			zap.S().Warnf("Error closing redis: %v", err)
		} else {
			zap.S().Info("✅ Redis connection closed")
		}
		a.redis = nil
	}
}
