package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/pressly/goose/v3"
	"github.com/stpnv0/TravelBot/internal/bot"
	"github.com/stpnv0/TravelBot/internal/config"
	"github.com/stpnv0/TravelBot/internal/handler"
	"github.com/stpnv0/TravelBot/internal/middleware"
	"github.com/stpnv0/TravelBot/internal/repository"
	"github.com/stpnv0/TravelBot/internal/router"
	"github.com/stpnv0/TravelBot/internal/scheduler"
	"github.com/stpnv0/TravelBot/internal/service"
	"github.com/stpnv0/TravelBot/internal/service/ports"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"
)

const migrationsDir = "migrations"

type App struct {
	cfg        *config.Config
	log        logger.Logger
	db         *dbpg.DB
	bot        *bot.Bot
	httpServer *http.Server
	scheduler  *scheduler.Scheduler
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		"TravelBot",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	if cfg.Postgres.Enabled {
		if err = app.runMigrations(); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		if err = app.initDB(); err != nil {
			return nil, fmt.Errorf("init db: %w", err)
		}
	}

	if err = app.initServices(); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initDB() error {
	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.Master.PingContext(context.Background()); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	return nil
}

func (a *App) initServices() error {
	// Датасеты неизменяемы и загружаются один раз; ошибка загрузки —
	// фатальный останов без частичного состояния.
	knowledgeRepo, err := repository.NewKnowledgeRepo(a.cfg.Data.KnowledgePath)
	if err != nil {
		return fmt.Errorf("load knowledge base: %w", err)
	}

	catalogRepo, err := repository.NewCatalogRepo(a.cfg.Data.HotelsPath)
	if err != nil {
		return fmt.Errorf("load hotels database: %w", err)
	}

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "datasets loaded",
		logger.Int("knowledge_entries", len(knowledgeRepo.Entries())),
		logger.Int("cities", len(catalogRepo.Cities())),
	)

	sessions := repository.NewSessionStore()

	var (
		archive ports.BookingArchive
		stats   handler.ArchiveStats
	)
	if a.cfg.Postgres.Enabled {
		ba := repository.NewBookingArchive(a.db)
		archive = ba
		stats = ba
	}

	intentService := service.NewIntentService(knowledgeRepo)
	bookingService := service.NewBookingService(
		catalogRepo,
		sessions,
		archive,
		a.log,
		a.cfg.Session.TTL,
	)

	a.scheduler = scheduler.New(
		bookingService,
		a.cfg.Session.SweepInterval,
		a.log,
	)

	keyboards := bot.NewKeyboards(catalogRepo)
	botHandler := bot.NewHandler(intentService, bookingService, sessions, a.log)

	b, err := bot.New(
		a.cfg.Telegram.BotToken,
		a.cfg.Telegram.PollTimeout,
		botHandler,
		keyboards,
		a.log,
	)
	if err != nil {
		return fmt.Errorf("init telegram bot: %w", err)
	}
	a.bot = b

	h := handler.NewHandler(catalogRepo, intentService, stats)
	r := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.scheduler.Start(ctx)

	errCh := make(chan error, 2)

	go func() {
		if err := a.bot.Run(ctx); err != nil {
			errCh <- fmt.Errorf("telegram bot: %w", err)
		}
	}()

	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	if a.db != nil {
		if err := a.db.Master.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")
	}

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}
