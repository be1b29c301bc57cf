package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-order-console/internal/backend"
	"go-order-console/internal/config"
	"go-order-console/internal/console"
	"go-order-console/internal/database"
	"go-order-console/internal/event"
	"go-order-console/internal/handler"
	"go-order-console/internal/repository"
	"go-order-console/internal/router"
	"go-order-console/internal/service"
	"go-order-console/internal/websocket"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	auditRepo := repository.NewAuditRepository(db.Pool)
	auditService := service.NewAuditService(auditRepo)
	slog.Info("database ready")

	bus := event.NewBus()
	hub := websocket.NewHub(bus)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	orderBackend := backend.New(cfg.BackendBaseURL, cfg.BackendSessionCookie, cfg.BackendTimeout)
	controller := console.NewController(orderBackend, bus, auditService, console.Options{
		OrderPollInterval:  cfg.OrderPollInterval,
		StatusPollInterval: cfg.StatusPollInterval,
		ProcessingDebounce: cfg.ProcessingDebounce,
		ToastTTL:           cfg.ToastTTL,
	})
	controller.Activate(context.Background())

	orderHandler := handler.NewOrderHandler(controller)
	trashHandler := handler.NewTrashHandler(controller)
	scanHandler := handler.NewScanHandler(controller)
	exportHandler := handler.NewExportHandler(controller)
	auditHandler := handler.NewAuditHandler(auditService)

	appRouter := router.New(cfg, orderHandler, trashHandler, scanHandler, exportHandler, auditHandler, hub)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			func() {
				controller.Deactivate()
			},
			func() {
				hubCancel()
			},
			func() {
				db.Close()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
