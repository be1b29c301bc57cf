package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-order-console/internal/config"
	"go-order-console/internal/handler"
	"go-order-console/internal/middleware"
	"go-order-console/internal/websocket"
)

func New(
	cfg *config.Config,
	orderHandler *handler.OrderHandler,
	trashHandler *handler.TrashHandler,
	scanHandler *handler.ScanHandler,
	exportHandler *handler.ExportHandler,
	auditHandler *handler.AuditHandler,
	hub *websocket.Hub,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWS(hub, w, req)
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Get("/orders", orderHandler.View)
		api.Get("/orders/stats", orderHandler.Stats)
		api.Post("/orders", orderHandler.Create)
		api.Delete("/orders/{id}", orderHandler.Delete)
		api.Post("/orders/bulk-delete", orderHandler.BulkDelete)
		api.Post("/orders/undo", orderHandler.Undo)

		api.Post("/selection/toggle", orderHandler.ToggleSelection)
		api.Post("/selection/all", orderHandler.SelectAll)
		api.Post("/selection/clear", orderHandler.ClearSelection)

		api.Post("/scan", scanHandler.Trigger)
		api.Get("/scan/status", scanHandler.Status)
		api.Post("/scan/auto", scanHandler.ToggleAuto)

		api.Get("/trash", trashHandler.List)
		api.Post("/trash/{id}/restore", trashHandler.Restore)
		api.Delete("/trash/{id}", trashHandler.Purge)
		api.Post("/trash/bulk-restore", trashHandler.BulkRestore)
		api.Post("/trash/bulk-delete", trashHandler.BulkPurge)

		api.Post("/export", exportHandler.Custom)
		api.Get("/export/{format}", exportHandler.Fixed)

		api.Get("/audit", auditHandler.Query)
	})

	return r
}
