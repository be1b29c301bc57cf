package handler

import (
	"net/http"

	"go-order-console/internal/console"
	"go-order-console/internal/middleware"
)

type ScanHandler struct {
	controller *console.Controller
}

func NewScanHandler(controller *console.Controller) *ScanHandler {
	return &ScanHandler{controller: controller}
}

// Trigger runs a manual inbox scan and reports what the backend found.
func (h *ScanHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	result, err := h.controller.TriggerScan(r.Context(), middleware.ClientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *ScanHandler) Status(w http.ResponseWriter, r *http.Request) {
	autoScan, processing, indicator := h.controller.ScanState()

	writeSuccess(w, http.StatusOK, map[string]bool{
		"auto_scan":       autoScan,
		"is_processing":   processing,
		"show_processing": indicator,
	}, nil)
}

type autoScanRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *ScanHandler) ToggleAuto(w http.ResponseWriter, r *http.Request) {
	var req autoScanRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	outcome, err := h.controller.ToggleAutoScan(r.Context(), req.Enabled, middleware.ClientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	autoScan, _, _ := h.controller.ScanState()
	writeSuccess(w, http.StatusOK, map[string]any{
		"applied":   outcome == console.ToggleApplied,
		"auto_scan": autoScan,
	}, nil)
}
