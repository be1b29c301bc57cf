package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-order-console/internal/console"
	"go-order-console/internal/middleware"
	"go-order-console/internal/model"
	"go-order-console/pkg/apierror"
)

type ExportHandler struct {
	controller *console.Controller
}

func NewExportHandler(controller *console.Controller) *ExportHandler {
	return &ExportHandler{controller: controller}
}

type customExportRequest struct {
	Fields []string `json:"fields"`
	Format string   `json:"format"`
}

// Custom applies the requested field set and format to the builder, then
// fires the export. The builder keeps its configuration when the backend
// rejects the request, so a retry needs no reconfiguration.
func (h *ExportHandler) Custom(w http.ResponseWriter, r *http.Request) {
	var req customExportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	builder := h.controller.Exports()
	if req.Format != "" {
		if err := builder.SetFormat(model.ExportFormat(req.Format)); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Fields != nil {
		if err := builder.SetFields(req.Fields); err != nil {
			writeError(w, err)
			return
		}
	}

	file, err := h.controller.Export(r.Context(), middleware.ClientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	streamFile(w, file)
}

// Fixed is the one-click export shortcut with the full field list.
func (h *ExportHandler) Fixed(w http.ResponseWriter, r *http.Request) {
	format := model.ExportFormat(chi.URLParam(r, "format"))
	if !format.Valid() {
		writeError(w, apierror.BadRequest("unsupported export format", string(format)))
		return
	}

	file, err := h.controller.ExportFixed(r.Context(), format, middleware.ClientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	streamFile(w, file)
}

func streamFile(w http.ResponseWriter, file *model.ExportFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
