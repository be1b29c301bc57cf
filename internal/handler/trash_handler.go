package handler

import (
	"net/http"

	"go-order-console/internal/console"
	"go-order-console/internal/middleware"
)

type TrashHandler struct {
	controller *console.Controller
}

func NewTrashHandler(controller *console.Controller) *TrashHandler {
	return &TrashHandler{controller: controller}
}

func (h *TrashHandler) List(w http.ResponseWriter, r *http.Request) {
	trashed, err := h.controller.Trash(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, trashed, nil)
}

func (h *TrashHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.controller.RestoreFromTrash(r.Context(), id, middleware.ClientIP(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "Order restored successfully"}, nil)
}

func (h *TrashHandler) Purge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.controller.PurgeFromTrash(r.Context(), id, middleware.ClientIP(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "Order permanently deleted"}, nil)
}

type bulkRequest struct {
	IDs []int `json:"ids"`
}

func (h *TrashHandler) BulkRestore(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.controller.BulkRestoreFromTrash(r.Context(), req.IDs, middleware.ClientIP(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]int{"count": len(req.IDs)}, nil)
}

func (h *TrashHandler) BulkPurge(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.controller.BulkPurgeFromTrash(r.Context(), req.IDs, middleware.ClientIP(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]int{"count": len(req.IDs)}, nil)
}
