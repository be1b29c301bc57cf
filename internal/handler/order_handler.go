package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"go-order-console/internal/console"
	"go-order-console/internal/middleware"
	"go-order-console/internal/model"
	"go-order-console/pkg/apierror"
)

type OrderHandler struct {
	controller *console.Controller
}

func NewOrderHandler(controller *console.Controller) *OrderHandler {
	return &OrderHandler{controller: controller}
}

// View renders the filtered and sorted live collection along with selection
// and scan-indicator state.
func (h *OrderHandler) View(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := h.controller.View(q.Get("q"), q.Get("sort"), q.Get("dir"))
	writeSuccess(w, http.StatusOK, view, nil)
}

func (h *OrderHandler) Stats(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, h.controller.Stats(), nil)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.OrderDraft
	if err := decodeBody(r, &draft); err != nil {
		writeError(w, err)
		return
	}

	if err := h.controller.CreateOrder(r.Context(), draft, middleware.ClientIP(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{"message": "Order added successfully"}, nil)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.controller.Delete(r.Context(), id, middleware.ClientIP(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "Order moved to trash"}, nil)
}

func (h *OrderHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.BulkDeleteSelected(r.Context(), middleware.ClientIP(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "Selected orders moved to trash"}, nil)
}

// Undo dispatches the undo command. An empty undo history is a success no-op,
// mirroring the keyboard shortcut doing nothing.
func (h *OrderHandler) Undo(w http.ResponseWriter, r *http.Request) {
	cmd := h.controller.UndoCommand(middleware.ClientIP(r))
	if err := cmd.Execute(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]int{"undo_depth": h.controller.UndoDepth()}, nil)
}

// ── Selection ────────────────────────────────────────────────────

type toggleRequest struct {
	ID int `json:"id"`
}

func (h *OrderHandler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	h.controller.Selection().Toggle(req.ID)
	writeSuccess(w, http.StatusOK, h.controller.Selection().IDs(), nil)
}

// SelectAll captures the ids of the currently filtered view, never the full
// collection.
func (h *OrderHandler) SelectAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := h.controller.View(q.Get("q"), q.Get("sort"), q.Get("dir"))

	visible := make([]int, 0, len(view.Orders))
	for _, o := range view.Orders {
		visible = append(visible, o.ID)
	}

	h.controller.Selection().SelectAll(visible)
	writeSuccess(w, http.StatusOK, h.controller.Selection().IDs(), nil)
}

func (h *OrderHandler) ClearSelection(w http.ResponseWriter, _ *http.Request) {
	h.controller.Selection().Clear()
	writeSuccess(w, http.StatusOK, []int{}, nil)
}

func pathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apierror.BadRequest("id must be a positive integer", raw)
	}
	return id, nil
}
