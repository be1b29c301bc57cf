package handler

import (
	"net/http"
	"strconv"

	"go-order-console/internal/model"
	"go-order-console/internal/service"
)

type AuditHandler struct {
	audit *service.AuditService
}

func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

func (h *AuditHandler) Query(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := model.AuditQuery{
		Command: q.Get("command"),
		Status:  q.Get("status"),
		From:    q.Get("from"),
		To:      q.Get("to"),
		Page:    queryInt(q.Get("page"), 1),
		Limit:   queryInt(q.Get("limit"), 50),
	}

	entries, meta, err := h.audit.Query(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, entries, &meta)
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
