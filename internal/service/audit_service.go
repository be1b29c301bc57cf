package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"go-order-console/internal/model"
	"go-order-console/internal/repository"
	"go-order-console/pkg/apierror"
)

// AuditService records operator write commands. Recording is best-effort: a
// failure is logged and the command proceeds regardless.
type AuditService struct {
	repo *repository.AuditRepository
}

func NewAuditService(repo *repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) Record(ctx context.Context, command string, actorIP string, status string, subject string, errText string) {
	if s == nil || s.repo == nil {
		return
	}

	entry := model.AuditEntry{
		ID:         uuid.NewString(),
		Command:    command,
		OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
		ActorIP:    actorIP,
		Status:     status,
		Subject:    subject,
		Error:      errText,
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		slog.Warn("audit record failed", "command", command, "error", err)
	}
}

func (s *AuditService) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	if query.From != "" {
		if _, err := parseAuditTime(query.From); err != nil {
			return nil, model.Meta{}, apierror.New("BAD_REQUEST", "invalid 'from' datetime format", query.From, http.StatusBadRequest)
		}
	}
	if query.To != "" {
		if _, err := parseAuditTime(query.To); err != nil {
			return nil, model.Meta{}, apierror.New("BAD_REQUEST", "invalid 'to' datetime format", query.To, http.StatusBadRequest)
		}
	}

	return s.repo.Query(ctx, query)
}

func parseAuditTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
