package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-order-console/internal/model"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, entry model.AuditEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO command_audit (id, command, occurred_at, actor_ip, status, subject, error_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.Command, entry.OccurredAt, entry.ActorIP,
		entry.Status, entry.Subject, entry.Error)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 50
	}
	if query.Limit > 200 {
		query.Limit = 200
	}

	where := make([]string, 0)
	args := make([]any, 0)
	argIdx := 1

	if command := strings.TrimSpace(query.Command); command != "" {
		where = append(where, fmt.Sprintf("lower(command) = lower($%d)", argIdx))
		args = append(args, command)
		argIdx++
	}
	if status := strings.TrimSpace(query.Status); status != "" {
		where = append(where, fmt.Sprintf("lower(status) = lower($%d)", argIdx))
		args = append(args, status)
		argIdx++
	}
	if from := strings.TrimSpace(query.From); from != "" {
		where = append(where, fmt.Sprintf("occurred_at >= $%d::timestamptz", argIdx))
		args = append(args, from)
		argIdx++
	}
	if to := strings.TrimSpace(query.To); to != "" {
		where = append(where, fmt.Sprintf("occurred_at <= $%d::timestamptz", argIdx))
		args = append(args, to)
		argIdx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM command_audit"+whereClause, args...).Scan(&total); err != nil {
		return nil, model.Meta{}, fmt.Errorf("count audit entries: %w", err)
	}

	offset := (query.Page - 1) * query.Limit
	listQuery := fmt.Sprintf(
		"SELECT id, command, occurred_at, actor_ip, status, subject, error_text FROM command_audit%s ORDER BY occurred_at DESC LIMIT $%d OFFSET $%d",
		whereClause, argIdx, argIdx+1)
	args = append(args, query.Limit, offset)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, model.Meta{}, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var entry model.AuditEntry
		var occurredAt time.Time
		if err := rows.Scan(&entry.ID, &entry.Command, &occurredAt,
			&entry.ActorIP, &entry.Status, &entry.Subject, &entry.Error); err != nil {
			return nil, model.Meta{}, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.OccurredAt = occurredAt.UTC().Format(time.RFC3339Nano)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, model.Meta{}, err
	}

	totalPages := (total + query.Limit - 1) / query.Limit
	meta := model.Meta{Page: query.Page, Limit: query.Limit, Total: total, TotalPages: totalPages}
	return entries, meta, nil
}
