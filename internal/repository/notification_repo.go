package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"kitchen_lab/internal/models"

	"github.com/google/uuid"
)

// occurredAtLayout is fixed-width so that text comparison in SQL orders the
// same way as time.
const occurredAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type NotificationSQLite struct {
	db *sql.DB
}

func NewNotificationSQLite(db *sql.DB) *NotificationSQLite { return &NotificationSQLite{db: db} }

// Append journals a notification. Missing ID or OccurredAt are filled in.
func (r *NotificationSQLite) Append(ctx context.Context, n models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.OccurredAt.IsZero() {
		n.OccurredAt = time.Now()
	}

	var metaPtr *string
	if n.Metadata != nil {
		if b, err := json.Marshal(n.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, occurred_at, severity, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`,
		n.ID,
		formatOccurredAt(n.OccurredAt),
		strings.ToLower(strings.TrimSpace(n.Severity)),
		n.Message,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("append notification %s: %w", n.ID, err)
	}
	return nil
}

// List returns notifications in [from, to] (zero bounds are open) with an
// optional severity, oldest first.
func (r *NotificationSQLite) List(ctx context.Context, from, to time.Time, severity string) ([]models.Notification, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, formatOccurredAt(from))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, formatOccurredAt(to))
	}
	if severity = strings.ToLower(strings.TrimSpace(severity)); severity != "" {
		conds = append(conds, "severity = ?")
		args = append(args, severity)
	}

	q := `SELECT id, occurred_at, severity, message, meta FROM notifications`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	out := make([]models.Notification, 0, 32)
	for rows.Next() {
		var (
			n        models.Notification
			occurred string
			metaStr  sql.NullString
		)
		if err := rows.Scan(&n.ID, &occurred, &n.Severity, &n.Message, &metaStr); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if n.OccurredAt, err = time.Parse(occurredAtLayout, occurred); err != nil {
			return nil, fmt.Errorf("parse occurred_at of %s: %w", n.ID, err)
		}

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				n.Metadata = v
			} else {
				n.Metadata = metaStr.String
			}
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func formatOccurredAt(t time.Time) string {
	return t.UTC().Format(occurredAtLayout)
}
