package repository

import (
	"context"
	"database/sql"
	"time"

	"kitchen_lab/internal/models"
)

// NotificationRepo is the append-only notification journal.
type NotificationRepo interface {
	Append(ctx context.Context, n models.Notification) error
	List(ctx context.Context, from, to time.Time, severity string) ([]models.Notification, error)
}

type Repository struct {
	Notifications NotificationRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Notifications: NewNotificationSQLite(db),
	}
}
