package service

import (
	"context"
	"sync"
	"time"

	"kitchen_lab/internal/appliance"
	"kitchen_lab/internal/logger"
	"kitchen_lab/internal/models"
	"kitchen_lab/internal/repository"

	"github.com/google/uuid"
)

const journalWriteTimeout = 2 * time.Second

// NotificationService is the appliance's notification sink. Each notice
// becomes the active toast for ttl (a newer one replaces it and restarts the
// expiry), is appended to the journal and is logged.
type NotificationService struct {
	repo repository.NotificationRepo
	log  *logger.Logger
	ttl  time.Duration

	now   func() time.Time
	newID func() string

	mu     sync.Mutex
	active *models.Notification
}

func NewNotificationService(repo repository.NotificationRepo, ttl time.Duration, log *logger.Logger) *NotificationService {
	if log == nil {
		log = logger.Nop()
	}
	return &NotificationService{
		repo:  repo,
		log:   log,
		ttl:   ttl,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Deliver implements appliance.Sink.
func (s *NotificationService) Deliver(n appliance.Notice) {
	now := s.now().UTC()
	rec := models.Notification{
		ID:         s.newID(),
		OccurredAt: now,
		Severity:   n.Severity.String(),
		Message:    n.Message,
		Metadata:   metadataOrNil(n.Metadata),
		ExpiresAt:  now.Add(s.ttl),
	}

	s.mu.Lock()
	s.active = &rec
	s.mu.Unlock()

	kv := []any{"id", rec.ID, "severity", rec.Severity, "message", rec.Message}
	if n.Severity == appliance.SeverityError {
		s.log.Warnw("notification", kv...)
	} else {
		s.log.Infow("notification", kv...)
	}
	if muted, ok := n.Metadata["muted"].(bool); ok && n.Message == "Timer finished" {
		s.log.Infow("timer_alarm", "sound", !muted)
	}

	if s.repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalWriteTimeout)
	defer cancel()
	if err := s.repo.Append(ctx, rec); err != nil {
		s.log.Errorw("notification_append_failed", "err", err, "id", rec.ID)
	}
}

// Active returns the current toast, or nil once it has expired.
func (s *NotificationService) Active() *models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil || !s.now().Before(s.active.ExpiresAt) {
		return nil
	}
	n := *s.active
	return &n
}
