package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kitchen_lab/internal/appliance"
	"kitchen_lab/internal/models"
	"kitchen_lab/internal/repository"
)

type EventLogService struct {
	repo repository.NotificationRepo
}

func NewEventLogService(repo repository.NotificationRepo) *EventLogService {
	return &EventLogService{repo: repo}
}

var (
	// ErrInvalidFilter is returned for a malformed journal query.
	ErrInvalidFilter = errors.New("invalid log filter")

	errInvalidTimeRange = fmt.Errorf("%w: From must be <= To", ErrInvalidFilter)
)

var knownSeverities = map[string]bool{
	appliance.SeverityInfo.String():    true,
	appliance.SeveritySuccess.String(): true,
	appliance.SeverityError.String():   true,
}

func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeSeverity(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	severity := normalizeSeverity(f.Severity)
	if severity != "" && !knownSeverities[severity] {
		return time.Time{}, time.Time{}, "", fmt.Errorf("%w: unknown severity %q", ErrInvalidFilter, f.Severity)
	}
	return from, to, severity, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.Notification, error) {
	from, to, severity, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, from, to, severity)
}
