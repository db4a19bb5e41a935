package service

import (
	"context"
	"time"

	"kitchen_lab/internal/appliance"
	"kitchen_lab/internal/logger"
	"kitchen_lab/internal/models"
	"kitchen_lab/internal/repository"
)

// Controls exposes every inbound appliance action. Results carry the outcome
// and the notification the action produced, if any.
type Controls interface {
	Ingest(ctx context.Context, channel string, grams float64) error
	Tare(ctx context.Context, channel string) (models.ActionResult, error)
	TareAll(ctx context.Context) (models.ActionResult, error)

	TogglePower(ctx context.Context) (models.ActionResult, error)
	ToggleMute(ctx context.Context) (models.ActionResult, error)
	SetStandby(ctx context.Context) (models.ActionResult, error)

	AdvanceMode(ctx context.Context) (models.ActionResult, error)
	SelectRecipe(ctx context.Context, name string) (models.ActionResult, error)
	SetBase(ctx context.Context) (models.ActionResult, error)

	AddFood(ctx context.Context, name string) (models.ActionResult, error)
	ClearLedger(ctx context.Context) (models.ActionResult, error)

	StartCountUp(ctx context.Context) (models.ActionResult, error)
	StartCountdown(ctx context.Context, minutes int) (models.ActionResult, error)
	PauseTimer(ctx context.Context) (models.ActionResult, error)
	ResumeTimer(ctx context.Context) (models.ActionResult, error)
	ResetTimer(ctx context.Context) (models.ActionResult, error)
	ToggleTimerMenu(ctx context.Context) (models.ActionResult, error)
}

// Monitoring exposes the read-only appliance snapshot.
type Monitoring interface {
	GetState(ctx context.Context) (models.ApplianceState, error)
}

// EventLog exposes the notification journal with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.Notification, error)
}

// Clock drives the one-second timer tick until ctx is cancelled.
type Clock interface {
	Run(ctx context.Context)
}

// Catalog exposes the static reference data.
type Catalog interface {
	GetCatalog(ctx context.Context) (models.CatalogView, error)
}

type Service struct {
	Controls
	Monitoring
	EventLog
	Clock
	Catalog
}

// Options carries the runtime settings the services need from config.
type Options struct {
	Tick    time.Duration
	Presets []int
}

// NewService wires the session, its notification sink and the journal into
// concrete services. notifications must be the sink the session was built with.
func NewService(session *appliance.Session, notifications *NotificationService, repos *repository.Repository, opts Options, log *logger.Logger) *Service {
	return &Service{
		Controls:   NewControlsService(session, log),
		Monitoring: NewMonitoringService(session, notifications),
		EventLog:   NewEventLogService(repos.Notifications),
		Clock:      NewClockService(session, opts.Tick, log),
		Catalog:    NewCatalogService(session, opts.Presets),
	}
}
