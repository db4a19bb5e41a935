package service

import (
	"context"

	"kitchen_lab/internal/appliance"
	"kitchen_lab/internal/models"
)

type MonitoringService struct {
	session       *appliance.Session
	notifications *NotificationService
}

func NewMonitoringService(session *appliance.Session, notifications *NotificationService) *MonitoringService {
	return &MonitoringService{session: session, notifications: notifications}
}

// GetState returns the session snapshot with the active toast attached.
func (s *MonitoringService) GetState(ctx context.Context) (models.ApplianceState, error) {
	if err := ctx.Err(); err != nil {
		return models.ApplianceState{}, err
	}
	st := s.session.Snapshot()
	if s.notifications != nil {
		st.Notification = s.notifications.Active()
	}
	return st, nil
}
