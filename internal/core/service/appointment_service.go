package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/core/ports"
	"github.com/painelfacil/painel-api/internal/realtime"
)

type AppointmentService struct {
	repo   ports.AppointmentRepository
	users  ports.UserRepository
	hub    *realtime.Hub
	logger zerolog.Logger

	// now is injected for the past-date guard; defaults to time.Now.
	now func() time.Time
}

func NewAppointmentService(repo ports.AppointmentRepository, users ports.UserRepository, hub *realtime.Hub, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, users: users, hub: hub, logger: logger, now: time.Now}
}

func (s *AppointmentService) List(ctx context.Context) ([]domain.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *AppointmentService) Create(ctx context.Context, in ports.AppointmentInput) (*domain.Appointment, error) {
	if domain.BeforeMidnight(in.ScheduledDate, s.now()) {
		return nil, domain.ErrPastDate
	}

	status := in.Status
	if status == "" {
		status = domain.AppointmentPending
	}

	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	appt := &domain.Appointment{
		UserID:        user.ID,
		UserName:      user.Name,
		Status:        status,
		ScheduledDate: in.ScheduledDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		s.logger.Error().Err(err).Msg("failed to create appointment")
		return nil, err
	}

	s.hub.Publish(realtime.Event{Name: realtime.EventAppointmentCreated, Payload: *appt})
	return appt, nil
}

func (s *AppointmentService) Update(ctx context.Context, id int, in ports.AppointmentInput) (*domain.Appointment, error) {
	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != "" {
		appt.Status = in.Status
	}
	if !in.ScheduledDate.IsZero() {
		if domain.BeforeMidnight(in.ScheduledDate, s.now()) {
			return nil, domain.ErrPastDate
		}
		appt.ScheduledDate = in.ScheduledDate
	}
	if in.UserID > 0 && in.UserID != appt.UserID {
		user, err := s.users.FindByID(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		appt.UserID = user.ID
		appt.UserName = user.Name
	}

	appt.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.Event{Name: realtime.EventAppointmentUpdated, Payload: *appt})
	return appt, nil
}

// Reschedule moves only the scheduled date. The client already rejects
// past-dated drags; this re-checks server-side because the guard there is
// advisory only.
func (s *AppointmentService) Reschedule(ctx context.Context, id int, date time.Time) (*domain.Appointment, error) {
	if domain.BeforeMidnight(date, s.now()) {
		return nil, domain.ErrPastDate
	}

	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	appt.ScheduledDate = date
	appt.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.Event{Name: realtime.EventAppointmentUpdated, Payload: *appt})
	return appt, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(realtime.Event{Name: realtime.EventAppointmentDeleted, Payload: id})
	return nil
}
