package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/core/ports"
	"github.com/painelfacil/painel-api/internal/realtime"
)

var apptNow = time.Date(2026, time.August, 30, 15, 30, 0, 0, time.Local)

func newAppointmentService() (*AppointmentService, *stubAppointmentRepo, *stubUserRepo, *realtime.Subscription) {
	repo := newStubAppointmentRepo()
	users := newStubUserRepo()
	users.Create(context.Background(), &domain.User{Name: "Ana", Email: "ana@example.com", RoleID: 2})
	hub, sub := testHub()
	svc := NewAppointmentService(repo, users, hub, zerolog.Nop())
	svc.now = func() time.Time { return apptNow }
	return svc, repo, users, sub
}

func TestAppointmentService_Create(t *testing.T) {
	svc, _, _, sub := newAppointmentService()

	appt, err := svc.Create(context.Background(), ports.AppointmentInput{
		UserID:        1,
		ScheduledDate: apptNow.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if appt.Status != domain.AppointmentPending {
		t.Fatalf("default status: got %s", appt.Status)
	}
	if appt.UserName != "Ana" {
		t.Fatalf("user name not denormalized: %q", appt.UserName)
	}

	events := drainEvents(sub)
	if len(events) != 1 || events[0].Name != realtime.EventAppointmentCreated {
		t.Fatalf("expected appointmentCreated, got %v", events)
	}
}

func TestAppointmentService_Create_PastDate(t *testing.T) {
	svc, repo, _, sub := newAppointmentService()

	_, err := svc.Create(context.Background(), ports.AppointmentInput{
		UserID:        1,
		ScheduledDate: apptNow.AddDate(0, 0, -1),
	})
	if !errors.Is(err, domain.ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}
	if appts, _ := repo.List(context.Background()); len(appts) != 0 {
		t.Fatalf("rejected appointment was persisted")
	}
	if events := drainEvents(sub); len(events) != 0 {
		t.Fatalf("rejected appointment pushed events: %v", events)
	}
}

func TestAppointmentService_Reschedule(t *testing.T) {
	svc, repo, _, sub := newAppointmentService()

	appt, _ := svc.Create(context.Background(), ports.AppointmentInput{
		UserID:        1,
		ScheduledDate: apptNow.Add(24 * time.Hour),
	})
	drainEvents(sub)

	target := apptNow.Add(72 * time.Hour)
	moved, err := svc.Reschedule(context.Background(), appt.ID, target)
	if err != nil {
		t.Fatalf("Reschedule returned error: %v", err)
	}
	if !moved.ScheduledDate.Equal(target) {
		t.Fatalf("date: got %v, want %v", moved.ScheduledDate, target)
	}

	stored, _ := repo.FindByID(context.Background(), appt.ID)
	if !stored.ScheduledDate.Equal(target) {
		t.Fatalf("persisted date: got %v", stored.ScheduledDate)
	}

	events := drainEvents(sub)
	if len(events) != 1 || events[0].Name != realtime.EventAppointmentUpdated {
		t.Fatalf("expected appointmentUpdated, got %v", events)
	}
}

func TestAppointmentService_Reschedule_EarlierTodayAllowed(t *testing.T) {
	svc, _, _, sub := newAppointmentService()

	appt, _ := svc.Create(context.Background(), ports.AppointmentInput{
		UserID:        1,
		ScheduledDate: apptNow.Add(24 * time.Hour),
	})
	drainEvents(sub)

	// The cutoff is midnight of today, not the current instant.
	earlierToday := time.Date(2026, time.August, 30, 8, 0, 0, 0, time.Local)
	if _, err := svc.Reschedule(context.Background(), appt.ID, earlierToday); err != nil {
		t.Fatalf("earlier-today reschedule rejected: %v", err)
	}
}

func TestAppointmentService_Reschedule_PastDate(t *testing.T) {
	svc, repo, _, sub := newAppointmentService()

	original := apptNow.Add(24 * time.Hour)
	appt, _ := svc.Create(context.Background(), ports.AppointmentInput{UserID: 1, ScheduledDate: original})
	drainEvents(sub)

	_, err := svc.Reschedule(context.Background(), appt.ID, apptNow.AddDate(0, 0, -2))
	if !errors.Is(err, domain.ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), appt.ID)
	if !stored.ScheduledDate.Equal(original) {
		t.Fatalf("date changed despite rejection: %v", stored.ScheduledDate)
	}
	if events := drainEvents(sub); len(events) != 0 {
		t.Fatalf("rejected reschedule pushed events: %v", events)
	}
}

func TestAppointmentService_Delete(t *testing.T) {
	svc, repo, _, sub := newAppointmentService()

	appt, _ := svc.Create(context.Background(), ports.AppointmentInput{
		UserID:        1,
		ScheduledDate: apptNow.Add(24 * time.Hour),
	})
	drainEvents(sub)

	if err := svc.Delete(context.Background(), appt.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), appt.ID); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected appointment gone, got %v", err)
	}

	events := drainEvents(sub)
	if len(events) != 1 || events[0].Name != realtime.EventAppointmentDeleted {
		t.Fatalf("expected appointmentDeleted, got %v", events)
	}
}
