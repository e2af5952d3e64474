package ports

import (
	"context"
	"time"

	"github.com/painelfacil/painel-api/internal/core/domain"
)

type AppointmentRepository interface {
	List(ctx context.Context) ([]domain.Appointment, error)
	FindByID(ctx context.Context, id int) (*domain.Appointment, error)
	Create(ctx context.Context, a *domain.Appointment) error
	Update(ctx context.Context, a *domain.Appointment) error
	Delete(ctx context.Context, id int) error
}

type AppointmentInput struct {
	UserID        int
	Status        domain.AppointmentStatus
	ScheduledDate time.Time
}

type AppointmentService interface {
	List(ctx context.Context) ([]domain.Appointment, error)
	Create(ctx context.Context, in AppointmentInput) (*domain.Appointment, error)
	Update(ctx context.Context, id int, in AppointmentInput) (*domain.Appointment, error)
	// Reschedule moves only the scheduled date. Targets before local
	// midnight today are rejected with domain.ErrPastDate.
	Reschedule(ctx context.Context, id int, date time.Time) (*domain.Appointment, error)
	Delete(ctx context.Context, id int) error
}
