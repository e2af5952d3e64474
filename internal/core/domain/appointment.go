package domain

import (
	"errors"
	"time"
)

// AppointmentStatus follows the same Portuguese wire values as OrderStatus.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pendente"
	AppointmentConfirmed AppointmentStatus = "confirmado"
	AppointmentCancelled AppointmentStatus = "cancelado"
	AppointmentCompleted AppointmentStatus = "completado"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPastDate            = errors.New("cannot schedule into a past date")
)

// Appointment is a calendar booking tied to a user.
type Appointment struct {
	ID            int               `json:"id" bson:"_id"`
	UserID        int               `json:"userId" bson:"user_id"`
	UserName      string            `json:"userName,omitempty" bson:"user_name,omitempty"`
	Status        AppointmentStatus `json:"status" bson:"status"`
	ScheduledDate time.Time         `json:"scheduled_date" bson:"scheduled_date"`
	CreatedAt     time.Time         `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time         `json:"updatedAt" bson:"updated_at"`
}

func (a Appointment) EntityID() int { return a.ID }

// BeforeMidnight reports whether t falls strictly before local midnight of
// the reference day. Used to reject drag targets into the past.
func BeforeMidnight(t, ref time.Time) bool {
	midnight := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	return t.Before(midnight)
}
