package viewstate

import (
	"time"

	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/realtime"
)

// Point is a drag-release coordinate in view space.
type Point struct {
	X, Y float64
}

// Rect is an on-screen bounding box, e.g. the delete drop target.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Contains reports whether p falls inside the rectangle (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// AppointmentView reconciles the calendar view and implements the two
// drag-and-drop special cases: reschedule with revert-on-failure, and
// deletion by releasing onto a fixed drop target.
type AppointmentView struct {
	*View[domain.Appointment]

	// now is injected for the past-date guard; defaults to time.Now.
	now func() time.Time
}

// NewAppointmentView seeds an appointment view and wires its event kinds.
func NewAppointmentView(initial []domain.Appointment) *AppointmentView {
	v := NewView(initial)
	v.OnCreated(realtime.EventAppointmentCreated)
	v.OnUpdated(realtime.EventAppointmentUpdated)
	v.OnDeleted(realtime.EventAppointmentDeleted)
	return &AppointmentView{View: v, now: time.Now}
}

// Reschedule moves an appointment to target. A target strictly before local
// midnight today is rejected before any request is sent. The tentative new
// date is shown while the request is in flight; on failure the view reverts
// to the pre-drag value.
func (v *AppointmentView) Reschedule(id int, target time.Time, send func(domain.Appointment) error) error {
	if domain.BeforeMidnight(target, v.now()) {
		return domain.ErrPastDate
	}

	prev, ok := v.Get(id)
	if !ok {
		return domain.ErrAppointmentNotFound
	}

	moved := prev
	moved.ScheduledDate = target
	v.Mutate(func(c *Collection[domain.Appointment]) { c.ApplyUpdate(moved) })

	if err := send(moved); err != nil {
		// Compensating action: the push echo never comes, so restore
		// the pre-drag record locally.
		v.Mutate(func(c *Collection[domain.Appointment]) { c.ApplyUpdate(prev) })
		return err
	}
	return nil
}

// DropRelease resolves a drag release. Releasing inside target deletes the
// appointment; anywhere else it is a plain reschedule to dropDate, or a
// no-op revert when the date is unchanged.
func (v *AppointmentView) DropRelease(id int, at Point, target Rect, dropDate time.Time,
	send func(domain.Appointment) error, del func(int) error) error {

	if target.Contains(at) {
		if err := del(id); err != nil {
			return err
		}
		v.Mutate(func(c *Collection[domain.Appointment]) { c.ApplyDelete(id) })
		return nil
	}

	if prev, ok := v.Get(id); ok && prev.ScheduledDate.Equal(dropDate) {
		return nil
	}
	return v.Reschedule(id, dropDate, send)
}
