package realtime

import "fmt"

// Event names pushed over the socket channel. The dashboard front end
// subscribes to these by name, so they are part of the wire contract.
const (
	EventOrderUpdated  = "orderUpdated"
	EventOrdersUpdated = "ordersUpdated"

	EventUserCreated = "userCreated"
	EventUserUpdated = "userUpdated"
	EventUserDeleted = "userDeleted"

	EventMenuCreated    = "menuCreated"
	EventMenuUpdated    = "menuUpdated"
	EventMenuDeleted    = "menuDeleted"
	EventSubmenuUpdated = "submenuUpdated"
	EventSubmenuDeleted = "submenuDeleted"

	EventAppointmentCreated = "appointmentCreated"
	EventAppointmentUpdated = "appointmentUpdated"
	EventAppointmentDeleted = "appointmentDeleted"
)

// UserEvent returns the per-subject personalization event name, e.g.
// "user-updated-42". Its payload carries {role, name}.
func UserEvent(userID int) string {
	return fmt.Sprintf("user-updated-%d", userID)
}

// Event is a single push notification.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"data"`
}
