package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/core/ports"
)

type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type appointmentRequest struct {
	UserID        int       `json:"userId" validate:"required,gt=0"`
	Status        string    `json:"status"`
	ScheduledDate time.Time `json:"scheduled_date" validate:"required"`
}

type rescheduleRequest struct {
	ScheduledDate time.Time `json:"scheduled_date" validate:"required"`
}

// List returns every appointment for the calendar view.
//
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Appointment
// @Router       /appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	appts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appts)
}

// Create books an appointment.
//
// @Summary      Create an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      appointmentRequest  true  "Appointment details"
// @Success      201   {object}  domain.Appointment
// @Failure      422   {object}  map[string]string
// @Router       /appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req appointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	appt, err := h.service.Create(c.Request().Context(), ports.AppointmentInput{
		UserID:        req.UserID,
		Status:        domain.AppointmentStatus(req.Status),
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, appt)
}

// Update replaces an appointment's editable fields.
//
// @Summary      Update an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Appointment id"
// @Param        body  body      appointmentRequest  true  "Appointment details"
// @Success      200   {object}  domain.Appointment
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /appointments/{id} [put]
func (h *AppointmentHandler) Update(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req appointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	appt, err := h.service.Update(c.Request().Context(), id, ports.AppointmentInput{
		UserID:        req.UserID,
		Status:        domain.AppointmentStatus(req.Status),
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appt)
}

// Reschedule moves only the scheduled date, the endpoint backing calendar
// drag-and-drop. Past dates are rejected.
//
// @Summary      Reschedule an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Appointment id"
// @Param        body  body      rescheduleRequest  true  "New date"
// @Success      200   {object}  domain.Appointment
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /appointments/{id}/reschedule [put]
func (h *AppointmentHandler) Reschedule(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req rescheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	appt, err := h.service.Reschedule(c.Request().Context(), id, req.ScheduledDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appt)
}

// Delete cancels and removes an appointment.
//
// @Summary      Delete an appointment
// @Tags         appointments
// @Security     BearerAuth
// @Param        id  path  int  true  "Appointment id"
// @Success      204  "appointment removed"
// @Failure      404  {object}  map[string]string
// @Router       /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
