package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/beauty-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/beauty-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC      *ucAppointment.CreateAppointment
	updateUC      *ucAppointment.UpdateAppointment
	deleteUC      *ucAppointment.DeleteAppointment
	getUC         *ucAppointment.GetAppointment
	listUC        *ucAppointment.ListAppointments
	salonListUC   *ucAppointment.ListSalonAppointments
	salonCreateUC *ucAppointment.CreateSalonClientAppointment
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	getUC *ucAppointment.GetAppointment,
	listUC *ucAppointment.ListAppointments,
	salonListUC *ucAppointment.ListSalonAppointments,
	salonCreateUC *ucAppointment.CreateSalonClientAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:      createUC,
		updateUC:      updateUC,
		deleteUC:      deleteUC,
		getUC:         getUC,
		listUC:        listUC,
		salonListUC:   salonListUC,
		salonCreateUC: salonCreateUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName      string    `json:"clientName"`
	ClientPhone     string    `json:"clientPhone"`
	ClientID        *uint     `json:"clientId"`
	Service         string    `json:"service"`
	AppointmentTime time.Time `json:"appointmentTime"`
	Duration        int       `json:"duration"`
	Comment         *string   `json:"comment"`
	Type            string    `json:"type"`
	SalonID         *uint     `json:"salonId"`
	ReminderMinutes []int     `json:"reminderMinutes"`
}

type UpdateAppointmentRequest struct {
	ClientName      *string         `json:"clientName"`
	ClientPhone     *string         `json:"clientPhone"`
	Service         *string         `json:"service"`
	AppointmentTime *time.Time      `json:"appointmentTime"`
	Duration        *int            `json:"duration"`
	Comment         json.RawMessage `json:"comment"`
	ReminderMinutes []int           `json:"reminderMinutes"`
	Status          *string         `json:"status"`
}

type SalonClientAppointmentRequest struct {
	ClientID        uint      `json:"clientId" binding:"required"`
	MasterID        uint      `json:"masterId" binding:"required"`
	Service         string    `json:"service" binding:"required"`
	AppointmentTime time.Time `json:"appointmentTime" binding:"required"`
	Duration        int       `json:"duration"`
	Comment         *string   `json:"comment"`
}

func (r UpdateAppointmentRequest) patch() (domain.Patch, error) {
	p := domain.Patch{
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		Service:         r.Service,
		AppointmentTime: r.AppointmentTime,
		Duration:        r.Duration,
		ReminderMinutes: r.ReminderMinutes,
		Status:          r.Status,
	}

	// A present "comment" key sets or clears the comment.
	if r.Comment != nil {
		var comment *string
		if err := json.Unmarshal(r.Comment, &comment); err != nil {
			return p, err
		}
		p.Comment = &comment
	}
	return p, nil
}

// ======================================================
// MASTER
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	list, err := h.listUC.Execute(
		c.Request.Context(),
		middleware.UserID(c),
		c.Query("type"),
		c.Query("status"),
		c.Query("filter"),
		time.Now(),
	)
	if err != nil {
		httperr.Respond(c, err, "appointments_list_failed")
		return
	}
	httpresp.OK(c, "appointments", list)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.getUC.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		httperr.Respond(c, err, "appointment_load_failed")
		return
	}
	httpresp.OK(c, "appointment", view)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		MasterID:        middleware.UserID(c),
		ClientID:        req.ClientID,
		SalonID:         req.SalonID,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		Service:         req.Service,
		AppointmentTime: req.AppointmentTime,
		Duration:        req.Duration,
		Comment:         req.Comment,
		Type:            req.Type,
		ReminderMinutes: req.ReminderMinutes,
	})
	if err != nil {
		httperr.Respond(c, err, "appointment_create_failed")
		return
	}

	httpresp.Created(c, "Запись создана", "appointment", ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	patch, err := req.patch()
	if err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), middleware.UserID(c), id, patch)
	if err != nil {
		httperr.Respond(c, err, "appointment_update_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Запись обновлена", "appointment": ap})
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), middleware.UserID(c), id); err != nil {
		httperr.Respond(c, err, "appointment_delete_failed")
		return
	}
	httpresp.Message(c, "Запись удалена")
}

// ======================================================
// SALON
// ======================================================

func (h *AppointmentHandler) SalonAll(c *gin.Context) {
	list, err := h.salonListUC.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err, "salon_appointments_failed")
		return
	}
	httpresp.OK(c, "appointments", list)
}

func (h *AppointmentHandler) SalonClient(c *gin.Context) {
	var req SalonClientAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.ErrBusiness("missing_required_fields"), "")
		return
	}

	ap, err := h.salonCreateUC.Execute(c.Request.Context(), ucAppointment.SalonClientAppointmentInput{
		OwnerID:         middleware.UserID(c),
		ClientID:        req.ClientID,
		MasterID:        req.MasterID,
		Service:         req.Service,
		AppointmentTime: req.AppointmentTime,
		Duration:        req.Duration,
		Comment:         req.Comment,
	})
	if err != nil {
		httperr.Respond(c, err, "appointment_create_failed")
		return
	}

	httpresp.Created(c, "Запись клиента создана", "appointment", ap)
}
