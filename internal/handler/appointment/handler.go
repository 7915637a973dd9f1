package appointment

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/nutri-api/internal/handler"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/service/appointment"
)

type Handler struct {
	service appointment.AppointmentServicer
}

func NewHandler(service appointment.AppointmentServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.GET("/upcoming", h.UpcomingAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
	r.GET("/patients/:id/appointments", h.PatientAppointments)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	handler.Respond(c, h.service.GetAll(c.Request.Context()))
}

func (h *Handler) UpcomingAppointments(c *gin.Context) {
	handler.Respond(c, h.service.Upcoming(c.Request.Context()))
}

func (h *Handler) PatientAppointments(c *gin.Context) {
	patientID, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.GetByPatient(c.Request.Context(), patientID))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.GetByID(c.Request.Context(), id))
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	req, ok := handler.BindJSON[model.CreateAppointmentRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.service.Create(c.Request.Context(), req))
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	req, ok := handler.BindJSON[model.UpdateAppointmentRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.service.Update(c.Request.Context(), id, req))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.Delete(c.Request.Context(), id))
}
