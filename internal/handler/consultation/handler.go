package consultation

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/nutri-api/internal/handler"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/service/consultation"
)

type Handler struct {
	service consultation.ConsultationServicer
}

func NewHandler(service consultation.ConsultationServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	consultations := r.Group("/consultations")
	{
		consultations.GET("", h.List)
		consultations.POST("", h.Create)
		consultations.GET("/upcoming", h.Upcoming)
		consultations.GET("/:id", h.Get)
		consultations.PUT("/:id", h.Update)
		consultations.DELETE("/:id", h.Delete)
	}
	r.GET("/patients/:id/consultations", h.ByPatient)
}

func (h *Handler) List(c *gin.Context) {
	handler.Respond(c, h.service.GetAll(c.Request.Context()))
}

// Upcoming lists consultations in the next ?days= days (7 by default)
func (h *Handler) Upcoming(c *gin.Context) {
	days, ok := handler.QueryInt(c, "days", consultation.DefaultUpcomingDays)
	if !ok {
		return
	}
	handler.Respond(c, h.service.Upcoming(c.Request.Context(), days))
}

func (h *Handler) ByPatient(c *gin.Context) {
	patientID, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.GetByPatient(c.Request.Context(), patientID))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.GetByID(c.Request.Context(), id))
}

func (h *Handler) Create(c *gin.Context) {
	req, ok := handler.BindJSON[model.CreateConsultationRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.service.Create(c.Request.Context(), req))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	req, ok := handler.BindJSON[model.UpdateConsultationRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.service.Update(c.Request.Context(), id, req))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.Delete(c.Request.Context(), id))
}
