package anthropometry

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/nutri-api/internal/handler"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/service/anthropometry"
)

type Handler struct {
	service anthropometry.AnthropometryServicer
}

func NewHandler(service anthropometry.AnthropometryServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	measures := r.Group("/anthropometry")
	{
		measures.POST("", h.Create)
		measures.GET("/:id", h.Get)
		measures.PUT("/:id", h.Update)
	}

	byPatient := r.Group("/patients/:id/anthropometry")
	{
		byPatient.GET("", h.Latest)
		byPatient.PUT("", h.Upsert)
		byPatient.GET("/history", h.History)
	}
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.GetByID(c.Request.Context(), id))
}

func (h *Handler) Latest(c *gin.Context) {
	patientID, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.GetByPatient(c.Request.Context(), patientID))
}

func (h *Handler) History(c *gin.Context) {
	patientID, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.History(c.Request.Context(), patientID))
}

func (h *Handler) Create(c *gin.Context) {
	req, ok := handler.BindJSON[model.CreateAnthropometryRequest](c)
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
	req, ok := handler.BindJSON[model.UpdateAnthropometryRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.service.Update(c.Request.Context(), id, req))
}

func (h *Handler) Upsert(c *gin.Context) {
	patientID, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	req, ok := handler.BindJSON[model.CreateAnthropometryRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.service.UpsertByPatient(c.Request.Context(), patientID, req))
}
