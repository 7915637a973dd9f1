package recordcontrol

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/nutri-api/internal/handler"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/service/recordcontrol"
)

type Handler struct {
	service recordcontrol.RecordControlServicer
}

func NewHandler(service recordcontrol.RecordControlServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	controls := r.Group("/records-controls")
	{
		controls.POST("", h.Create)
		controls.GET("/:id", h.Get)
		controls.PUT("/:id", h.Update)
	}
	r.GET("/patients/:id/records-control", h.GetByPatient)
	r.PUT("/patients/:id/records-control", h.Upsert)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.GetByID(c.Request.Context(), id))
}

func (h *Handler) GetByPatient(c *gin.Context) {
	patientID, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.GetByPatient(c.Request.Context(), patientID))
}

func (h *Handler) Create(c *gin.Context) {
	req, ok := handler.BindJSON[model.CreateRecordsControlRequest](c)
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
	req, ok := handler.BindJSON[model.UpdateRecordsControlRequest](c)
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
	req, ok := handler.BindJSON[model.UpdateRecordsControlRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.service.UpsertByPatient(c.Request.Context(), patientID, req))
}
