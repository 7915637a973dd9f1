package diagnosis

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/nutri-api/internal/handler"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/service/diagnosis"
)

type Handler struct {
	service diagnosis.DiagnosisServicer
}

func NewHandler(service diagnosis.DiagnosisServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	diagnoses := r.Group("/diagnoses")
	{
		diagnoses.POST("", h.Create)
		diagnoses.GET("/:id", h.Get)
		diagnoses.PUT("/:id", h.Update)
	}
	r.GET("/patients/:id/diagnosis", h.GetByPatient)
	r.PUT("/patients/:id/diagnosis", h.Upsert)
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
	req, ok := handler.BindJSON[model.CreateDiagnosisRequest](c)
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
	req, ok := handler.BindJSON[model.UpdateDiagnosisRequest](c)
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
	req, ok := handler.BindJSON[model.UpdateDiagnosisRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.service.UpsertByPatient(c.Request.Context(), patientID, req))
}
