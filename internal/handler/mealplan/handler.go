package mealplan

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/nutri-api/internal/handler"
	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/service/mealplan"
)

type Handler struct {
	service mealplan.MealPlanServicer
}

func NewHandler(service mealplan.MealPlanServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	plans := r.Group("/meal-plans")
	{
		plans.GET("", h.List)
		plans.POST("", h.Create)
		plans.GET("/:id", h.Get)
		plans.PUT("/:id", h.Update)
		plans.DELETE("/:id", h.Delete)
		plans.POST("/:id/activate", h.Activate)
	}
	r.GET("/patients/:id/meal-plans", h.ByPatient)
	r.GET("/patients/:id/meal-plans/active", h.ActiveByPatient)
}

func (h *Handler) List(c *gin.Context) {
	handler.Respond(c, h.service.GetAll(c.Request.Context()))
}

func (h *Handler) ByPatient(c *gin.Context) {
	patientID, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.GetByPatient(c.Request.Context(), patientID))
}

func (h *Handler) ActiveByPatient(c *gin.Context) {
	patientID, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.GetActiveByPatient(c.Request.Context(), patientID))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.GetByID(c.Request.Context(), id))
}

func (h *Handler) Create(c *gin.Context) {
	req, ok := handler.BindJSON[model.CreateMealPlanRequest](c)
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
	req, ok := handler.BindJSON[model.UpdateMealPlanRequest](c)
	if !ok {
		return
	}
	handler.Respond(c, h.service.Update(c.Request.Context(), id, req))
}

func (h *Handler) Activate(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.Activate(c.Request.Context(), id))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	handler.Respond(c, h.service.Delete(c.Request.Context(), id))
}
