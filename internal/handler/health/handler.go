package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/nutri-api/internal/handler"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether the storage backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type Status struct {
	Service string    `json:"service,omitempty"`
	Version string    `json:"version,omitempty"`
	Status  string    `json:"status"`
	Time    time.Time `json:"time"`
}

type Handler struct {
	db      Pinger
	service string
	version string
}

func NewHandler(db Pinger, service, version string) *Handler {
	return &Handler{db: db, service: service, version: version}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.GET("/health/live", h.LivenessCheck)
	r.GET("/health/ready", h.ReadinessCheck)
}

func (h *Handler) Index(c *gin.Context) {
	handler.Respond(c, httputil.Success(Status{
		Service: h.service,
		Version: h.version,
		Status:  "running",
		Time:    time.Now().UTC(),
	}))
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	handler.Respond(c, httputil.Success(Status{Status: "UP", Time: time.Now().UTC()}))
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		resp := httputil.ErrorResponse[Status]("SERVICE_UNAVAILABLE", "Database connection failed", http.StatusServiceUnavailable)
		handler.Respond(c, resp)
		return
	}
	handler.Respond(c, httputil.Success(Status{Status: "UP", Time: time.Now().UTC()}))
}
