package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/nutri-api/internal/middleware"
	"github.com/jwalitptl/nutri-api/pkg/metrics"
)

// Handler mounts a resource's routes under the API group
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// RootHandler mounts routes outside the API group
type RootHandler interface {
	RegisterRoutes(gin.IRoutes)
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	Timeout          time.Duration
	MaxBodySize      int64
}

type Router struct {
	engine   *gin.Engine
	authn    middleware.Authenticator
	root     []RootHandler
	handlers []Handler
}

func NewRouter(
	logger zerolog.Logger,
	m *metrics.Metrics,
	authn middleware.Authenticator,
	root []RootHandler,
	handlers []Handler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	r := &Router{
		engine:   engine,
		authn:    authn,
		root:     root,
		handlers: handlers,
	}

	if config.MaxBodySize <= 0 {
		config.MaxBodySize = middleware.DefaultMaxBodySize
	}
	engine.Use(
		middleware.RequestID(logger),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(m),
		middleware.ErrorHandler(),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORSConfig),
		middleware.SizeLimit(config.MaxBodySize),
		middleware.Timeout(config.Timeout),
	)

	if config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	engine.NoRoute(middleware.NotFound())
	engine.NoMethod(middleware.NotFound())
	return r
}

func (r *Router) Setup() {
	for _, h := range r.root {
		h.RegisterRoutes(r.engine)
	}

	api := r.engine.Group("/api")
	api.Use(middleware.Authenticate(r.authn))
	for _, h := range r.handlers {
		h.RegisterRoutes(api)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
