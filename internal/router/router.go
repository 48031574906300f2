package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dental-portal/internal/handler"
	authHandler "dental-portal/internal/handler/auth"
	bookingHandler "dental-portal/internal/handler/booking"
	"dental-portal/internal/middleware"
)

type Router struct {
	engine   *gin.Engine
	gate     *middleware.SessionGate
	h        *handler.Handler
	authH    *authHandler.Handler
	bookingH *bookingHandler.Handler
	metrics  *routerMetrics
}

type routerMetrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func initRouterMetrics() *routerMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &routerMetrics{
		registry: registry,
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_request_duration_seconds",
			Help:    "Time spent handling requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_requests_total",
			Help: "Total number of handled requests",
		}, []string{"method", "path", "status"}),
	}
}

func NewRouter(
	gate *middleware.SessionGate,
	h *handler.Handler,
	authH *authHandler.Handler,
	bookingH *bookingHandler.Handler,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:   engine,
		gate:     gate,
		h:        h,
		authH:    authH,
		bookingH: bookingH,
		metrics:  initRouterMetrics(),
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		r.metricsMiddleware(),
	)

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/", r.h.Home)
	r.engine.GET("/health", r.h.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.metrics.registry, promhttp.HandlerOpts{})))

	public := r.engine.Group("")
	r.authH.RegisterRoutes(public)

	protected := r.engine.Group("")
	protected.Use(r.gate.RequireSession())
	r.bookingH.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
