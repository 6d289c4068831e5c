package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis errors by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storefront_redis_errors_total",
	Help: "Total number of Redis errors by command",
}, []string{"command"})

// ImageUploads counts stored image files by bucket.
var ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storefront_image_uploads_total",
	Help: "Total number of uploaded images stored, by bucket",
}, []string{"bucket"})

// TokensIssued counts issued access tokens by flow (register or login).
var TokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storefront_tokens_issued_total",
	Help: "Total number of access tokens issued, by flow",
}, []string{"flow"})

// InitMetrics creates the Prometheus middleware for HTTP request metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler recording per-request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
