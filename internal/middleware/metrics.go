package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cineverse_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// StatusTransitions counts post moderation transitions by target status.
	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cineverse_post_status_transitions_total",
		Help: "Total number of post status transitions by target status",
	}, []string{"status"})

	// ReviewsDeleted counts review subtree deletions.
	ReviewsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cineverse_reviews_deleted_total",
		Help: "Total number of reviews removed, including cascaded replies",
	})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. The instance is shared: fiberprometheus registers its collectors in
// the default registry, which tolerates only one registration per process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
